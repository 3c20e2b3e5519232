package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/mail"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

const otpTTL = 10 * time.Minute

func issueToken(userID int, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func Register(pool *pgxpool.Pool, mailer *mail.Mailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}
		if !util.ValidatePassword(req.Password) {
			log.Printf("ERROR: Password validation failed during registration - Email: %s", req.Email)
			http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
			return
		}
		if !util.ValidateName(req.FirstName) || !util.ValidateName(req.LastName) {
			log.Printf("ERROR: Name validation failed during registration - Email: %s", req.Email)
			http.Error(w, "first and last name must be at least 2 characters", http.StatusBadRequest)
			return
		}

		if _, err := db.GetUserByEmail(r.Context(), pool, req.Email); err == nil {
			log.Printf("ERROR: Registration failed - email already exists: %s", req.Email)
			http.Error(w, "user already exists with this email", http.StatusConflict)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		otp, err := util.GenerateOTP()
		if err != nil {
			log.Printf("ERROR: Failed to generate OTP for %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		userID, err := db.CreateUser(r.Context(), pool, req, string(hashedPassword), otp, time.Now().Add(otpTTL))
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Printf("ERROR: Registration failed - email already exists: %s", req.Email)
				http.Error(w, "user already exists with this email", http.StatusConflict)
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := mailer.SendOTP(req.Email, otp); err != nil {
			http.Error(w, "failed to send verification email", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Successful registration - Email: %s, ID: %d", req.Email, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Registration successful! Please check your email for OTP verification.",
		})
	}
}

func VerifyOTP(pool *pgxpool.Pool, mailer *mail.Mailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.VerifyOTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode verify OTP request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.OTP == "" {
			http.Error(w, "email and otp are required", http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByEmail(r.Context(), pool, req.Email)
		if err != nil {
			log.Printf("ERROR: OTP verification failed - user not found: %s", req.Email)
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		if user.OTPCode == nil || *user.OTPCode != req.OTP {
			log.Printf("ERROR: Invalid OTP attempt for %s", req.Email)
			http.Error(w, "invalid otp", http.StatusBadRequest)
			return
		}
		if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
			log.Printf("ERROR: Expired OTP attempt for %s", req.Email)
			http.Error(w, "otp has expired", http.StatusBadRequest)
			return
		}

		if err := db.MarkUserVerified(r.Context(), pool, req.Email); err != nil {
			log.Printf("ERROR: Failed to mark user verified %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		tokenString, err := issueToken(user.ID, user.Email)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for %s: %v", req.Email, err)
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		go mailer.SendWelcome(user.Email, user.FirstName)

		log.Printf("INFO: Email verified - User: %s, ID: %d", user.Email, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Email verified successfully!",
			"token":   tokenString,
		})
	}
}

func ResendOTP(pool *pgxpool.Pool, mailer *mail.Mailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" {
			http.Error(w, "email is required", http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByEmail(r.Context(), pool, req.Email)
		if err != nil || user.IsVerified {
			log.Printf("ERROR: OTP resend refused for %s", req.Email)
			http.Error(w, "user not found or already verified", http.StatusBadRequest)
			return
		}

		otp, err := util.GenerateOTP()
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := db.SetUserOTP(r.Context(), pool, req.Email, otp, time.Now().Add(otpTTL)); err != nil {
			log.Printf("ERROR: Failed to set OTP for %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := mailer.SendOTP(req.Email, otp); err != nil {
			http.Error(w, "failed to send verification email", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "OTP resent successfully!"})
	}
}

func Login(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		user, err := db.GetUserByEmail(r.Context(), pool, req.Email)
		if err != nil {
			log.Printf("ERROR: Failed login attempt - Email: %s: %v", req.Email, err)
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}

		if !user.IsVerified {
			log.Printf("ERROR: Unverified user attempted login - Email: %s", req.Email)
			http.Error(w, "Please verify your email before logging in", http.StatusForbidden)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for %s from IP %s", req.Email, r.RemoteAddr)
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}

		tokenString, err := issueToken(user.ID, user.Email)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for %s: %v", user.Email, err)
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Successful login - User: %s, ID: %d", user.Email, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Login successful!",
			"token":   tokenString,
			"user": map[string]interface{}{
				"id":         user.ID,
				"email":      user.Email,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
			},
		})
	}
}

func ForgotPassword(pool *pgxpool.Pool, mailer *mail.Mailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" {
			http.Error(w, "email is required", http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByEmail(r.Context(), pool, req.Email)
		if err != nil || !user.IsVerified {
			log.Printf("ERROR: Password reset refused for %s", req.Email)
			http.Error(w, "user not found or email not verified", http.StatusBadRequest)
			return
		}

		otp, err := util.GenerateOTP()
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := db.SetUserOTP(r.Context(), pool, req.Email, otp, time.Now().Add(otpTTL)); err != nil {
			log.Printf("ERROR: Failed to set reset OTP for %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := mailer.SendPasswordResetOTP(req.Email, otp); err != nil {
			http.Error(w, "failed to send password reset email", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Password reset OTP sent to your email!"})
	}
}

func ResetPassword(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email       string `json:"email"`
			OTP         string `json:"otp"`
			NewPassword string `json:"new_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
			http.Error(w, "email, otp, and new password are required", http.StatusBadRequest)
			return
		}
		if !util.ValidatePassword(req.NewPassword) {
			http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByEmail(r.Context(), pool, req.Email)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if user.OTPCode == nil || *user.OTPCode != req.OTP {
			log.Printf("ERROR: Invalid reset OTP attempt for %s", req.Email)
			http.Error(w, "invalid otp", http.StatusBadRequest)
			return
		}
		if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
			http.Error(w, "otp has expired", http.StatusBadRequest)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := db.UpdateUserPassword(r.Context(), pool, req.Email, string(hashedPassword)); err != nil {
			log.Printf("ERROR: Failed to reset password for %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Password reset - User: %s, ID: %d", user.Email, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Password reset successfully!"})
	}
}
