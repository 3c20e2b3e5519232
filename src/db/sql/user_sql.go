package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, password, first_name, last_name, is_verified, otp_code, otp_expires_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.IsVerified,
		&user.OTPCode,
		&user.OTPExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, req models.RegisterRequest, hashedPassword, otpCode string, otpExpiresAt time.Time) (int, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, otp_code, otp_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var userID int
	err := pool.QueryRow(ctx, query,
		req.Email,
		hashedPassword,
		req.FirstName,
		req.LastName,
		otpCode,
		otpExpiresAt,
	).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// MarkUserVerified flips the verification flag and clears the consumed OTP.
func MarkUserVerified(ctx context.Context, pool *pgxpool.Pool, email string) error {
	query := `
		UPDATE users
		SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE email = $1
	`
	cmd, err := pool.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func SetUserOTP(ctx context.Context, pool *pgxpool.Pool, email, otpCode string, otpExpiresAt time.Time) error {
	query := `
		UPDATE users
		SET otp_code = $1, otp_expires_at = $2, updated_at = NOW()
		WHERE email = $3
	`
	cmd, err := pool.Exec(ctx, query, otpCode, otpExpiresAt, email)
	if err != nil {
		return fmt.Errorf("failed to set otp: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, pool *pgxpool.Pool, email, hashedPassword string) error {
	query := `
		UPDATE users
		SET password = $1, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE email = $2
	`
	cmd, err := pool.Exec(ctx, query, hashedPassword, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
