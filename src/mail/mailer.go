package mail

import (
	"fmt"
	"log"

	gomail "github.com/wneessen/go-mail"
)

type Mailer struct {
	client *gomail.Client
	from   string
}

func NewMailer(host string, port int, user, password string) (*Mailer, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(user),
		gomail.WithPassword(password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &Mailer{client: client, from: user}, nil
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("Financial Manager", m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	return m.client.DialAndSend(msg)
}

func (m *Mailer) SendOTP(email, otp string) error {
	if err := m.send(email, "Email Verification - OTP Code", BuildOTPBody(otp)); err != nil {
		log.Printf("ERROR: Failed to send OTP email to %s: %v", email, err)
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	log.Printf("INFO: OTP email sent to %s", email)
	return nil
}

func (m *Mailer) SendPasswordResetOTP(email, otp string) error {
	if err := m.send(email, "Password Reset - OTP Code", BuildPasswordResetBody(otp)); err != nil {
		log.Printf("ERROR: Failed to send password reset email to %s: %v", email, err)
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	log.Printf("INFO: Password reset OTP email sent to %s", email)
	return nil
}

// SendWelcome is fire-and-forget; a delivery failure never fails the caller.
func (m *Mailer) SendWelcome(email, firstName string) {
	if err := m.send(email, "Welcome to Financial Manager!", BuildWelcomeBody(firstName)); err != nil {
		log.Printf("ERROR: Failed to send welcome email to %s: %v", email, err)
		return
	}
	log.Printf("INFO: Welcome email sent to %s", email)
}
