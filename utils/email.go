package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

// SendPasswordResetEmail emails the 6-digit reset code. Sent synchronously so
// the caller can clear the stored code when delivery fails.
func SendPasswordResetEmail(email, name, code string) error {
	subject := fmt.Sprintf("%s, here's your PIN %s (valid 10 minutes)", name, code)
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We received a request to reset the password on your DishDash account.</p>
<h2>%s</h2>
<p>Thanks for helping us keep your account secure.</p>
<p>The DishDash Team</p>`, name, code)
	return SendEmail(email, subject, body)
}

// SendWelcomeEmail greets a newly registered user. Non-blocking.
func SendWelcomeEmail(email, name string) {
	go func() {
		subject := "Welcome to DishDash!"
		body := fmt.Sprintf(`<h2>Welcome to DishDash, %s!</h2>
<p>Thank you for creating your account. You can now browse restaurants,
build a cart and track your orders.</p>
<p>The DishDash Team</p>`, name)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}
