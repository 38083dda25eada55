package user

import "fmt"

// Mailer sends account emails.
type Mailer interface {
	SendWelcome(email string) (string, error)
	SendPasswordReset(email string) (string, error)
}

// EmailService is the Mailer that composes the messages locally.
type EmailService struct{}

func (EmailService) SendWelcome(email string) (string, error) {
	return fmt.Sprintf("Enviando email de bienvenida a %s", email), nil
}

func (EmailService) SendPasswordReset(email string) (string, error) {
	return fmt.Sprintf("Enviando email de restablecimiento de contraseña a %s", email), nil
}
