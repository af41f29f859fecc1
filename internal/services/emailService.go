package services

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"cybershield/internal/metrics"
)

// EmailService is the outbound notification transport. Callers treat it as
// fire-and-forget: a failed send never rolls back the state change that
// triggered it.
type EmailService interface {
	SendEmail(to, subject, msg string) error
}

type emailService struct {
	from string
}

func NewEmailService() EmailService {
	from := os.Getenv("SENDER_EMAIL")
	if from == "" {
		from = os.Getenv("SMTP_USERNAME")
	}
	return &emailService{from: from}
}

func (e *emailService) SendEmail(to, subject, msg string) error {
	m := gomail.NewMessage()

	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", msg)

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))

	if err := d.DialAndSend(m); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("success").Inc()
	return nil
}
