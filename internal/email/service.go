package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. All sends are best-effort from the
// caller's point of view; a failed welcome mail never fails a registration.
type Service interface {
	SendWelcome(to, name string) error
}

// Config holds SMTP settings. An empty Host disables sending.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewService(cfg Config) Service {
	if cfg.Host == "" {
		return noopService{}
	}
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) SendWelcome(to, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to MedArchive")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour medical archive account is ready. You can now upload documents and manage doctor access.\n", name))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

type noopService struct{}

func (noopService) SendWelcome(to, name string) error {
	return nil
}
