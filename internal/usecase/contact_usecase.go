package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"devskillshub/internal/domain/contact"

	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// ContactFieldError lists the form fields that failed validation, keyed by field name.
type ContactFieldError struct {
	Fields map[string]string
}

func (e *ContactFieldError) Error() string {
	return "invalid contact form"
}

func (e *ContactFieldError) Unwrap() error {
	return ErrInvalidInput
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactRepository interface {
	Append(ctx context.Context, msg contact.Message) error
	List(ctx context.Context) ([]contact.Message, error)
}

type ContactUsecase interface {
	Submit(ctx context.Context, in ContactInput) (contact.Message, error)
	ListMessages(ctx context.Context) ([]contact.Message, error)
}

type Contact struct {
	repo   ContactRepository
	logger *log.Logger
	now    func() time.Time
}

func NewContactUsecase(repo ContactRepository, logger *log.Logger) *Contact {
	if logger == nil {
		logger = log.Default()
	}
	return &Contact{repo: repo, logger: logger, now: time.Now}
}

func (u *Contact) Submit(ctx context.Context, in ContactInput) (contact.Message, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	if err := validateContact(in); err != nil {
		return contact.Message{}, err
	}

	msg := contact.Message{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Subject:    in.Subject,
		Message:    in.Message,
		ReceivedAt: u.now().UTC().Truncate(time.Millisecond),
	}
	if err := u.repo.Append(ctx, msg); err != nil {
		u.logger.Printf("[Contact] append failed err=%v", err)
		return contact.Message{}, ErrInternal
	}
	u.logger.Printf("[Contact] message received id=%s subject=%q", msg.ID, msg.Subject)
	return msg, nil
}

func (u *Contact) ListMessages(ctx context.Context) ([]contact.Message, error) {
	msgs, err := u.repo.List(ctx)
	if err != nil {
		u.logger.Printf("[Contact] list failed err=%v", err)
		return nil, ErrInternal
	}
	return msgs, nil
}

func validateContact(in ContactInput) error {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "Name is required"
	}
	switch {
	case in.Email == "":
		fields["email"] = "Email is required"
	case !emailRe.MatchString(in.Email):
		fields["email"] = "Invalid email address"
	}
	if in.Subject == "" {
		fields["subject"] = "Subject is required"
	}
	if in.Message == "" {
		fields["message"] = "Message is required"
	}
	if len(fields) > 0 {
		return &ContactFieldError{Fields: fields}
	}
	return nil
}
