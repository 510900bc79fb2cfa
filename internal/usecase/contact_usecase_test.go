package usecase

import (
	"context"
	"errors"
	"testing"

	"devskillshub/internal/domain/contact"
)

type memInbox struct {
	msgs []contact.Message
	err  error
}

func (m *memInbox) Append(_ context.Context, msg contact.Message) error {
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memInbox) List(context.Context) ([]contact.Message, error) {
	return m.msgs, m.err
}

func TestContactUsecase_Submit_Validation(t *testing.T) {
	uc := NewContactUsecase(&memInbox{}, discard)

	_, err := uc.Submit(context.Background(), ContactInput{Email: "not-an-email"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var fe *ContactFieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ContactFieldError, got %T", err)
	}
	for _, f := range []string{"name", "email", "subject", "message"} {
		if _, ok := fe.Fields[f]; !ok {
			t.Fatalf("expected field error for %s, got %v", f, fe.Fields)
		}
	}
	if fe.Fields["email"] != "Invalid email address" {
		t.Fatalf("unexpected email message %q", fe.Fields["email"])
	}
}

func TestContactUsecase_Submit_Stores(t *testing.T) {
	inbox := &memInbox{}
	uc := NewContactUsecase(inbox, discard)

	msg, err := uc.Submit(context.Background(), ContactInput{
		Name:    " Ada ",
		Email:   "Ada@Example.org",
		Subject: "Hello",
		Message: "Nice portfolio",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg.ID == "" || msg.Name != "Ada" || msg.ReceivedAt.IsZero() {
		t.Fatalf("unexpected message %+v", msg)
	}

	msgs, err := uc.ListMessages(context.Background())
	if err != nil || len(msgs) != 1 {
		t.Fatalf("expected one stored message, got %v err=%v", msgs, err)
	}
}

func TestContactUsecase_Submit_StorageFailure(t *testing.T) {
	uc := NewContactUsecase(&memInbox{err: errors.New("full")}, discard)
	_, err := uc.Submit(context.Background(), ContactInput{Name: "a", Email: "a@b.io", Subject: "s", Message: "m"})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
