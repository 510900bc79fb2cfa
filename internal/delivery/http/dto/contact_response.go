package dto

import (
	"time"

	"devskillshub/internal/domain/contact"
)

type ContactMessageResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

func NewContactMessageResponse(m contact.Message) ContactMessageResponse {
	return ContactMessageResponse{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Subject:    m.Subject,
		Message:    m.Message,
		ReceivedAt: m.ReceivedAt,
	}
}
