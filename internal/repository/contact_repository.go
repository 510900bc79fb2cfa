package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"devskillshub/internal/domain/contact"
	"devskillshub/internal/infrastructure/kv"
)

// ContactRepository keeps submitted contact messages as one JSON array, newest last.
type ContactRepository struct {
	medium kv.Medium
	key    string
	logger *log.Logger

	mu sync.Mutex
}

func NewContactRepository(medium kv.Medium, key string, logger *log.Logger) *ContactRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &ContactRepository{medium: medium, key: key, logger: logger}
}

func (r *ContactRepository) Append(ctx context.Context, msg contact.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs, err := r.load(ctx)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)

	b, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode contact messages: %w", err)
	}
	if err := r.medium.Set(ctx, r.key, b); err != nil {
		return fmt.Errorf("save contact messages: %w", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]contact.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *ContactRepository) load(ctx context.Context) ([]contact.Message, error) {
	if r.medium == nil {
		return nil, kv.ErrUnavailable
	}
	b, found, err := r.medium.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load contact messages: %w", err)
	}
	out := make([]contact.Message, 0)
	if !found || len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		r.logger.Printf("[Contact] unreadable inbox, treating as empty key=%s err=%v", r.key, err)
		return make([]contact.Message, 0), nil
	}
	return out, nil
}
