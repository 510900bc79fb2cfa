package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"devskillshub/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

type AuthUsecase interface {
	Login(ctx context.Context, password string) (AccessToken, error)
}

// Auth checks the single owner password. A nil jwt service or an empty hash
// means auth is disabled.
type Auth struct {
	jwt          jwt.Service
	passwordHash []byte
	logger       *log.Logger
}

func NewAuthUsecase(jwtSvc jwt.Service, ownerPasswordHash string, logger *log.Logger) *Auth {
	if logger == nil {
		logger = log.Default()
	}
	return &Auth{jwt: jwtSvc, passwordHash: []byte(ownerPasswordHash), logger: logger}
}

func (u *Auth) Login(_ context.Context, password string) (AccessToken, error) {
	if u.jwt == nil || len(u.passwordHash) == 0 {
		return AccessToken{}, ErrAuthDisabled
	}
	if password == "" {
		return AccessToken{}, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			u.logger.Printf("[Auth] password hash check failed err=%v", err)
		}
		return AccessToken{}, ErrUnauthorized
	}

	token, exp, err := u.jwt.GenerateAccessToken(jwt.SubjectOwner)
	if err != nil {
		u.logger.Printf("[Auth] token generation failed err=%v", err)
		return AccessToken{}, ErrInternal
	}
	return AccessToken{Token: token, ExpiresAt: exp}, nil
}
