package usecase

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidProficiencyLevel = errors.New("invalid proficiency level")
	ErrSkillNotFound           = errors.New("skill not found")
	ErrProjectsNotFound        = errors.New("projects not found")
	ErrProjectsUnavailable     = errors.New("projects unavailable")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrAuthDisabled            = errors.New("auth disabled")
	ErrInternal                = errors.New("internal error")
)
