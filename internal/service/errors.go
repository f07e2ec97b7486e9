package service

import (
	"errors"

	"github.com/theyeesha/physioreact/internal/domain"
)

var (
	ErrValidation   = errors.New("validation_failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not_found")
	ErrInvalidState = errors.New("state_conflict")
)

// Actor is the authenticated caller, passed explicitly into every
// operation instead of being read from ambient request state.
type Actor struct {
	ID   string
	Role domain.Role
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }
