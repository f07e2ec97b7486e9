package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/pkg/auth"
)

type UserCreator interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthSvc struct {
	users      UserCreator
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthSvc(users UserCreator, accessTTL, refreshTTL time.Duration) *AuthSvc {
	return &AuthSvc{users: users, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type RegisterInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Role          domain.Role
	PhoneNumber   string
	LicenseNumber string
}

func (s *AuthSvc) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrValidation)
	}
	if in.Role == "" {
		in.Role = domain.RolePhysio
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RolePhysio {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	if _, err := s.users.ByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:         in.Email,
		PasswordHash:  string(hash),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Role:          in.Role,
		PhoneNumber:   in.PhoneNumber,
		LicenseNumber: in.LicenseNumber,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser provisions a staff account on an admin's behalf. Same
// shape as self-registration, but gated on the acting admin so the
// clinic can onboard practitioners directly.
func (s *AuthSvc) CreateUser(ctx context.Context, actor Actor, in RegisterInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins create users", ErrForbidden)
	}
	return s.Register(ctx, in)
}

// Login checks credentials and issues access + refresh tokens.
// Unknown accounts, bad passwords and deactivated accounts all fail the
// same way so the response does not leak which one it was.
func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !u.Active {
		return nil, "", "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	access, err := auth.CreateAccessToken(u.ID, string(u.Role), u.Email, s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.CreateRefreshToken(u.ID, string(u.Role), u.Email, s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}
