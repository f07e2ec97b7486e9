package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
)

// Directory is the user store as the rest of the system sees it.
type Directory interface {
	ByID(ctx context.Context, id string) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
}

type UserSvc struct{ users Directory }

func NewUserSvc(users Directory) *UserSvc { return &UserSvc{users: users} }

func (s *UserSvc) GetByID(ctx context.Context, actor Actor, id string) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, fmt.Errorf("%w: cannot read another user's profile", ErrForbidden)
	}
	u, err := s.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return u, nil
}

func (s *UserSvc) List(ctx context.Context, actor Actor) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins list users", ErrForbidden)
	}
	return s.users.List(ctx)
}

// Colleagues returns the active physiotherapists a practitioner may
// direct a swap request at, excluding the caller.
func (s *UserSvc) Colleagues(ctx context.Context, actor Actor) ([]domain.User, error) {
	if actor.Role != domain.RolePhysio {
		return nil, fmt.Errorf("%w: colleague discovery is for physiotherapists", ErrForbidden)
	}
	all, err := s.users.ListActiveByRole(ctx, domain.RolePhysio)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if u.ID != actor.ID {
			out = append(out, u)
		}
	}
	return out, nil
}

type UpdateUserInput struct {
	FirstName     string
	LastName      string
	PhoneNumber   string
	LicenseNumber string
}

func (s *UserSvc) Update(ctx context.Context, actor Actor, id string, in UpdateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, fmt.Errorf("%w: cannot update another user's profile", ErrForbidden)
	}
	fields := map[string]any{}
	if in.FirstName != "" {
		fields["first_name"] = in.FirstName
	}
	if in.LastName != "" {
		fields["last_name"] = in.LastName
	}
	if in.PhoneNumber != "" {
		fields["phone_number"] = in.PhoneNumber
	}
	if in.LicenseNumber != "" {
		fields["license_number"] = in.LicenseNumber
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	u, err := s.users.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return u, nil
}

// Deactivate retires an account. Users are never hard-deleted so the
// history hanging off them (shifts, swaps, notifications) stays intact.
func (s *UserSvc) Deactivate(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only admins deactivate users", ErrForbidden)
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
