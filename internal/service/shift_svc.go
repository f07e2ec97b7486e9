package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/events"
)

// FullShiftStore adds the listing/patching surface the CRUD service
// needs on top of what the swap engine uses.
type FullShiftStore interface {
	ShiftStore
	ListActiveByUser(ctx context.Context, userID string) ([]domain.Shift, error)
	ListActive(ctx context.Context) ([]domain.Shift, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Shift, error)
}

type ShiftSvc struct {
	shifts FullShiftStore
	pub    Publisher
}

func NewShiftSvc(shifts FullShiftStore, pub Publisher) *ShiftSvc {
	return &ShiftSvc{shifts: shifts, pub: pub}
}

type AssignShiftInput struct {
	UserID    string
	Date      string
	StartTime string
	EndTime   string
	Location  string
	Notes     string
}

func (in AssignShiftInput) validate() error {
	if in.UserID == "" {
		return fmt.Errorf("%w: user is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	st, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time must be HH:MM", ErrValidation)
	}
	et, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end time must be HH:MM", ErrValidation)
	}
	if !et.After(st) {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if strings.TrimSpace(in.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	return nil
}

// Assign creates a shift for a practitioner and announces it to them.
// No overlap check is performed; two active shifts for the same user
// and day may coexist.
func (s *ShiftSvc) Assign(ctx context.Context, actor Actor, in AssignShiftInput) (*domain.Shift, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins assign shifts", ErrForbidden)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	sh := &domain.Shift{
		UserID:    in.UserID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Location:  in.Location,
		Notes:     in.Notes,
	}
	if err := s.shifts.Create(ctx, sh); err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, events.RKShiftAssigned, events.ShiftAssigned{
		ShiftID:  sh.ID,
		UserID:   sh.UserID,
		Date:     sh.Date,
		Start:    sh.StartTime,
		End:      sh.EndTime,
		Location: sh.Location,
	})
	return sh, nil
}

type UpdateShiftInput struct {
	Date      string
	StartTime string
	EndTime   string
	Location  string
	Notes     *string
}

func (s *ShiftSvc) Update(ctx context.Context, actor Actor, id string, in UpdateShiftInput) (*domain.Shift, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins update shifts", ErrForbidden)
	}
	fields := map[string]any{}
	if in.Date != "" {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		fields["date"] = in.Date
	}
	if in.StartTime != "" {
		if _, err := time.Parse("15:04", in.StartTime); err != nil {
			return nil, fmt.Errorf("%w: start time must be HH:MM", ErrValidation)
		}
		fields["start_time"] = in.StartTime
	}
	if in.EndTime != "" {
		if _, err := time.Parse("15:04", in.EndTime); err != nil {
			return nil, fmt.Errorf("%w: end time must be HH:MM", ErrValidation)
		}
		fields["end_time"] = in.EndTime
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if in.StartTime != "" || in.EndTime != "" {
		cur, err := s.shifts.ByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: shift %s", ErrNotFound, id)
			}
			return nil, err
		}
		start, end := cur.StartTime, cur.EndTime
		if in.StartTime != "" {
			start = in.StartTime
		}
		if in.EndTime != "" {
			end = in.EndTime
		}
		// stored values were validated on write, so only the merged
		// pair can be inconsistent here
		st, _ := time.Parse("15:04", start)
		et, _ := time.Parse("15:04", end)
		if !et.After(st) {
			return nil, fmt.Errorf("%w: end time must be after start time", ErrValidation)
		}
	}
	sh, err := s.shifts.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: shift %s", ErrNotFound, id)
		}
		return nil, err
	}
	return sh, nil
}

// Remove soft-deletes a shift; the record stays behind inactive.
func (s *ShiftSvc) Remove(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only admins remove shifts", ErrForbidden)
	}
	if err := s.shifts.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: shift %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *ShiftSvc) List(ctx context.Context, actor Actor) ([]domain.Shift, error) {
	if actor.IsAdmin() {
		return s.shifts.ListActive(ctx)
	}
	return s.shifts.ListActiveByUser(ctx, actor.ID)
}

func (s *ShiftSvc) ListForUser(ctx context.Context, actor Actor, userID string) ([]domain.Shift, error) {
	if !actor.IsAdmin() && actor.ID != userID {
		return nil, fmt.Errorf("%w: cannot read another user's schedule", ErrForbidden)
	}
	return s.shifts.ListActiveByUser(ctx, userID)
}
