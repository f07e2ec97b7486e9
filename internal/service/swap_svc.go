package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/events"
	"github.com/theyeesha/physioreact/internal/repository"
)

// ShiftStore is the slice of shift persistence the swap engine needs to
// rewrite duties.
type ShiftStore interface {
	ByID(ctx context.Context, id string) (*domain.Shift, error)
	Create(ctx context.Context, s *domain.Shift) error
	Deactivate(ctx context.Context, id string) error
}

// SwapStore owns SwapRequest rows. DecideIfPending must only commit the
// transition when the stored status is still PENDING and return
// repository.ErrNotPending otherwise.
type SwapStore interface {
	Create(ctx context.Context, sr *domain.SwapRequest) error
	ByID(ctx context.Context, id string) (*domain.SwapRequest, error)
	DecideIfPending(ctx context.Context, id string, to domain.SwapStatus, adminResponse string) (*domain.SwapRequest, error)
	ListAll(ctx context.Context) ([]domain.SwapRequest, error)
	ListForUser(ctx context.Context, userID string) ([]domain.SwapRequest, error)
}

// Publisher is satisfied by *mq.Publisher.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type SwapSvc struct {
	swaps  SwapStore
	shifts ShiftStore
	pub    Publisher
	log    *zap.Logger
}

func NewSwapSvc(swaps SwapStore, shifts ShiftStore, pub Publisher, log *zap.Logger) *SwapSvc {
	return &SwapSvc{swaps: swaps, shifts: shifts, pub: pub, log: log}
}

type SubmitSwapInput struct {
	RequesterShiftID string
	TargetUserID     string
	TargetShiftID    string
	SwapType         domain.SwapType
	Reason           string
}

// Submit validates and persists a new PENDING swap request on behalf of
// the actor, then announces it to the administrative channel.
func (s *SwapSvc) Submit(ctx context.Context, actor Actor, in SubmitSwapInput) (*domain.SwapRequest, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if in.TargetUserID == "" {
		return nil, fmt.Errorf("%w: target user is required", ErrValidation)
	}

	rs, err := s.shifts.ByID(ctx, in.RequesterShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: requester shift %s does not exist", ErrValidation, in.RequesterShiftID)
		}
		return nil, err
	}
	if !rs.Active || rs.UserID != actor.ID {
		return nil, fmt.Errorf("%w: requester shift must be an active shift owned by the requester", ErrValidation)
	}

	sr := &domain.SwapRequest{
		RequesterID:      actor.ID,
		TargetUserID:     in.TargetUserID,
		RequesterShiftID: in.RequesterShiftID,
		SwapType:         in.SwapType,
		Reason:           in.Reason,
	}

	switch in.SwapType {
	case domain.SwapExchange:
		if in.TargetShiftID == "" {
			return nil, fmt.Errorf("%w: target shift is required for exchange swaps", ErrValidation)
		}
		ts, err := s.shifts.ByID(ctx, in.TargetShiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: target shift %s does not exist", ErrValidation, in.TargetShiftID)
			}
			return nil, err
		}
		if !ts.Active || ts.UserID != in.TargetUserID {
			return nil, fmt.Errorf("%w: target shift must be an active shift owned by the target user", ErrValidation)
		}
		id := in.TargetShiftID
		sr.TargetShiftID = &id
	case domain.SwapCoverage:
		// Coverage never references a target shift; drop any supplied
		// id so the type/target pairing invariant holds in storage.
		sr.TargetShiftID = nil
	default:
		return nil, fmt.Errorf("%w: unknown swap type %q", ErrValidation, in.SwapType)
	}

	if err := s.swaps.Create(ctx, sr); err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, events.RKSwapRequested, events.SwapRequested{
		SwapID:      sr.ID,
		RequesterID: sr.RequesterID,
		TargetID:    sr.TargetUserID,
		SwapType:    string(sr.SwapType),
	})
	return sr, nil
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// Decide moves a PENDING request to APPROVED or REJECTED. The transition
// is guarded by a conditional update so racing decisions cannot both
// commit. On approval the duty transfer runs after the transition; its
// failure is logged and never surfaced, the approval stands either way
// and the rota is reconciled by hand.
func (s *SwapSvc) Decide(ctx context.Context, actor Actor, id string, decision Decision, adminResponse string) (*domain.SwapRequest, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins decide swap requests", ErrForbidden)
	}

	var to domain.SwapStatus
	switch decision {
	case DecisionApprove:
		to = domain.SwapApproved
	case DecisionReject:
		to = domain.SwapRejected
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}

	if _, err := s.swaps.ByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: swap request %s", ErrNotFound, id)
		}
		return nil, err
	}

	sr, err := s.swaps.DecideIfPending(ctx, id, to, adminResponse)
	if err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return nil, fmt.Errorf("%w: swap request %s is no longer pending", ErrInvalidState, id)
		}
		return nil, err
	}

	if to == domain.SwapApproved {
		if err := s.transferDuty(ctx, sr); err != nil {
			s.log.Error("duty transfer failed, approval stands",
				zap.String("swap_id", sr.ID),
				zap.String("swap_type", string(sr.SwapType)),
				zap.Error(err))
		}
	}

	key := events.RKSwapRejected
	if to == domain.SwapApproved {
		key = events.RKSwapApproved
	}
	_ = s.pub.PublishJSON(ctx, key, events.SwapDecided{
		SwapID:        sr.ID,
		RequesterID:   sr.RequesterID,
		TargetID:      sr.TargetUserID,
		SwapType:      string(sr.SwapType),
		AdminResponse: sr.AdminResponse,
	})
	return sr, nil
}

// transferDuty rewrites shift ownership for an approved swap.
// Replacement shifts are created before the originals are deactivated:
// a failure partway through leaves the duty visible on at least one
// record instead of losing it.
func (s *SwapSvc) transferDuty(ctx context.Context, sr *domain.SwapRequest) error {
	switch sr.SwapType {
	case domain.SwapExchange:
		rs, err := s.shifts.ByID(ctx, sr.RequesterShiftID)
		if err != nil {
			return fmt.Errorf("load requester shift: %w", err)
		}
		if sr.TargetShiftID == nil {
			return fmt.Errorf("exchange swap %s has no target shift", sr.ID)
		}
		ts, err := s.shifts.ByID(ctx, *sr.TargetShiftID)
		if err != nil {
			return fmt.Errorf("load target shift: %w", err)
		}
		if err := s.shifts.Create(ctx, reassign(rs, sr.TargetUserID)); err != nil {
			return fmt.Errorf("create shift for target: %w", err)
		}
		if err := s.shifts.Create(ctx, reassign(ts, sr.RequesterID)); err != nil {
			return fmt.Errorf("create shift for requester: %w", err)
		}
		if err := s.shifts.Deactivate(ctx, rs.ID); err != nil {
			return fmt.Errorf("deactivate requester shift: %w", err)
		}
		if err := s.shifts.Deactivate(ctx, ts.ID); err != nil {
			return fmt.Errorf("deactivate target shift: %w", err)
		}
		return nil

	case domain.SwapCoverage:
		rs, err := s.shifts.ByID(ctx, sr.RequesterShiftID)
		if err != nil {
			return fmt.Errorf("load requester shift: %w", err)
		}
		if err := s.shifts.Create(ctx, reassign(rs, sr.TargetUserID)); err != nil {
			return fmt.Errorf("create shift for target: %w", err)
		}
		if err := s.shifts.Deactivate(ctx, rs.ID); err != nil {
			return fmt.Errorf("deactivate requester shift: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown swap type %q", sr.SwapType)
	}
}

// reassign copies a shift's content onto a fresh record for a new owner.
// Record identity does not survive a transfer; only the content moves.
func reassign(src *domain.Shift, ownerID string) *domain.Shift {
	return &domain.Shift{
		UserID:    ownerID,
		Date:      src.Date,
		StartTime: src.StartTime,
		EndTime:   src.EndTime,
		Location:  src.Location,
		Notes:     src.Notes,
	}
}

// List returns every request for admins, and only the requests the
// actor is party to for everyone else.
func (s *SwapSvc) List(ctx context.Context, actor Actor) ([]domain.SwapRequest, error) {
	if actor.IsAdmin() {
		return s.swaps.ListAll(ctx)
	}
	return s.swaps.ListForUser(ctx, actor.ID)
}
