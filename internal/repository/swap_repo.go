package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
)

// ErrNotPending means the request had already left PENDING when the
// conditional update ran (either decided earlier or lost a race).
var ErrNotPending = errors.New("swap_not_pending")

type SwapRepo struct{ db *gorm.DB }

func NewSwapRepo(db *gorm.DB) *SwapRepo {
	return &SwapRepo{db: db}
}

func (r *SwapRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.SwapRequest{})
}

func (r *SwapRepo) Create(ctx context.Context, sr *domain.SwapRequest) error {
	if sr.ID == "" {
		sr.ID = uuid.NewString()
	}
	sr.Status = domain.SwapPending
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *SwapRepo) ByID(ctx context.Context, id string) (*domain.SwapRequest, error) {
	var sr domain.SwapRequest
	if err := r.db.WithContext(ctx).First(&sr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

// DecideIfPending performs the PENDING -> terminal transition as a single
// conditional UPDATE. Guarding on the stored status means two racing
// decisions can never both succeed; the loser affects zero rows.
func (r *SwapRepo) DecideIfPending(ctx context.Context, id string, to domain.SwapStatus, adminResponse string) (*domain.SwapRequest, error) {
	res := r.db.WithContext(ctx).Model(&domain.SwapRequest{}).
		Where("id = ? AND status = ?", id, domain.SwapPending).
		Updates(map[string]any{
			"status":         to,
			"admin_response": adminResponse,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotPending
	}
	return r.ByID(ctx, id)
}

func (r *SwapRepo) ListAll(ctx context.Context) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *SwapRepo) ListForUser(ctx context.Context, userID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ? OR target_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
