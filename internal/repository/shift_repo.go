package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
)

type ShiftRepo struct{ db *gorm.DB }

func NewShiftRepo(db *gorm.DB) *ShiftRepo {
	return &ShiftRepo{db: db}
}

func (r *ShiftRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Shift{})
}

func (r *ShiftRepo) Create(ctx context.Context, s *domain.Shift) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Active = true
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShiftRepo) ByID(ctx context.Context, id string) (*domain.Shift, error) {
	var s domain.Shift
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Deactivate soft-deletes the shift; the row stays behind as a tombstone.
func (r *ShiftRepo) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Shift{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ShiftRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Shift, error) {
	if err := r.db.WithContext(ctx).Model(&domain.Shift{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

func (r *ShiftRepo) ListActiveByUser(ctx context.Context, userID string) ([]domain.Shift, error) {
	var out []domain.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("date ASC, start_time ASC").
		Find(&out).Error
	return out, err
}

func (r *ShiftRepo) ListActive(ctx context.Context) ([]domain.Shift, error) {
	var out []domain.Shift
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("date ASC, start_time ASC").
		Find(&out).Error
	return out, err
}
