package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
)

type NotificationStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type NotificationSvc struct{ store NotificationStore }

func NewNotificationSvc(store NotificationStore) *NotificationSvc {
	return &NotificationSvc{store: store}
}

func (s *NotificationSvc) ListForActor(ctx context.Context, actor Actor) ([]domain.Notification, error) {
	return s.store.ListByUser(ctx, actor.ID)
}

// MarkRead flips the read flag; scoped to the actor so users cannot
// acknowledge each other's notifications.
func (s *NotificationSvc) MarkRead(ctx context.Context, actor Actor, id string) error {
	if err := s.store.MarkRead(ctx, id, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *NotificationSvc) MarkAllRead(ctx context.Context, actor Actor) error {
	return s.store.MarkAllRead(ctx, actor.ID)
}
