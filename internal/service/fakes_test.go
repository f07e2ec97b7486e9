package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/repository"
)

// In-memory stands-ins for the gorm repos. They honor the same
// contracts, including gorm.ErrRecordNotFound and the conditional
// decide guard, so engine tests run without postgres.

type memShiftStore struct {
	mu         sync.Mutex
	shifts     map[string]*domain.Shift
	creates    int
	failCreate bool
}

func newMemShiftStore() *memShiftStore {
	return &memShiftStore{shifts: map[string]*domain.Shift{}}
}

func (m *memShiftStore) Create(_ context.Context, s *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return fmt.Errorf("shift insert failed")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Active = true
	cp := *s
	m.shifts[s.ID] = &cp
	m.creates++
	return nil
}

func (m *memShiftStore) ByID(_ context.Context, id string) (*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memShiftStore) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shifts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Active = false
	return nil
}

func (m *memShiftStore) UpdateFields(_ context.Context, id string, fields map[string]any) (*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := fields["date"]; ok {
		s.Date = v.(string)
	}
	if v, ok := fields["start_time"]; ok {
		s.StartTime = v.(string)
	}
	if v, ok := fields["end_time"]; ok {
		s.EndTime = v.(string)
	}
	if v, ok := fields["location"]; ok {
		s.Location = v.(string)
	}
	if v, ok := fields["notes"]; ok {
		s.Notes = v.(string)
	}
	cp := *s
	return &cp, nil
}

func (m *memShiftStore) ListActiveByUser(_ context.Context, userID string) ([]domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Shift
	for _, s := range m.shifts {
		if s.Active && s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memShiftStore) ListActive(_ context.Context) ([]domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Shift
	for _, s := range m.shifts {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

// activeFor returns the actives owned by a user, for assertions.
func (m *memShiftStore) activeFor(userID string) []domain.Shift {
	out, _ := m.ListActiveByUser(context.Background(), userID)
	return out
}

type memSwapStore struct {
	mu    sync.Mutex
	swaps map[string]*domain.SwapRequest
}

func newMemSwapStore() *memSwapStore {
	return &memSwapStore{swaps: map[string]*domain.SwapRequest{}}
}

func (m *memSwapStore) Create(_ context.Context, sr *domain.SwapRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sr.ID == "" {
		sr.ID = uuid.NewString()
	}
	sr.Status = domain.SwapPending
	cp := *sr
	m.swaps[sr.ID] = &cp
	return nil
}

func (m *memSwapStore) ByID(_ context.Context, id string) (*domain.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sr, ok := m.swaps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sr
	return &cp, nil
}

func (m *memSwapStore) DecideIfPending(_ context.Context, id string, to domain.SwapStatus, adminResponse string) (*domain.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sr, ok := m.swaps[id]
	if !ok || sr.Status != domain.SwapPending {
		return nil, repository.ErrNotPending
	}
	sr.Status = to
	sr.AdminResponse = adminResponse
	cp := *sr
	return &cp, nil
}

func (m *memSwapStore) ListAll(_ context.Context) ([]domain.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SwapRequest
	for _, sr := range m.swaps {
		out = append(out, *sr)
	}
	return out, nil
}

func (m *memSwapStore) ListForUser(_ context.Context, userID string) ([]domain.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SwapRequest
	for _, sr := range m.swaps {
		if sr.RequesterID == userID || sr.TargetUserID == userID {
			out = append(out, *sr)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakePublisher) published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}
