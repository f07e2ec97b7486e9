package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theyeesha/physioreact/internal/events"
)

func newShiftSvc(t *testing.T) (*ShiftSvc, *memShiftStore, *fakePublisher) {
	t.Helper()
	shifts := newMemShiftStore()
	pub := &fakePublisher{}
	return NewShiftSvc(shifts, pub), shifts, pub
}

func TestAssignCreatesActiveShiftAndNotifies(t *testing.T) {
	svc, shifts, pub := newShiftSvc(t)

	sh, err := svc.Assign(context.Background(), admin, AssignShiftInput{
		UserID:    alice.ID,
		Date:      "2024-01-10",
		StartTime: "09:00",
		EndTime:   "17:00",
		Location:  "Room A",
		Notes:     "bring the ultrasound cart",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sh.ID)
	assert.True(t, sh.Active)
	assert.Len(t, shifts.activeFor(alice.ID), 1)
	assert.Equal(t, []string{events.RKShiftAssigned}, pub.published())
}

func TestAssignRequiresAdmin(t *testing.T) {
	svc, _, _ := newShiftSvc(t)
	_, err := svc.Assign(context.Background(), alice, AssignShiftInput{
		UserID: bob.ID, Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00", Location: "Room A",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAssignValidation(t *testing.T) {
	svc, _, _ := newShiftSvc(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   AssignShiftInput
	}{
		{"bad date", AssignShiftInput{UserID: "u", Date: "10/01/2024", StartTime: "09:00", EndTime: "17:00", Location: "Room A"}},
		{"bad start", AssignShiftInput{UserID: "u", Date: "2024-01-10", StartTime: "9am", EndTime: "17:00", Location: "Room A"}},
		{"end before start", AssignShiftInput{UserID: "u", Date: "2024-01-10", StartTime: "17:00", EndTime: "09:00", Location: "Room A"}},
		{"missing location", AssignShiftInput{UserID: "u", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00", Location: "  "}},
		{"missing user", AssignShiftInput{Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00", Location: "Room A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Assign(ctx, admin, tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRemoveSoftDeletes(t *testing.T) {
	svc, shifts, _ := newShiftSvc(t)
	ctx := context.Background()
	sh := seedShift(t, shifts, alice.ID, "2024-01-10", "09:00", "17:00", "Room A")

	require.NoError(t, svc.Remove(ctx, admin, sh.ID))

	// tombstoned, not gone
	cur, err := shifts.ByID(ctx, sh.ID)
	require.NoError(t, err)
	assert.False(t, cur.Active)
	assert.Empty(t, shifts.activeFor(alice.ID))

	assert.ErrorIs(t, svc.Remove(ctx, admin, "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, alice, sh.ID), ErrForbidden)
}

func TestListForUserAccess(t *testing.T) {
	svc, shifts, _ := newShiftSvc(t)
	ctx := context.Background()
	seedShift(t, shifts, alice.ID, "2024-01-10", "09:00", "17:00", "Room A")

	own, err := svc.ListForUser(ctx, alice, alice.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	asAdmin, err := svc.ListForUser(ctx, admin, alice.ID)
	require.NoError(t, err)
	assert.Len(t, asAdmin, 1)

	_, err = svc.ListForUser(ctx, bob, alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateValidatesAndPatches(t *testing.T) {
	svc, shifts, _ := newShiftSvc(t)
	ctx := context.Background()
	sh := seedShift(t, shifts, alice.ID, "2024-01-10", "09:00", "17:00", "Room A")

	got, err := svc.Update(ctx, admin, sh.ID, UpdateShiftInput{Location: "Room C"})
	require.NoError(t, err)
	assert.Equal(t, "Room C", got.Location)
	assert.Equal(t, "2024-01-10", got.Date)

	_, err = svc.Update(ctx, admin, sh.ID, UpdateShiftInput{Date: "not-a-date"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, admin, sh.ID, UpdateShiftInput{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, admin, "missing", UpdateShiftInput{Location: "Room C"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, alice, sh.ID, UpdateShiftInput{Location: "Room C"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateKeepsTimesConsistent(t *testing.T) {
	svc, shifts, _ := newShiftSvc(t)
	ctx := context.Background()
	sh := seedShift(t, shifts, alice.ID, "2024-01-10", "09:00", "17:00", "Room A")

	// patching one side must not invert the stored pair
	_, err := svc.Update(ctx, admin, sh.ID, UpdateShiftInput{EndTime: "08:00"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, admin, sh.ID, UpdateShiftInput{StartTime: "18:00"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, admin, sh.ID, UpdateShiftInput{StartTime: "10:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, ErrValidation)

	cur, err := shifts.ByID(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", cur.StartTime)
	assert.Equal(t, "17:00", cur.EndTime)

	got, err := svc.Update(ctx, admin, sh.ID, UpdateShiftInput{EndTime: "12:00"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, "12:00", got.EndTime)

	both, err := svc.Update(ctx, admin, sh.ID, UpdateShiftInput{StartTime: "13:00", EndTime: "15:00"})
	require.NoError(t, err)
	assert.Equal(t, "13:00", both.StartTime)
	assert.Equal(t, "15:00", both.EndTime)
}
