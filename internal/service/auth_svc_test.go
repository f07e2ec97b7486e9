package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/pkg/auth"
)

func newAuthSvc(t *testing.T) (*AuthSvc, *memUserStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	store := newMemUserStore()
	return NewAuthSvc(store, time.Hour, 24*time.Hour), store
}

func TestRegisterDefaultsToPhysio(t *testing.T) {
	svc, _ := newAuthSvc(t)
	u, err := svc.Register(context.Background(), RegisterInput{
		Email: "new@clinic.test", Password: "s3cret", FirstName: "New", LastName: "Hire",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RolePhysio, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()
	in := RegisterInput{Email: "dup@clinic.test", Password: "pw", FirstName: "A", LastName: "B"}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "", Password: "pw", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "pw", FirstName: "", LastName: "B"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "pw", FirstName: "A", LastName: "B", Role: "RECEPTION"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUserIsAdminOnly(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()
	in := RegisterInput{Email: "staff@clinic.test", Password: "pw", FirstName: "New", LastName: "Staff"}

	_, err := svc.CreateUser(ctx, alice, in)
	assert.ErrorIs(t, err, ErrForbidden)

	u, err := svc.CreateUser(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, domain.RolePhysio, u.Role)
	assert.True(t, u.Active)

	// same validation path as self-registration
	_, err = svc.CreateUser(ctx, admin, in)
	assert.ErrorIs(t, err, ErrValidation)

	boss, err := svc.CreateUser(ctx, admin, RegisterInput{
		Email: "boss@clinic.test", Password: "pw", FirstName: "Second", LastName: "Admin",
		Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, boss.Role)
}

func TestLogin(t *testing.T) {
	svc, store := newAuthSvc(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, RegisterInput{
		Email: "phys@clinic.test", Password: "correct-horse", FirstName: "P", LastName: "T",
	})
	require.NoError(t, err)

	got, access, refresh, err := svc.Login(ctx, "phys@clinic.test", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	ac, err := auth.ParseValidate(access)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenAccess, ac.Typ)
	rc, err := auth.ParseValidate(refresh)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenRefresh, rc.Typ)

	_, _, _, err = svc.Login(ctx, "phys@clinic.test", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, _, err = svc.Login(ctx, "nobody@clinic.test", "whatever")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, store.Deactivate(ctx, u.ID))
	_, _, _, err = svc.Login(ctx, "phys@clinic.test", "correct-horse")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
