package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamana-org/charity-server/pkg/charity"
	"github.com/alamana-org/charity-server/pkg/charity/auth"
	"github.com/alamana-org/charity-server/pkg/charity/repo/memory"
)

func setupAuth(t *testing.T, options ...auth.Option) (*auth.Service, charity.Repository) {
	t.Helper()

	repo := memory.New()
	svc, err := auth.New(repo, "test-secret", options...)
	require.NoError(t, err)
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Fatima", "fatima@example.org", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, charity.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "fatima@example.org", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = svc.Login(ctx, "fatima@example.org", "wrong")
	assert.ErrorIs(t, err, charity.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.org", "s3cret")
	assert.ErrorIs(t, err, charity.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "dup@example.org", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "B", "dup@example.org", "pw2")
	assert.ErrorIs(t, err, charity.ErrDuplicateEmail)
}

func TestBootstrapAdminLogin(t *testing.T) {
	svc, _ := setupAuth(t, auth.WithBootstrapAdmin("admin@example.org", "admin-pw"))
	ctx := context.Background()

	// Works without any database user.
	token, user, err := svc.Login(ctx, "admin@example.org", "admin-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, charity.RoleAdmin, user.Role)

	_, _, err = svc.Login(ctx, "admin@example.org", "wrong")
	assert.ErrorIs(t, err, charity.ErrInvalidCredentials)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	svc, repo := setupAuth(t, auth.WithBootstrapAdmin("admin@example.org", "admin-pw"))
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx))
	require.NoError(t, svc.EnsureAdmin(ctx))

	user, err := repo.GetUserByEmail(ctx, "admin@example.org")
	require.NoError(t, err)
	assert.Equal(t, charity.RoleAdmin, user.Role)

	// The seeded account also logs in through the database path.
	svcNoEnv, err := auth.New(repo, "test-secret")
	require.NoError(t, err)
	_, loggedIn, err := svcNoEnv.Login(ctx, "admin@example.org", "admin-pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestEnsureAdminNoopWithoutConfig(t *testing.T) {
	svc, repo := setupAuth(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx))
	_, err := repo.GetUserByEmail(ctx, "admin@example.org")
	assert.ErrorIs(t, err, charity.ErrUserNotFound)
}
