package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/store/drivers/sqlite"
	"github.com/smatehq/timeclock/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := sqlite.DSN(filepath.Join(t.TempDir(), "timeclock.db"))
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func claimsFor(subject string) jwtx.Claims {
	c := jwtx.Claims{
		Email: "carer@example.com",
		Name:  "Cara Carer",
	}
	c.Subject = subject
	return c
}

func TestResolveAutoProvisions(t *testing.T) {
	t.Parallel()

	svc := &IdentityService{Store: newTestStore(t)}
	ctx := context.Background()

	user, err := svc.Resolve(ctx, claimsFor("auth0|cara"))
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "auth0|cara", user.Subject)
	require.Equal(t, "carer@example.com", user.Email)
	require.Equal(t, "Cara Carer", user.Name)
	require.Equal(t, domain.RoleCare, user.Role)

	t.Run("second resolve returns the same user", func(t *testing.T) {
		again, err := svc.Resolve(ctx, claimsFor("auth0|cara"))
		require.NoError(t, err)
		require.Equal(t, user.ID, again.ID)
	})
}

func TestResolveIgnoresRoleClaim(t *testing.T) {
	t.Parallel()

	svc := &IdentityService{Store: newTestStore(t)}

	claims := claimsFor("auth0|mallory")
	claims.Role = "MANAGER"

	user, err := svc.Resolve(context.Background(), claims)
	require.NoError(t, err)
	require.Equal(t, domain.RoleCare, user.Role)
}

func TestResolveFallbacks(t *testing.T) {
	t.Parallel()

	svc := &IdentityService{Store: newTestStore(t)}

	var claims jwtx.Claims
	claims.Subject = "auth0|bare"

	user, err := svc.Resolve(context.Background(), claims)
	require.NoError(t, err)
	require.Equal(t, "auth0|bare@auth.local", user.Email)
}

func TestResolveRequiresSubject(t *testing.T) {
	t.Parallel()

	svc := &IdentityService{Store: newTestStore(t)}

	_, err := svc.Resolve(context.Background(), jwtx.Claims{})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveSurfacesTransientOnDeadContext(t *testing.T) {
	t.Parallel()

	svc := &IdentityService{Store: newTestStore(t)}

	// Store calls run under a bounded context derived from the request's;
	// an already-dead parent fails the round trip as a retryable error.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Resolve(ctx, claimsFor("auth0|late"))
	var domErr *domain.Error
	require.ErrorAs(t, err, &domErr)
	require.Equal(t, domain.KindTransient, domErr.Kind)
}

func TestFirstLoginHonorsRoleClaim(t *testing.T) {
	t.Parallel()

	svc := &IdentityService{Store: newTestStore(t)}
	ctx := context.Background()

	claims := claimsFor("auth0|boss")
	claims.Role = "MANAGER"

	user, err := svc.FirstLogin(ctx, claims)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, user.Role)

	t.Run("idempotent", func(t *testing.T) {
		again, err := svc.FirstLogin(ctx, claims)
		require.NoError(t, err)
		require.Equal(t, user.ID, again.ID)
		require.Equal(t, domain.RoleManager, again.Role)
	})

	t.Run("unknown role claim falls back to CARE", func(t *testing.T) {
		odd := claimsFor("auth0|odd")
		odd.Role = "SUPERADMIN"
		u, err := svc.FirstLogin(ctx, odd)
		require.NoError(t, err)
		require.Equal(t, domain.RoleCare, u.Role)
	})
}

func TestFirstLoginUpdatesExistingUser(t *testing.T) {
	t.Parallel()

	svc := &IdentityService{Store: newTestStore(t)}
	ctx := context.Background()

	// Auto-provisioned first via Resolve, role defaults to CARE.
	provisioned, err := svc.Resolve(ctx, claimsFor("auth0|promoted"))
	require.NoError(t, err)
	require.Equal(t, domain.RoleCare, provisioned.Role)

	claims := claimsFor("auth0|promoted")
	claims.Email = "new@example.com"
	claims.Name = "New Name"
	claims.Role = "MANAGER"

	updated, err := svc.FirstLogin(ctx, claims)
	require.NoError(t, err)
	require.Equal(t, provisioned.ID, updated.ID)
	require.Equal(t, "new@example.com", updated.Email)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, domain.RoleManager, updated.Role)
}
