package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/metrics"
	"github.com/smatehq/timeclock/internal/timeclock/store"
	"github.com/smatehq/timeclock/pkg/idx"
	"github.com/smatehq/timeclock/pkg/jwtx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

// IdentityService maps verified identity provider claims onto local users.
// Tokens are verified upstream; this service only ever sees claims that
// already passed signature and expiry checks.
type IdentityService struct {
	Store   store.Store
	Metrics metrics.Recorder
}

// Resolve returns the local user for the given claims, auto-provisioning a
// CARE user on first contact. The role claim is deliberately ignored here;
// privilege changes only happen through FirstLogin.
func (s *IdentityService) Resolve(ctx context.Context, claims jwtx.Claims) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if claims.Subject == "" {
		return domain.User{}, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := s.Store.Users().GetUserBySubject(ctx, claims.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up user by subject", slog.Any("error", err))
		return domain.User{}, domain.TransientError("user lookup failed")
	}

	now := time.Now().UTC()
	user = domain.User{
		ID:        idx.New().String(),
		Subject:   claims.Subject,
		Email:     fallbackEmail(claims),
		Name:      claims.DisplayName(),
		Role:      domain.RoleCare,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// A concurrent request may have provisioned the same subject
		// between our lookup and insert. Re-read and use theirs.
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.Store.Users().GetUserBySubject(ctx, claims.Subject)
		}
		log.Error("failed to auto-provision user",
			slog.String("subject", claims.Subject),
			slog.Any("error", err),
		)
		return domain.User{}, domain.TransientError("user provisioning failed")
	}

	log.Info("auto-provisioned user",
		slog.String("user_id", user.ID),
		slog.String("subject", user.Subject),
	)
	s.recorder().RecordUserProvisioned()

	return user, nil
}

// FirstLogin upserts the user's profile from claims. Unlike Resolve it
// honors the role claim, so an identity-provider role assignment lands
// locally the first time the client calls it after login. Safe to call
// repeatedly with the same claims.
func (s *IdentityService) FirstLogin(ctx context.Context, claims jwtx.Claims) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if claims.Subject == "" {
		return domain.User{}, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	email := fallbackEmail(claims)
	name := claims.DisplayName()
	role := domain.ParseRole(claims.Role)

	user, err := s.Store.Users().GetUserBySubject(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to look up user by subject", slog.Any("error", err))
			return domain.User{}, domain.TransientError("user lookup failed")
		}

		now := time.Now().UTC()
		user = domain.User{
			ID:        idx.New().String(),
			Subject:   claims.Subject,
			Email:     email,
			Name:      name,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Store.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Lost the race; fall through to the update path below.
				user, err = s.Store.Users().GetUserBySubject(ctx, claims.Subject)
				if err != nil {
					return domain.User{}, domain.TransientError("user lookup failed")
				}
			} else {
				log.Error("failed to create user on first login", slog.Any("error", err))
				return domain.User{}, domain.TransientError("user provisioning failed")
			}
		} else {
			log.Info("provisioned user on first login",
				slog.String("user_id", user.ID),
				slog.String("role", string(role)),
			)
			s.recorder().RecordUserProvisioned()
			return user, nil
		}
	}

	if err := s.Store.Users().UpdateProfile(ctx, user.ID, email, name, role); err != nil {
		log.Error("failed to update user profile", slog.Any("error", err))
		return domain.User{}, domain.TransientError("profile update failed")
	}

	user.Email = email
	user.Name = name
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	return user, nil
}

func (s *IdentityService) recorder() metrics.Recorder {
	if s.Metrics == nil {
		return metrics.Nop{}
	}
	return s.Metrics
}

// fallbackEmail returns the email claim, or a synthetic stable address
// derived from the subject when the provider didn't share one.
func fallbackEmail(claims jwtx.Claims) string {
	if claims.Email != "" {
		return claims.Email
	}
	return claims.Subject + "@auth.local"
}
