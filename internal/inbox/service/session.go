package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
	"github.com/aussiebroadwan/whisper/internal/inbox/store"
	"github.com/aussiebroadwan/whisper/pkg/cryptox"
	"github.com/aussiebroadwan/whisper/pkg/idx"
	"github.com/aussiebroadwan/whisper/pkg/jwtx"
	"github.com/aussiebroadwan/whisper/pkg/slogx"
)

// SessionService signs users in. A login attempt either authenticates or is
// rejected with ErrValidation, ErrInvalidCredentials or ErrNotVerified. The
// last is only reachable with the right password.
type SessionService struct {
	Store  store.Store
	Keys   *jwtx.KeyManager
	Issuer string

	// TTL defaults to jwtx.DefaultSessionTTL.
	TTL time.Duration
	Now func() time.Time
}

func (s *SessionService) Login(ctx context.Context, identifier, password string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Submitted -> Validated
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.Session{}, invalid("identifier", "Email/Username and password are required")
	}

	// 2. Resolve the identifier
	user, err := s.resolve(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("login rejected", slog.String("reason", "unknown identifier"))
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to resolve identifier", slog.Any("error", err))
		return domain.Session{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 3. Password, then verification state
	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		log.Info("login rejected", slog.String("reason", "bad password"), slog.String("user_id", user.ID))
		return domain.Session{}, ErrInvalidCredentials
	}
	if !user.Verified {
		return domain.Session{}, ErrNotVerified
	}

	// 4. Authenticated: mint the session
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	identity := domain.IdentityFromUser(user)
	claims := jwtx.NewSessionClaims(jwtx.SessionParams{
		Subject:           identity.UserID,
		SID:               idx.NewAt(now).String(),
		Username:          identity.Username,
		Verified:          identity.Verified,
		AcceptingMessages: identity.AcceptingMessages,
		Issuer:            s.Issuer,
		TTL:               s.TTL,
	}, now)

	token, err := s.Keys.GetSigner().Sign(claims)
	if err != nil {
		log.Error("failed to sign session", slog.Any("error", err))
		return domain.Session{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	log.Info("login succeeded", slog.String("user_id", user.ID), slog.String("sid", claims.SID))
	return domain.Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Identity:  identity,
	}, nil
}

// resolve looks the identifier up as an e-mail when it looks like one, and
// as a username otherwise, falling back to the other column.
func (s *SessionService) resolve(ctx context.Context, identifier string) (domain.User, error) {
	users := s.Store.Users()

	byEmail := func() (domain.User, error) { return users.GetUserByEmail(ctx, strings.ToLower(identifier)) }
	byName := func() (domain.User, error) { return users.GetUserByUsername(ctx, identifier) }

	first, second := byName, byEmail
	if strings.Contains(identifier, "@") {
		first, second = byEmail, byName
	}

	u, err := first()
	if errors.Is(err, store.ErrNotFound) {
		return second()
	}
	return u, err
}

// IdentityFromClaims rebuilds the caller identity from verified claims.
func IdentityFromClaims(c jwtx.Claims) domain.Identity {
	return domain.Identity{
		UserID:            c.Subject,
		Username:          c.Username,
		Verified:          c.Verified,
		AcceptingMessages: c.AcceptingMessages,
	}
}
