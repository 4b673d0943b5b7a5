package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
	"github.com/aussiebroadwan/whisper/internal/inbox/store"
	"github.com/aussiebroadwan/whisper/pkg/cryptox"
	"github.com/aussiebroadwan/whisper/pkg/idx"
	"github.com/aussiebroadwan/whisper/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// DefaultCodeTTL is how long an e-mailed verification code stays valid.
const DefaultCodeTTL = time.Hour

// VerificationSender delivers a sign-up code to the new account holder.
type VerificationSender interface {
	SendVerification(ctx context.Context, to, username, code string) error
}

// AccountService handles sign-up, e-mail verification and username checks.
type AccountService struct {
	Store  store.Store
	Mailer VerificationSender

	// CodeTTL defaults to DefaultCodeTTL.
	CodeTTL time.Duration
	Now     func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AccountService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

// SignUp registers an unverified account and mails it a code. Signing up
// again with the e-mail of an unverified account replaces its password and
// code. If the mail cannot be sent the account is kept and ErrMailDelivery
// is returned.
func (s *AccountService) SignUp(ctx context.Context, username, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate
	username, err := NormalizeUsername(username)
	if err != nil {
		return domain.User{}, err
	}
	email, err = NormalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}

	now := s.now()

	// 2. Username must not belong to anyone else
	if err := s.claimUsername(ctx, username, email, now); err != nil {
		return domain.User{}, err
	}

	// 3. Fresh code and password hash
	code, err := newVerificationCode(now)
	if err != nil {
		log.Error("failed to generate verification code", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	expires := now.Add(s.codeTTL())

	// 4. Refresh an unverified account with this e-mail, or create one
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil && user.Verified:
		return domain.User{}, ErrEmailTaken

	case err == nil:
		codeHash := cryptox.FingerprintToken(code)
		if err := s.Store.Users().ResetVerification(ctx, user.ID, hash, codeHash, expires); err != nil {
			log.Error("failed to reset verification", slog.Any("error", err))
			return domain.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		user.PasswordHash = hash
		user.VerifyCodeHash = codeHash
		user.VerifyCodeExpiresAt = &expires
		log.Info("unverified account refreshed", slog.String("user_id", user.ID))

	case errors.Is(err, store.ErrNotFound):
		user = domain.User{
			ID:                  idx.NewAt(now).String(),
			Username:            username,
			Email:               email,
			PasswordHash:        hash,
			VerifyCodeHash:      cryptox.FingerprintToken(code),
			VerifyCodeExpiresAt: &expires,
			AcceptingMessages:   true,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := s.Store.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Lost a race with a concurrent sign-up.
				return domain.User{}, s.conflict(ctx, email)
			}
			log.Error("failed to create user", slog.Any("error", err))
			return domain.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		log.Info("account created", slog.String("user_id", user.ID))

	default:
		log.Error("failed to look up email", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 5. Deliver the code
	if err := s.Mailer.SendVerification(ctx, user.Email, user.Username, code); err != nil {
		log.Error("failed to send verification email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return user, fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}
	return user, nil
}

// claimUsername fails when a verified account, or a different unverified
// account with a live code, holds username. An unverified holder whose code
// has lapsed is removed.
func (s *AccountService) claimUsername(ctx context.Context, username, email string, now time.Time) error {
	holder, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		slogx.FromContext(ctx).Error("failed to look up username", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	case holder.Verified:
		return ErrUsernameTaken
	case holder.Email == email:
		return nil
	case !holder.CodeExpired(now):
		return ErrUsernameTaken
	}

	if err := s.Store.Users().DeleteUser(ctx, holder.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	slogx.FromContext(ctx).Info("released username held by lapsed sign-up", slog.String("user_id", holder.ID))
	return nil
}

func (s *AccountService) conflict(ctx context.Context, email string) error {
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// CheckUsername reports whether username is free to register. Only verified
// accounts hold a username.
func (s *AccountService) CheckUsername(ctx context.Context, username string) (bool, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return false, err
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return true, nil
	case err != nil:
		slogx.FromContext(ctx).Error("failed to look up username", slog.Any("error", err))
		return false, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return !user.Verified, nil
}

// VerifyCode confirms the e-mailed code for username. Verifying an account
// twice is not an error. An expired code wins over a wrong one.
func (s *AccountService) VerifyCode(ctx context.Context, username, code string) error {
	log := slogx.FromContext(ctx)

	username, err := NormalizeUsername(username)
	if err != nil {
		return err
	}
	code, err = validateCode(code)
	if err != nil {
		return err
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case err != nil:
		log.Error("failed to look up user", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if user.Verified {
		return nil
	}
	if user.CodeExpired(s.now()) {
		return ErrCodeExpired
	}
	if !cryptox.MatchFingerprint(code, user.VerifyCodeHash) {
		log.Warn("incorrect verification code", slog.String("user_id", user.ID))
		return ErrInvalidCode
	}

	if err := s.Store.Users().MarkVerified(ctx, user.ID); err != nil {
		log.Error("failed to mark user verified", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	log.Info("account verified", slog.String("user_id", user.ID))
	return nil
}

// newVerificationCode derives a six digit HOTP code from a throwaway secret.
func newVerificationCode(now time.Time) (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)

	return hotp.GenerateCodeCustom(secret, uint64(now.Unix()), hotp.ValidateOpts{ // #nosec G115
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}
