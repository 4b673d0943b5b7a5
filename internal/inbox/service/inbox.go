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
	"github.com/aussiebroadwan/whisper/pkg/idx"
	"github.com/aussiebroadwan/whisper/pkg/slogx"
)

// InboxService owns message submission and the owner's view of their inbox.
// Owner operations take the caller's identity explicitly; a zero identity is
// unauthenticated.
type InboxService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *InboxService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// SubmitMessage leaves an anonymous message for username. The lookup, the
// accept-flag check and the insert share one transaction. Failures are
// reported in that order: ErrNotFound, ErrMessagingDisabled, then content
// validation.
func (s *InboxService) SubmitMessage(ctx context.Context, username, content string) (domain.Message, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Message{}, invalid("username", "Username is required")
	}

	now := s.now()
	msg := domain.Message{
		ID:        idx.NewAt(now).String(),
		CreatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		// Unverified accounts have no public inbox yet.
		if !user.Verified {
			return store.ErrNotFound
		}
		if !user.AcceptingMessages {
			return ErrMessagingDisabled
		}

		if msg.Content, err = NormalizeContent(content); err != nil {
			return err
		}
		msg.UserID = user.ID
		return tx.Messages().AppendMessage(ctx, msg)
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		return domain.Message{}, ErrNotFound
	case errors.Is(err, ErrMessagingDisabled):
		return domain.Message{}, ErrMessagingDisabled
	case errors.Is(err, ErrValidation):
		return domain.Message{}, err
	default:
		log.Error("failed to submit message", slog.Any("error", err))
		return domain.Message{}, fmt.Errorf("%w: submit message: %w", ErrInternal, err)
	}

	log.Info("message submitted",
		slog.String("recipient_id", msg.UserID),
		slog.String("message_id", msg.ID),
	)
	return msg, nil
}

// ListMessages returns the owner's inbox, newest first. An empty inbox is an
// empty slice; ErrNotFound means the owner no longer exists.
func (s *InboxService) ListMessages(ctx context.Context, owner domain.Identity) ([]domain.Message, error) {
	if owner.IsZero() {
		return nil, ErrUnauthenticated
	}
	if err := s.ownerExists(ctx, owner); err != nil {
		return nil, err
	}

	msgs, err := s.Store.Messages().ListMessages(ctx, owner.UserID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list messages", slog.Any("error", err))
		return nil, fmt.Errorf("%w: list messages: %w", ErrInternal, err)
	}
	return msgs, nil
}

// DeleteMessage removes one of the owner's messages. Unknown ids, including
// ids belonging to someone else, report false without error.
func (s *InboxService) DeleteMessage(ctx context.Context, owner domain.Identity, messageID string) (bool, error) {
	if owner.IsZero() {
		return false, ErrUnauthenticated
	}
	if !idx.Valid(messageID) {
		return false, nil
	}

	deleted, err := s.Store.Messages().DeleteMessage(ctx, owner.UserID, messageID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to delete message",
			slog.String("message_id", messageID),
			slog.Any("error", err),
		)
		return false, fmt.Errorf("%w: delete message: %w", ErrInternal, err)
	}
	return deleted, nil
}

// SetAcceptFlag turns anonymous submissions on or off for the owner.
func (s *InboxService) SetAcceptFlag(ctx context.Context, owner domain.Identity, accept bool) (bool, error) {
	if owner.IsZero() {
		return false, ErrUnauthenticated
	}

	err := s.Store.Users().SetAcceptingMessages(ctx, owner.UserID, accept)
	switch {
	case err == nil:
		slogx.FromContext(ctx).Info("accept flag updated", slog.Bool("accepting_messages", accept))
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, ErrNotFound
	default:
		slogx.FromContext(ctx).Error("failed to update accept flag", slog.Any("error", err))
		return false, fmt.Errorf("%w: set accept flag: %w", ErrInternal, err)
	}
}

// GetAcceptFlag reads the stored flag. The snapshot in the session is never
// trusted here.
func (s *InboxService) GetAcceptFlag(ctx context.Context, owner domain.Identity) (bool, error) {
	if owner.IsZero() {
		return false, ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUserByID(ctx, owner.UserID)
	switch {
	case err == nil:
		return user.AcceptingMessages, nil
	case errors.Is(err, store.ErrNotFound):
		return false, ErrNotFound
	default:
		slogx.FromContext(ctx).Error("failed to read accept flag", slog.Any("error", err))
		return false, fmt.Errorf("%w: get accept flag: %w", ErrInternal, err)
	}
}

func (s *InboxService) ownerExists(ctx context.Context, owner domain.Identity) error {
	_, err := s.Store.Users().GetUserByID(ctx, owner.UserID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	default:
		slogx.FromContext(ctx).Error("failed to load owner", slog.Any("error", err))
		return fmt.Errorf("%w: load owner: %w", ErrInternal, err)
	}
}
