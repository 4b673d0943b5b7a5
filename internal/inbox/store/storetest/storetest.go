// Package storetest is the behaviour every store driver must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
	"github.com/aussiebroadwan/whisper/internal/inbox/store"
	"github.com/aussiebroadwan/whisper/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated, empty store.
type Factory func(t *testing.T) store.Store

// Run executes the contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("verification", func(t *testing.T) { testVerification(t, newStore(t)) })
	t.Run("accept flag", func(t *testing.T) { testAcceptFlag(t, newStore(t)) })
	t.Run("messages", func(t *testing.T) { testMessages(t, newStore(t)) })
	t.Run("cascade", func(t *testing.T) { testCascade(t, newStore(t)) })
	t.Run("stale unverified", func(t *testing.T) { testStaleUnverified(t, newStore(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
}

// NewUser returns a verified user ready for CreateUser.
func NewUser(username string) domain.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.User{
		ID:                idx.New().String(),
		Username:          username,
		Email:             username + "@example.com",
		PasswordHash:      "$argon2id$placeholder",
		Verified:          true,
		AcceptingMessages: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := NewUser("quietfox")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)
	require.Equal(t, u.Email, byID.Email)
	require.True(t, byID.Verified)
	require.True(t, byID.AcceptingMessages)
	require.Nil(t, byID.VerifyCodeExpiresAt)
	require.WithinDuration(t, u.CreatedAt, byID.CreatedAt, time.Millisecond)

	byName, err := s.Users().GetUserByUsername(ctx, "quietfox")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byEmail, err := s.Users().GetUserByEmail(ctx, "quietfox@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = s.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	dupName := NewUser("quietfox")
	dupName.Email = "other@example.com"
	require.ErrorIs(t, s.Users().CreateUser(ctx, dupName), store.ErrAlreadyExists)

	dupEmail := NewUser("otherfox")
	dupEmail.Email = u.Email
	require.ErrorIs(t, s.Users().CreateUser(ctx, dupEmail), store.ErrAlreadyExists)

	require.NoError(t, s.Users().DeleteUser(ctx, u.ID))
	require.ErrorIs(t, s.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
}

func testVerification(t *testing.T, s store.Store) {
	ctx := context.Background()
	expires := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)

	u := NewUser("newbie")
	u.Verified = false
	u.VerifyCodeHash = "fp-1"
	u.VerifyCodeExpiresAt = &expires
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.Verified)
	require.Equal(t, "fp-1", got.VerifyCodeHash)
	require.NotNil(t, got.VerifyCodeExpiresAt)
	require.WithinDuration(t, expires, *got.VerifyCodeExpiresAt, time.Millisecond)

	later := expires.Add(time.Hour)
	require.NoError(t, s.Users().ResetVerification(ctx, u.ID, "new-hash", "fp-2", later))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.Equal(t, "fp-2", got.VerifyCodeHash)

	require.NoError(t, s.Users().MarkVerified(ctx, u.ID))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.Verified)
	require.Empty(t, got.VerifyCodeHash)
	require.Nil(t, got.VerifyCodeExpiresAt)

	// Verified accounts are never reset.
	err = s.Users().ResetVerification(ctx, u.ID, "x", "y", later)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Users().MarkVerified(ctx, "missing"), store.ErrNotFound)
}

func testAcceptFlag(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := NewUser("flagger")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().SetAcceptingMessages(ctx, u.ID, false))
	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.AcceptingMessages)

	require.NoError(t, s.Users().SetAcceptingMessages(ctx, u.ID, true))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.AcceptingMessages)

	require.ErrorIs(t, s.Users().SetAcceptingMessages(ctx, "missing", true), store.ErrNotFound)
}

func testMessages(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := NewUser("owner")
	other := NewUser("other")
	require.NoError(t, s.Users().CreateUser(ctx, owner))
	require.NoError(t, s.Users().CreateUser(ctx, other))

	empty, err := s.Messages().ListMessages(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	base := time.Now().UTC().Truncate(time.Second)
	var ids []string
	for i := range 3 {
		at := base.Add(time.Duration(i) * time.Second)
		m := domain.Message{ID: idx.NewAt(at).String(), UserID: owner.ID, Content: "message number " + string(rune('a'+i)), CreatedAt: at}
		require.NoError(t, s.Messages().AppendMessage(ctx, m))
		ids = append(ids, m.ID)
	}

	// Same timestamp as the newest, later id: tie broken by id.
	tie := domain.Message{ID: idx.NewAt(base.Add(2 * time.Second)).String(), UserID: owner.ID, Content: "tie breaker", CreatedAt: base.Add(2 * time.Second)}
	require.NoError(t, s.Messages().AppendMessage(ctx, tie))

	list, err := s.Messages().ListMessages(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 4)
	require.Equal(t, []string{tie.ID, ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID, list[3].ID})

	n, err := s.Messages().CountMessages(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	// Another user's id cannot remove the owner's message.
	deleted, err := s.Messages().DeleteMessage(ctx, other.ID, ids[0])
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = s.Messages().DeleteMessage(ctx, owner.ID, ids[0])
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = s.Messages().DeleteMessage(ctx, owner.ID, ids[0])
	require.NoError(t, err)
	require.False(t, deleted)

	n, err = s.Messages().CountMessages(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// Messages need an owner.
	orphan := domain.Message{ID: idx.New().String(), UserID: "missing", Content: "nobody home", CreatedAt: base}
	require.Error(t, s.Messages().AppendMessage(ctx, orphan))
}

func testCascade(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := NewUser("leaver")
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.NoError(t, s.Messages().AppendMessage(ctx, domain.Message{
		ID: idx.New().String(), UserID: u.ID, Content: "soon to be gone", CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, s.Users().DeleteUser(ctx, u.ID))

	n, err := s.Messages().CountMessages(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func testStaleUnverified(t *testing.T, s store.Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	expired := now.Add(-48 * time.Hour)
	stale := NewUser("stale")
	stale.Verified = false
	stale.VerifyCodeExpiresAt = &expired

	fresh := now.Add(time.Hour)
	pending := NewUser("pending")
	pending.Verified = false
	pending.VerifyCodeExpiresAt = &fresh

	verified := NewUser("verified")

	for _, u := range []domain.User{stale, pending, verified} {
		require.NoError(t, s.Users().CreateUser(ctx, u))
	}

	n, err := s.Users().DeleteStaleUnverified(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Users().GetUserByID(ctx, stale.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Users().GetUserByID(ctx, pending.ID)
	require.NoError(t, err)
	_, err = s.Users().GetUserByID(ctx, verified.ID)
	require.NoError(t, err)
}

func testTransactions(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	rolledBack := NewUser("ghost")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, rolledBack))
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, err = s.Users().GetUserByID(ctx, rolledBack.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	committed := NewUser("solid")
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, committed); err != nil {
			return err
		}
		_, err := tx.Tx(ctx)
		require.Error(t, err)
		return nil
	}))
	_, err = s.Users().GetUserByID(ctx, committed.ID)
	require.NoError(t, err)
}
