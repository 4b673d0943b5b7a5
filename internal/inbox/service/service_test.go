package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
	"github.com/aussiebroadwan/whisper/internal/inbox/store"
	"github.com/aussiebroadwan/whisper/internal/inbox/store/drivers/sqlite"
	"github.com/aussiebroadwan/whisper/pkg/cryptox"
	"github.com/aussiebroadwan/whisper/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations(context.Background()))
	return st
}

// seedUser stores a user with password "hunter22".
func seedUser(t *testing.T, st store.Store, username string, verified, accepting bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("hunter22")
	require.NoError(t, err)

	now := time.Now().UTC()
	expires := now.Add(time.Hour)
	u := domain.User{
		ID:                idx.NewAt(now).String(),
		Username:          username,
		Email:             username + "@example.com",
		PasswordHash:      hash,
		Verified:          verified,
		AcceptingMessages: accepting,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if !verified {
		u.VerifyCodeHash = cryptox.FingerprintToken("000000")
		u.VerifyCodeExpiresAt = &expires
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *clock) Advance(d time.Duration) { c.Set(c.Now().Add(d)) }

// fakeMailer records the last code sent to each address.
type fakeMailer struct {
	mu    sync.Mutex
	codes map[string]string
	names map[string]string
	err   error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: map[string]string{}, names: map[string]string{}}
}

func (m *fakeMailer) SendVerification(_ context.Context, to, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.codes[to] = code
	m.names[to] = username
	return nil
}

func (m *fakeMailer) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

var errSMTPDown = errors.New("smtp: connection refused")
