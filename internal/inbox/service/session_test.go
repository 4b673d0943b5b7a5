package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/whisper/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()
	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "whisper-test", NumKeys: 1})
	require.NoError(t, err)
	return &SessionService{Store: newTestStore(t), Keys: keys, Issuer: "whisper-test", TTL: time.Hour}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)
	u := seedUser(t, svc.Store, "quietfox", true, false)

	for _, identifier := range []string{"quietfox", "quietfox@example.com", "QuietFox@Example.com"} {
		t.Run(identifier, func(t *testing.T) {
			sess, err := svc.Login(ctx, identifier, "hunter22")
			require.NoError(t, err)
			require.NotEmpty(t, sess.Token)
			require.Equal(t, u.ID, sess.Identity.UserID)
			require.Equal(t, "quietfox", sess.Identity.Username)
			require.True(t, sess.Identity.Verified)
			require.False(t, sess.Identity.AcceptingMessages)
			require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

			claims, err := svc.Keys.Verifier.Verify(sess.Token)
			require.NoError(t, err)
			require.Equal(t, sess.Identity, IdentityFromClaims(claims))
			require.NotEmpty(t, claims.SID)
		})
	}
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)
	seedUser(t, svc.Store, "quietfox", true, true)
	seedUser(t, svc.Store, "pending", false, true)

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "  ", "hunter22")
		require.ErrorIs(t, err, ErrValidation)
		_, err = svc.Login(ctx, "quietfox", "")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown identifier and wrong password look the same", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Login(ctx, "quietfox", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified with correct password", func(t *testing.T) {
		_, err := svc.Login(ctx, "pending", "hunter22")
		require.ErrorIs(t, err, ErrNotVerified)
		_, err = svc.Login(ctx, "pending@example.com", "hunter22")
		require.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("unverified with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "pending", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestFullAccountFlow(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(t)
	mailer := newFakeMailer()
	accounts := &AccountService{Store: sessions.Store, Mailer: mailer}
	inbox := &InboxService{Store: sessions.Store}

	_, err := accounts.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
	require.NoError(t, err)

	_, err = sessions.Login(ctx, "quietfox", "hunter22")
	require.ErrorIs(t, err, ErrNotVerified)

	require.NoError(t, accounts.VerifyCode(ctx, "quietfox", mailer.code("fox@example.com")))

	sess, err := sessions.Login(ctx, "fox@example.com", "hunter22")
	require.NoError(t, err)
	require.True(t, sess.Identity.AcceptingMessages)

	_, err = inbox.SubmitMessage(ctx, "quietfox", "what is your favourite film?")
	require.NoError(t, err)

	msgs, err := inbox.ListMessages(ctx, sess.Identity)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}
