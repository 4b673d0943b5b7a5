package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (*AccountService, *fakeMailer, *clock) {
	t.Helper()
	mailer := newFakeMailer()
	clk := newClock()
	return &AccountService{Store: newTestStore(t), Mailer: mailer, Now: clk.Now}, mailer, clk
}

func TestSignUpAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newAccountService(t)

	u, err := svc.SignUp(ctx, "  quietfox ", "Fox@Example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "quietfox", u.Username)
	require.Equal(t, "fox@example.com", u.Email)
	require.False(t, u.Verified)
	require.True(t, u.AcceptingMessages)

	code := mailer.code("fox@example.com")
	require.Len(t, code, CodeDigits)
	require.NotEqual(t, code, u.VerifyCodeHash)

	require.ErrorIs(t, svc.VerifyCode(ctx, "quietfox", "12345"), ErrValidation)
	if code != "999999" {
		require.ErrorIs(t, svc.VerifyCode(ctx, "quietfox", "999999"), ErrInvalidCode)
	}
	require.ErrorIs(t, svc.VerifyCode(ctx, "nobody", code), ErrNotFound)

	require.NoError(t, svc.VerifyCode(ctx, "quietfox", code))
	require.NoError(t, svc.VerifyCode(ctx, "quietfox", code), "verifying twice is fine")

	stored, err := svc.Store.Users().GetUserByUsername(ctx, "quietfox")
	require.NoError(t, err)
	require.True(t, stored.Verified)
}

func TestVerifyCodeExpired(t *testing.T) {
	ctx := context.Background()
	svc, mailer, clk := newAccountService(t)

	_, err := svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
	require.NoError(t, err)
	code := mailer.code("fox@example.com")

	clk.Advance(DefaultCodeTTL)
	require.ErrorIs(t, svc.VerifyCode(ctx, "quietfox", code), ErrCodeExpired)
}

func TestSignUpConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("verified username", func(t *testing.T) {
		svc, mailer, _ := newAccountService(t)
		_, err := svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
		require.NoError(t, err)
		require.NoError(t, svc.VerifyCode(ctx, "quietfox", mailer.code("fox@example.com")))

		_, err = svc.SignUp(ctx, "quietfox", "other@example.com", "hunter22")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("verified email", func(t *testing.T) {
		svc, mailer, _ := newAccountService(t)
		_, err := svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
		require.NoError(t, err)
		require.NoError(t, svc.VerifyCode(ctx, "quietfox", mailer.code("fox@example.com")))

		_, err = svc.SignUp(ctx, "otherfox", "FOX@example.com", "hunter22")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("pending username with a live code", func(t *testing.T) {
		svc, _, _ := newAccountService(t)
		_, err := svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
		require.NoError(t, err)

		_, err = svc.SignUp(ctx, "quietfox", "other@example.com", "hunter22")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("pending username with a lapsed code is released", func(t *testing.T) {
		svc, mailer, clk := newAccountService(t)
		first, err := svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
		require.NoError(t, err)

		clk.Advance(2 * DefaultCodeTTL)
		second, err := svc.SignUp(ctx, "quietfox", "other@example.com", "hunter22")
		require.NoError(t, err)
		require.NotEqual(t, first.ID, second.ID)

		_, err = svc.Store.Users().GetUserByEmail(ctx, "fox@example.com")
		require.Error(t, err)
		require.NoError(t, svc.VerifyCode(ctx, "quietfox", mailer.code("other@example.com")))
	})
}

func TestSignUpAgainRefreshesPendingAccount(t *testing.T) {
	ctx := context.Background()
	svc, mailer, clk := newAccountService(t)

	first, err := svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
	require.NoError(t, err)
	oldCode := mailer.code("fox@example.com")

	clk.Advance(2 * time.Second)
	again, err := svc.SignUp(ctx, "renamed", "fox@example.com", "newpassword")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)
	require.Equal(t, "quietfox", again.Username, "the stored username is kept")
	require.Equal(t, "quietfox", mailer.names["fox@example.com"])

	newCode := mailer.code("fox@example.com")
	if newCode != oldCode {
		require.ErrorIs(t, svc.VerifyCode(ctx, "quietfox", oldCode), ErrInvalidCode)
	}
	require.NoError(t, svc.VerifyCode(ctx, "quietfox", newCode))
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountService(t)

	cases := []struct {
		name, username, email, password string
	}{
		{"short username", "q", "fox@example.com", "hunter22"},
		{"long username", "abcdefghijklmnopqrstu", "fox@example.com", "hunter22"},
		{"special characters", "quiet-fox", "fox@example.com", "hunter22"},
		{"bad email", "quietfox", "not-an-email", "hunter22"},
		{"display name email", "quietfox", "Fox <fox@example.com>", "hunter22"},
		{"short password", "quietfox", "fox@example.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tc.username, tc.email, tc.password)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSignUpMailFailure(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newAccountService(t)
	mailer.err = errSMTPDown

	_, err := svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
	require.ErrorIs(t, err, ErrMailDelivery)
	require.ErrorIs(t, err, ErrService)
	require.ErrorIs(t, err, errSMTPDown)

	// The pending account stays so a retry can refresh it.
	mailer.err = nil
	_, err = svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
	require.NoError(t, err)
}

func TestCheckUsername(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newAccountService(t)

	ok, err := svc.CheckUsername(ctx, "quietfox")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.SignUp(ctx, "quietfox", "fox@example.com", "hunter22")
	require.NoError(t, err)

	ok, err = svc.CheckUsername(ctx, "quietfox")
	require.NoError(t, err)
	require.True(t, ok, "pending sign-ups do not hold a name")

	require.NoError(t, svc.VerifyCode(ctx, "quietfox", mailer.code("fox@example.com")))
	ok, err = svc.CheckUsername(ctx, "quietfox")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = svc.CheckUsername(ctx, "no spaces")
	require.ErrorIs(t, err, ErrValidation)
}
