package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
	"github.com/aussiebroadwan/whisper/internal/inbox/service"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/slogx"
)

const (
	msgInternal   = "Something went wrong. Please try again later."
	msgBadRequest = "Invalid request body"
)

// writeServiceError maps a service error to its status. internalMsg replaces
// the generic text for unexpected failures when set.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		httpx.WriteError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, msgBadRequest)

	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgNotAuthenticated)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Incorrect credentials")
	case errors.Is(err, service.ErrNotVerified):
		httpx.WriteError(w, http.StatusForbidden, "Please verify your account before logging in")

	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrMessagingDisabled):
		httpx.WriteError(w, http.StatusForbidden, "User is not accepting messages")

	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusConflict, "Username is already taken")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "User already exists with this email")
	case errors.Is(err, service.ErrInvalidCode):
		httpx.WriteError(w, http.StatusBadRequest, "Incorrect verification code")
	case errors.Is(err, service.ErrCodeExpired):
		httpx.WriteError(w, http.StatusBadRequest, "Verification code has expired. Please sign up again to get a new code.")

	case errors.Is(err, service.ErrMailDelivery):
		httpx.WriteError(w, http.StatusBadGateway, "Failed to send verification email")

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		if internalMsg == "" {
			internalMsg = msgInternal
		}
		httpx.WriteError(w, http.StatusInternalServerError, internalMsg)
	}
}

// identity returns the caller set by AuthnMiddleware, or the zero identity.
func identity(r *http.Request) domain.Identity {
	c, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		return domain.Identity{}
	}
	return service.IdentityFromClaims(c)
}
