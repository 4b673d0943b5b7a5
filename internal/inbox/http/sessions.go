package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/service"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/inboxsdk"
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Log In
//	@Description	Exchange an e-mail address or username and password for a session token.
//	@Description	Unknown identifiers and wrong passwords give the same 401. Unverified accounts get 403.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inboxsdk.LoginRequest	true	"identifier, password"
//	@Success		200		{object}	inboxsdk.LoginResponse
//	@Failure		400		{object}	inboxsdk.Response	"missing fields"
//	@Failure		401		{object}	inboxsdk.Response	"incorrect credentials"
//	@Failure		403		{object}	inboxsdk.Response	"account not verified"
//	@Failure		429		{object}	inboxsdk.Response
//	@Router			/v1/sessions [post].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req inboxsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	sess, err := h.SessionService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inboxsdk.LoginResponse{
		Success:   true,
		Message:   "Logged in",
		Token:     sess.Token,
		ExpiresIn: int(time.Until(sess.ExpiresAt).Seconds()),
		User: inboxsdk.User{
			ID:                sess.Identity.UserID,
			Username:          sess.Identity.Username,
			Verified:          sess.Identity.Verified,
			AcceptingMessages: sess.Identity.AcceptingMessages,
		},
	})
}
