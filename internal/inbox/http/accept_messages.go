package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/whisper/internal/inbox/service"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/inboxsdk"
)

const msgUserGone = "User not found. Please try again later."

type AcceptMessagesHandler struct {
	InboxService *service.InboxService
}

// HandleSet godoc
//
//	@Summary		Set Accept Flag
//	@Description	Turn anonymous messages on or off for the caller.
//	@Tags			Accept Messages
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		inboxsdk.AcceptMessagesRequest	true	"accept_messages"
//	@Success		200		{object}	inboxsdk.Response
//	@Failure		400		{object}	inboxsdk.Response
//	@Failure		401		{object}	inboxsdk.Response
//	@Failure		404		{object}	inboxsdk.Response
//	@Router			/v1/accept-messages [post].
func (h *AcceptMessagesHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req inboxsdk.AcceptMessagesRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil || req.AcceptMessages == nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	accept := *req.AcceptMessages

	_, err := h.InboxService.SetAcceptFlag(r.Context(), identity(r), accept)
	if errors.Is(err, service.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, msgUserGone)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "Error updating message settings")
		return
	}

	msg := "You have disabled message requests."
	if accept {
		msg = "You can now receive messages from others."
	}
	httpx.WriteJSON(w, http.StatusOK, inboxsdk.Response{Success: true, Message: msg})
}

// HandleGet godoc
//
//	@Summary		Get Accept Flag
//	@Description	The stored flag. The value in the session token may be stale.
//	@Tags			Accept Messages
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	inboxsdk.AcceptMessagesResponse
//	@Failure		401	{object}	inboxsdk.Response
//	@Failure		404	{object}	inboxsdk.Response
//	@Router			/v1/accept-messages [get].
func (h *AcceptMessagesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	accepting, err := h.InboxService.GetAcceptFlag(r.Context(), identity(r))
	if errors.Is(err, service.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, msgUserGone)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "Error retrieving message acceptance status")
		return
	}

	msg := "You are not accepting messages right now."
	if accepting {
		msg = "You are currently accepting messages."
	}
	httpx.WriteJSON(w, http.StatusOK, inboxsdk.AcceptMessagesResponse{
		Success:             true,
		Message:             msg,
		IsAcceptingMessages: accepting,
	})
}
