package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/whisper/internal/inbox/service"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/inboxsdk"
)

type MessagesHandler struct {
	InboxService *service.InboxService
}

// HandleSubmit godoc
//
//	@Summary		Send Message
//	@Description	Leave an anonymous message for a user. No session is needed.
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inboxsdk.SubmitMessageRequest	true	"username, content (10-300 characters)"
//	@Success		201		{object}	inboxsdk.Response
//	@Failure		400		{object}	inboxsdk.Response	"invalid content"
//	@Failure		403		{object}	inboxsdk.Response	"user is not accepting messages"
//	@Failure		404		{object}	inboxsdk.Response	"no such user"
//	@Failure		429		{object}	inboxsdk.Response
//	@Router			/v1/messages [post].
func (h *MessagesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req inboxsdk.SubmitMessageRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if _, err := h.InboxService.SubmitMessage(r.Context(), req.Username, req.Content); err != nil {
		writeServiceError(w, r, err, "Error adding message")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, inboxsdk.Response{
		Success: true,
		Message: "Message sent successfully",
	})
}

// HandleList godoc
//
//	@Summary		List Messages
//	@Description	The caller's inbox, newest first. An empty inbox is an empty list.
//	@Tags			Messages
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	inboxsdk.MessagesResponse
//	@Failure		401	{object}	inboxsdk.Response
//	@Failure		404	{object}	inboxsdk.Response	"account no longer exists"
//	@Failure		500	{object}	inboxsdk.Response
//	@Router			/v1/messages [get].
func (h *MessagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.InboxService.ListMessages(r.Context(), identity(r))
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch messages")
		return
	}

	out := make([]inboxsdk.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, inboxsdk.Message{ID: m.ID, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	httpx.WriteJSON(w, http.StatusOK, inboxsdk.MessagesResponse{Success: true, Messages: out})
}

// HandleDelete godoc
//
//	@Summary		Delete Message
//	@Description	Remove one of the caller's messages.
//	@Tags			Messages
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Message ID"
//	@Success		200	{object}	inboxsdk.Response
//	@Failure		401	{object}	inboxsdk.Response
//	@Failure		404	{object}	inboxsdk.Response	"not found or already deleted"
//	@Failure		500	{object}	inboxsdk.Response
//	@Router			/v1/messages/{id} [delete].
func (h *MessagesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.InboxService.DeleteMessage(r.Context(), identity(r), r.PathValue("id"))
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		writeServiceError(w, r, err, "Error deleting message")
		return
	}
	if !deleted {
		httpx.WriteError(w, http.StatusNotFound, "Message not found or already deleted")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inboxsdk.Response{Success: true, Message: "Message deleted"})
}
