package http

import (
	"net/http"

	"github.com/aussiebroadwan/whisper/internal/inbox/suggest"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/inboxsdk"
	"github.com/aussiebroadwan/whisper/pkg/slogx"
)

type SuggestionsHandler struct {
	SuggestService *suggest.Service
}

// ServeHTTP godoc
//
//	@Summary		Suggest Messages
//	@Description	Three generated conversation starters. questions is the raw text, suggestions the parsed list (may hold fewer than three).
//	@Tags			Suggestions
//	@Produce		json
//	@Success		200	{object}	inboxsdk.SuggestionsResponse
//	@Failure		500	{object}	inboxsdk.SuggestionsErrorResponse
//	@Router			/v1/suggestions [post].
func (h *SuggestionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, err := h.SuggestService.Fetch(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("suggestions failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, inboxsdk.SuggestionsErrorResponse{
			Error:   "Failed to generate suggestions",
			Details: err.Error(),
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inboxsdk.SuggestionsResponse{
		Questions:   s.Raw,
		Suggestions: s.Questions,
	})
}
