package http

import (
	"net/http"

	"github.com/aussiebroadwan/whisper/internal/inbox/service"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/inboxsdk"
)

type AccountHandler struct {
	AccountService *service.AccountService
}

// HandleSignUp godoc
//
//	@Summary		Sign Up
//	@Description	Register an account. A six digit verification code is e-mailed to the address.
//	@Description	Signing up again with the e-mail of an unverified account issues a new code.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inboxsdk.SignUpRequest	true	"username, email, password"
//	@Success		201		{object}	inboxsdk.Response
//	@Failure		400		{object}	inboxsdk.Response	"validation failed"
//	@Failure		409		{object}	inboxsdk.Response	"username or e-mail taken"
//	@Failure		429		{object}	inboxsdk.Response
//	@Failure		502		{object}	inboxsdk.Response	"verification e-mail could not be sent"
//	@Router			/v1/sign-up [post].
func (h *AccountHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req inboxsdk.SignUpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if _, err := h.AccountService.SignUp(r.Context(), req.Username, req.Email, req.Password); err != nil {
		writeServiceError(w, r, err, "Error registering user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, inboxsdk.Response{
		Success: true,
		Message: "User registered successfully. Please verify your email.",
	})
}

// HandleVerify godoc
//
//	@Summary		Verify Account
//	@Description	Confirm the e-mailed code. Verifying an already verified account succeeds.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inboxsdk.VerifyRequest	true	"username, code"
//	@Success		200		{object}	inboxsdk.Response
//	@Failure		400		{object}	inboxsdk.Response	"invalid or expired code"
//	@Failure		404		{object}	inboxsdk.Response	"no such user"
//	@Router			/v1/verify [post].
func (h *AccountHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req inboxsdk.VerifyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.AccountService.VerifyCode(r.Context(), req.Username, req.Code); err != nil {
		writeServiceError(w, r, err, "Error verifying user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inboxsdk.Response{
		Success: true,
		Message: "Account verified successfully",
	})
}

// HandleCheckUsername godoc
//
//	@Summary		Check Username
//	@Description	Report whether a username is free. Unverified sign-ups do not hold a name.
//	@Tags			Accounts
//	@Produce		json
//	@Param			username	path		string	true	"Username to check"
//	@Success		200			{object}	inboxsdk.UsernameResponse
//	@Failure		400			{object}	inboxsdk.Response	"invalid username"
//	@Router			/v1/usernames/{username} [get].
func (h *AccountHandler) HandleCheckUsername(w http.ResponseWriter, r *http.Request) {
	available, err := h.AccountService.CheckUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err, "Error checking username")
		return
	}

	msg := "Username is available"
	if !available {
		msg = "Username is already taken"
	}
	httpx.WriteJSON(w, http.StatusOK, inboxsdk.UsernameResponse{
		Success:   true,
		Message:   msg,
		Available: available,
	})
}
