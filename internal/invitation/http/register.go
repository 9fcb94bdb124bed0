package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wattlehq/gatepass/internal/invitation/service"
	"github.com/wattlehq/gatepass/pkg/httpx"
	"github.com/wattlehq/gatepass/pkg/invitesdk"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Register Through Invitation
//	@Description	Create an account by redeeming an invitation key. One use of the key is consumed atomically;
//	@Description	losing the race for the key's last use fails the registration without costing the username.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	invitesdk.RegisterResponse	"user_id, username"
//	@Failure		400		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	invitesdk.ErrorResponse		"invitation_not_found"
//	@Failure		409		{object}	invitesdk.ErrorResponse		"invitation_exhausted or username_taken"
//	@Failure		410		{object}	invitesdk.ErrorResponse		"invitation_expired"
//	@Failure		500		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	u, err := h.RegistrationService.Register(ctx, service.RegisterRequest{
		Key:       req.Key,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"key, username and password are required")
		case errors.Is(err, service.ErrKeyNotFound):
			httpx.WriteError(w, http.StatusNotFound, "invitation_not_found",
				"No invitation with that key")
		case errors.Is(err, service.ErrKeyExpired):
			httpx.WriteError(w, http.StatusGone, "invitation_expired",
				"The invitation has expired")
		case errors.Is(err, service.ErrKeyExhausted):
			httpx.WriteError(w, http.StatusConflict, "invitation_exhausted",
				"The invitation has already been used")
		case errors.Is(err, service.ErrUsernameAlreadyTaken):
			httpx.WriteError(w, http.StatusConflict, "username_taken",
				"That username is already taken")
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Registration failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, invitesdk.RegisterResponse{
		UserID:   u.ID,
		Username: u.Username,
	})
}
