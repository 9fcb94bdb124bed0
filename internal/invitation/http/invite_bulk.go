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

type BulkKeyHandler struct {
	RegistryService *service.RegistryService
}

// ServeHTTP godoc
//
//	@Summary		Create Bulk Invitation Key
//	@Description	Create a single invitation key redeemable up to a given number of times, e.g. a memorable code for an event.
//	@Description	Bulk keys bypass per-recipient delivery; distribution of the code is up to the issuer.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.BulkKeyRequest	true	"Bulk key request"
//	@Success		201		{object}	invitesdk.KeyResponse		"key"
//	@Failure		400		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/invitations/bulk [post].
func (h *BulkKeyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.BulkKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.IssuerID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "issuer_id is required")
		return
	}

	var rec *service.Recipient
	if req.Recipient != nil {
		rec = &service.Recipient{
			Email:     req.Recipient.Email,
			FirstName: req.Recipient.FirstName,
			LastName:  req.Recipient.LastName,
			Other:     req.Recipient.Other,
		}
	}

	k, err := h.RegistryService.CreateBulk(ctx, req.IssuerID, req.Key, req.Uses, rec)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"Unknown issuer or invalid use count")
		case errors.Is(err, service.ErrKeyTaken):
			httpx.WriteError(w, http.StatusConflict, "key_taken",
				"An invitation key with that value already exists")
		default:
			log.Error("failed to create bulk key", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Failed to create bulk key")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, keyResponse(k))
}
