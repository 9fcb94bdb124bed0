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

type InviteCreateHandler struct {
	WorkflowService *service.WorkflowService
}

// ServeHTTP godoc
//
//	@Summary		Create Invitations
//	@Description	Create and deliver invitation keys for one or more recipients on behalf of the issuer.
//	@Description	Each recipient costs one unit of the issuer's allocation; the whole request is rejected once the allocation runs out.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.InviteRequest		true	"Invite request"
//	@Success		201		{object}	invitesdk.InviteResponse	"invitations"
//	@Failure		400		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/invitations [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.IssuerID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "issuer_id is required")
		return
	}
	if len(req.Recipients) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "at least one recipient is required")
		return
	}

	recipients := make([]service.Recipient, 0, len(req.Recipients))
	for _, rec := range req.Recipients {
		recipients = append(recipients, service.Recipient{
			Email:     rec.Email,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Other:     rec.Other,
		})
	}

	results, err := h.WorkflowService.InviteBulk(ctx, req.IssuerID, recipients, req.Extra)
	if err != nil && len(results) == 0 {
		switch {
		case errors.Is(err, service.ErrQuotaExceeded):
			httpx.WriteError(w, http.StatusForbidden, "quota_exceeded",
				"Invitation allocation exhausted")
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"Unknown issuer or invalid parameters")
		default:
			log.Error("failed to create invitations", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Failed to create invitations")
		}
		return
	}

	resp := invitesdk.InviteResponse{
		Invitations: make([]invitesdk.InviteResult, 0, len(results)),
	}
	for _, res := range results {
		resp.Invitations = append(resp.Invitations, invitesdk.InviteResult{
			Key:           res.Key.Key,
			InvitationURL: h.WorkflowService.Registry.InvitationURL(res.Key),
			ExpiresAt:     res.Key.ExpiryDisplay(),
			Recipient: invitesdk.Recipient{
				Email:     res.Recipient.Email,
				FirstName: res.Recipient.FirstName,
				LastName:  res.Recipient.LastName,
				Other:     res.Recipient.Other,
			},
			Delivered:          res.Delivered,
			DuplicateRecipient: res.DuplicateRecipient,
		})
	}

	httpx.WriteJSON(w, http.StatusCreated, resp)
}
