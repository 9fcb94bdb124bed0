package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/service"
	"github.com/wattlehq/gatepass/pkg/httpx"
	"github.com/wattlehq/gatepass/pkg/invitesdk"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

type KeyShowHandler struct {
	RegistryService *service.RegistryService
}

func keyResponse(k domain.Key) invitesdk.KeyResponse {
	return invitesdk.KeyResponse{
		Key:           k.Key,
		IssuerID:      k.IssuerID,
		CreatedAt:     k.CreatedAt.Format(time.RFC3339),
		UsesRemaining: k.UsesRemaining,
		DurationDays:  k.DurationDays,
		ExpiresAt:     k.ExpiryDisplay(),
		Recipient: invitesdk.Recipient{
			Email:     k.RecipientEmail,
			FirstName: k.RecipientFirstName,
			LastName:  k.RecipientLastName,
			Other:     k.RecipientOther,
		},
		Groups:     k.Groups(),
		RedeemedBy: k.RedeemedBy,
	}
}

// ServeHTTP godoc
//
//	@Summary		Check Invitation Key
//	@Description	Look up an invitation key and report whether it can still be redeemed.
//	@Description	Unknown, expired and exhausted keys come back with distinct error codes so signup pages can render specific messaging.
//	@Tags			Invitations
//	@Produce		json
//	@Param			key	path		string					true	"Invitation key"
//	@Success		200	{object}	invitesdk.KeyResponse	"key details"
//	@Failure		404	{object}	invitesdk.ErrorResponse	"invitation_not_found"
//	@Failure		409	{object}	invitesdk.ErrorResponse	"invitation_exhausted"
//	@Failure		410	{object}	invitesdk.ErrorResponse	"invitation_expired"
//	@Router			/v1/invitations/{key} [get].
func (h *KeyShowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	key := r.PathValue("key")

	k, err := h.RegistryService.CheckValid(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrKeyNotFound):
			httpx.WriteError(w, http.StatusNotFound, "invitation_not_found",
				"No invitation with that key")
		case errors.Is(err, service.ErrKeyExpired):
			httpx.WriteError(w, http.StatusGone, "invitation_expired",
				"The invitation expired on "+k.ExpiryDisplay())
		case errors.Is(err, service.ErrKeyExhausted):
			httpx.WriteError(w, http.StatusConflict, "invitation_exhausted",
				"The invitation has already been used")
		default:
			log.Error("failed to check invitation key", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Failed to check invitation key")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, keyResponse(k))
}
