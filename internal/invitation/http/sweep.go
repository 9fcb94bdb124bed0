package http

import (
	"net/http"

	"github.com/wattlehq/gatepass/internal/invitation/service"
	"github.com/wattlehq/gatepass/pkg/httpx"
	"github.com/wattlehq/gatepass/pkg/invitesdk"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

type SweepHandler struct {
	RegistryService *service.RegistryService
}

// ServeHTTP godoc
//
//	@Summary		Sweep Expired Keys
//	@Description	Delete every expired invitation key immediately, regardless of remaining uses.
//	@Description	Exhausted-but-unexpired keys are left in place. Idempotent.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	invitesdk.SweepResponse	"deleted"
//	@Failure		500	{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/admin/sweep [post].
func (h *SweepHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deleted, err := h.RegistryService.SweepExpired(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("sweep failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Sweep failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.SweepResponse{Deleted: deleted})
}
