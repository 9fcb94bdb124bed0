package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wattlehq/gatepass/internal/invitation/service"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/pkg/httpx"
	"github.com/wattlehq/gatepass/pkg/invitesdk"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

type RemainingHandler struct {
	LedgerService *service.LedgerService
}

// ServeHTTP godoc
//
//	@Summary		Remaining Invitations
//	@Description	Report a user's invitation allocation standing. Remaining is -1 for unlimited ledgers
//	@Description	and may be negative when the allocation was reduced below what was already sent.
//	@Tags			Ledger
//	@Produce		json
//	@Param			user	path		string						true	"User ID"
//	@Success		200		{object}	invitesdk.RemainingResponse	"remaining, allocated, sent, accepted"
//	@Failure		404		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	invitesdk.ErrorResponse		"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/invitations/remaining/{user} [get].
func (h *RemainingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := r.PathValue("user")

	if _, err := h.LedgerService.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "No such user")
			return
		}
		log.Error("failed to look up user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to look up user")
		return
	}

	l, err := h.LedgerService.EnsureLedger(ctx, userID)
	if err != nil {
		log.Error("failed to load ledger", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to load ledger")
		return
	}

	sent, err := h.LedgerService.Store.Keys().CountKeysByIssuer(ctx, userID)
	if err != nil {
		log.Error("failed to count issued keys", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to count issued keys")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.RemainingResponse{
		UserID:    userID,
		Remaining: l.Remaining(sent),
		Allocated: l.Allocated,
		Sent:      sent,
		Accepted:  l.Accepted,
	})
}

type TopOffHandler struct {
	LedgerService *service.LedgerService
}

// ServeHTTP godoc
//
//	@Summary		Top Off Allocations
//	@Description	Raise allocations by exactly the shortfall so remaining reaches the target.
//	@Description	Users already at or above the target, and unlimited ledgers, are untouched. Empty user_id applies to every account.
//	@Tags			Ledger
//	@Accept			json
//	@Param			request	body	invitesdk.TopOffRequest	true	"Top off request"
//	@Success		204		"allocations raised"
//	@Failure		400		{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/ledger/topoff [post].
func (h *TopOffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.TopOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Target <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "target must be positive")
		return
	}

	var err error
	if req.UserID == "" {
		err = h.LedgerService.TopOffAll(ctx, req.Target)
	} else {
		err = h.LedgerService.TopOff(ctx, req.UserID, req.Target)
	}
	if err != nil {
		log.Error("topoff failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Top off failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type GrantHandler struct {
	LedgerService *service.LedgerService
}

// ServeHTTP godoc
//
//	@Summary		Grant Allocations
//	@Description	Raise allocations by a fixed delta. Unlimited ledgers are untouched. Empty user_id applies to every account.
//	@Tags			Ledger
//	@Accept			json
//	@Param			request	body	invitesdk.GrantRequest	true	"Grant request"
//	@Success		204		"allocations raised"
//	@Failure		400		{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/ledger/grant [post].
func (h *GrantHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Delta <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "delta must be positive")
		return
	}

	var err error
	if req.UserID == "" {
		err = h.LedgerService.GrantAll(ctx, req.Delta)
	} else {
		err = h.LedgerService.Grant(ctx, req.UserID, req.Delta)
	}
	if err != nil {
		log.Error("grant failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Grant failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
