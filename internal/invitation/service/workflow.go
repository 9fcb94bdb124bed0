package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

// WorkflowService is the end-to-end invite path: quota gate, duplicate
// check, key creation, delivery. It composes RegistryService and
// LedgerService rather than re-implementing either.
type WorkflowService struct {
	Store    store.Store
	Registry *RegistryService
	Ledger   *LedgerService
	Hook     NotificationHook
}

func (s *WorkflowService) hook() NotificationHook {
	if s.Hook == nil {
		return LogNotificationHook{}
	}
	return s.Hook
}

// InviteResult reports one outcome of an invite attempt.
type InviteResult struct {
	Key       domain.Key
	Recipient Recipient

	// DuplicateRecipient is set when the recipient email already belongs to
	// an account. The invite proceeds anyway; the flag is advisory.
	DuplicateRecipient bool

	// Delivered is false when the notification hook failed. The key stays
	// persisted so the issuer can re-deliver.
	Delivered bool
}

// Invite runs the full flow for one recipient. Quota is checked before
// anything is created: an unlimited ledger always passes, and negative
// headroom from allocation reductions blocks just like zero does.
func (s *WorkflowService) Invite(
	ctx context.Context,
	issuerID string,
	rec Recipient,
	extra map[string]any,
) (InviteResult, error) {
	log := slogx.FromContext(ctx)

	remaining, err := s.Ledger.Remaining(ctx, issuerID)
	if err != nil {
		return InviteResult{}, err
	}
	if remaining != domain.AllocationUnlimited && remaining <= 0 {
		return InviteResult{}, ErrQuotaExceeded
	}

	res := InviteResult{Recipient: rec}
	if rec.Email != "" {
		if _, err := s.Store.Users().GetUserByEmail(ctx, rec.Email); err == nil {
			res.DuplicateRecipient = true
			log.Warn("invitation recipient already has an account",
				slog.String("issuer_id", issuerID),
				slog.String("recipient", rec.Email),
			)
		} else if !errors.Is(err, store.ErrNotFound) {
			return InviteResult{}, err
		}
	}

	k, err := s.Registry.Create(ctx, issuerID, rec, true)
	if err != nil {
		return InviteResult{}, err
	}
	res.Key = k

	// Delivery failure is not fatal: the spend already happened and the
	// issuer gets the key back to retry with.
	if err := s.Registry.Deliver(ctx, k, s.hook(), extra); err != nil {
		res.Delivered = false
		return res, nil
	}
	res.Delivered = true
	return res, nil
}

// InviteBulk runs Invite once per recipient, continuing past individual
// failures. Results line up with successes only; the joined error carries
// every failure.
func (s *WorkflowService) InviteBulk(
	ctx context.Context,
	issuerID string,
	recipients []Recipient,
	extra map[string]any,
) ([]InviteResult, error) {
	var (
		results []InviteResult
		errs    []error
	)
	for _, rec := range recipients {
		res, err := s.Invite(ctx, issuerID, rec, extra)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// Preview builds the delivery context for an invite without creating or
// spending anything, for callers rendering the message up front.
func (s *WorkflowService) Preview(
	ctx context.Context,
	issuerID string,
	rec Recipient,
	extra map[string]any,
) (DeliveryContext, error) {
	k, err := s.Registry.Create(ctx, issuerID, rec, false)
	if err != nil {
		return nil, err
	}
	return s.Registry.DeliveryContext(ctx, k, extra)
}
