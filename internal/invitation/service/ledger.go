package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

// LedgerService tracks per-user invitation allocation. The "sent" figure is
// always derived by counting the user's keys, never stored, so it cannot
// drift from reality.
type LedgerService struct {
	Store store.Store

	// DefaultAllocation is granted when a ledger is first materialized.
	// domain.AllocationUnlimited is allowed.
	DefaultAllocation int
}

// EnsureLedger lazily materializes the ledger entry on first touch. Losing a
// creation race to a concurrent first-touch is fine; the winner's row is
// read back.
func (s *LedgerService) EnsureLedger(ctx context.Context, userID string) (domain.Ledger, error) {
	l, err := s.Store.Ledgers().GetLedger(ctx, userID)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Ledger{}, err
	}

	now := time.Now().UTC()
	l = domain.Ledger{
		InviterID: userID,
		Allocated: s.DefaultAllocation,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if createErr := s.Store.Ledgers().CreateLedger(ctx, l); createErr != nil {
		return s.Store.Ledgers().GetLedger(ctx, userID)
	}
	return l, nil
}

// Remaining reports how many invitations the user may still issue:
// domain.AllocationUnlimited for uncapped ledgers, otherwise allocated minus
// the derived sent count (negative when over-allocated, reported as-is).
func (s *LedgerService) Remaining(ctx context.Context, userID string) (int, error) {
	l, err := s.EnsureLedger(ctx, userID)
	if err != nil {
		return 0, err
	}

	sent, err := s.Store.Keys().CountKeysByIssuer(ctx, userID)
	if err != nil {
		return 0, err
	}
	return l.Remaining(sent), nil
}

// TopOff raises the user's allocation by exactly the shortfall so that
// remaining reaches targetMinimum. Already at or above target, or unlimited:
// no-op.
func (s *LedgerService) TopOff(ctx context.Context, userID string, targetMinimum int) error {
	l, err := s.EnsureLedger(ctx, userID)
	if err != nil {
		return err
	}
	if l.Unlimited() {
		return nil
	}

	sent, err := s.Store.Keys().CountKeysByIssuer(ctx, userID)
	if err != nil {
		return err
	}

	remaining := l.Remaining(sent)
	if remaining >= targetMinimum {
		return nil
	}
	return s.Store.Ledgers().AddAllocation(ctx, userID, targetMinimum-remaining)
}

// Grant raises the user's allocation by delta. Unlimited ledgers are left
// untouched.
func (s *LedgerService) Grant(ctx context.Context, userID string, delta int) error {
	if _, err := s.EnsureLedger(ctx, userID); err != nil {
		return err
	}
	return s.Store.Ledgers().AddAllocation(ctx, userID, delta)
}

// TopOffAll applies TopOff to every known user account. One failing user
// does not stop the batch; failures are joined into the returned error.
func (s *LedgerService) TopOffAll(ctx context.Context, targetMinimum int) error {
	return s.forAllUsers(ctx, "topoff", func(userID string) error {
		return s.TopOff(ctx, userID, targetMinimum)
	})
}

// GrantAll applies Grant to every known user account.
func (s *LedgerService) GrantAll(ctx context.Context, delta int) error {
	return s.forAllUsers(ctx, "grant", func(userID string) error {
		return s.Grant(ctx, userID, delta)
	})
}

func (s *LedgerService) forAllUsers(ctx context.Context, op string, fn func(userID string) error) error {
	log := slogx.FromContext(ctx)

	ids, err := s.Store.Users().ListUserIDs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		if err := fn(id); err != nil {
			log.Warn("bulk ledger operation failed for user",
				slog.String("op", op),
				slog.String("user_id", id),
				slog.Any("error", err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IncrementAccepted bumps the issuer's accepted counter, materializing the
// ledger if a pre-provisioning account slips through.
func (s *LedgerService) IncrementAccepted(ctx context.Context, userID string) error {
	err := s.Store.Ledgers().IncrementAccepted(ctx, userID)
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := s.EnsureLedger(ctx, userID); err != nil {
		return err
	}
	return s.Store.Ledgers().IncrementAccepted(ctx, userID)
}
