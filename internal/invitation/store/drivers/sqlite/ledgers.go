package sqlite

import (
	"context"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
)

type ledgersRepo struct {
	db dbtx
}

func (r *ledgersRepo) GetLedger(ctx context.Context, inviterID string) (domain.Ledger, error) {
	var l domain.Ledger
	err := r.db.QueryRowContext(ctx, `
		SELECT inviter_id, invites_allocated, invites_accepted, created_at, updated_at
		FROM invitation_ledgers
		WHERE inviter_id = ?`, inviterID).Scan(
		&l.InviterID, &l.Allocated, &l.Accepted, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return domain.Ledger{}, mapNotFound(err)
	}
	return l, nil
}

func (r *ledgersRepo) CreateLedger(ctx context.Context, l domain.Ledger) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitation_ledgers
			(inviter_id, invites_allocated, invites_accepted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		l.InviterID, l.Allocated, l.Accepted, l.CreatedAt, l.UpdatedAt,
	)
	return mapConflict(err)
}

// AddAllocation raises the cap in a single UPDATE so concurrent grants and
// redemption increments cannot lose updates. Unlimited ledgers are skipped
// by the WHERE clause.
func (r *ledgersRepo) AddAllocation(ctx context.Context, inviterID string, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitation_ledgers
		SET invites_allocated = invites_allocated + ?, updated_at = ?
		WHERE inviter_id = ? AND invites_allocated <> ?`,
		delta, time.Now().UTC(), inviterID, domain.AllocationUnlimited)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// Zero rows: either the ledger doesn't exist or it's unlimited (a no-op).
	if _, err := r.GetLedger(ctx, inviterID); err != nil {
		return err
	}
	return nil
}

func (r *ledgersRepo) IncrementAccepted(ctx context.Context, inviterID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitation_ledgers
		SET invites_accepted = invites_accepted + 1, updated_at = ?
		WHERE inviter_id = ?`,
		time.Now().UTC(), inviterID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
