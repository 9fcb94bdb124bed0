package sqlite

import (
	"context"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
)

type keysRepo struct {
	db dbtx
}

const keyColumns = `key, issuer_id, created_at, uses_remaining, duration_days,
	recipient_email, recipient_first_name, recipient_last_name, recipient_other,
	group_names`

func (r *keysRepo) CreateKey(ctx context.Context, k domain.Key) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitation_keys (`+keyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		k.Key, k.IssuerID, k.CreatedAt, k.UsesRemaining, k.DurationDays,
		k.RecipientEmail, k.RecipientFirstName, k.RecipientLastName,
		k.RecipientOther, k.GroupNames,
	)
	return mapConflict(err)
}

func (r *keysRepo) GetKey(ctx context.Context, key string) (domain.Key, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+keyColumns+`
		FROM invitation_keys
		WHERE key = ?`, key)

	k, err := scanKey(row)
	if err != nil {
		return domain.Key{}, mapNotFound(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM invitation_redemptions
		WHERE key = ?
		ORDER BY redeemed_at`, key)
	if err != nil {
		return domain.Key{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return domain.Key{}, err
		}
		k.RedeemedBy = append(k.RedeemedBy, userID)
	}
	return k, rows.Err()
}

func (r *keysRepo) ListKeys(ctx context.Context) ([]domain.Key, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+keyColumns+`
		FROM invitation_keys
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []domain.Key
	for rows.Next() {
		k, err := scanKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (r *keysRepo) CountKeysByIssuer(ctx context.Context, issuerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM invitation_keys WHERE issuer_id = ?`, issuerID).Scan(&n)
	return n, err
}

// ConsumeUse is the transactional compare-and-decrement: the WHERE clause
// guarantees the decrement only lands while uses remain, so N racing
// redeemers can never drive uses_remaining below zero.
func (r *keysRepo) ConsumeUse(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitation_keys
		SET uses_remaining = uses_remaining - 1
		WHERE key = ? AND uses_remaining > 0`, key)
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

	// Distinguish a missing key from an exhausted one.
	var exists int
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM invitation_keys WHERE key = ?`, key).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return store.ErrNotFound
	}
	return store.ErrNoUsesLeft
}

func (r *keysRepo) AddRedemption(ctx context.Context, key, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitation_redemptions (key, user_id, redeemed_at)
		VALUES (?, ?, ?)`, key, userID, at)
	return err
}

func (r *keysRepo) DeleteKey(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM invitation_keys WHERE key = ?`, key)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKey(row rowScanner) (domain.Key, error) {
	var k domain.Key
	err := row.Scan(
		&k.Key, &k.IssuerID, &k.CreatedAt, &k.UsesRemaining, &k.DurationDays,
		&k.RecipientEmail, &k.RecipientFirstName, &k.RecipientLastName,
		&k.RecipientOther, &k.GroupNames,
	)
	return k, err
}
