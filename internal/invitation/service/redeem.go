package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/event"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/internal/invitation/token"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

const defaultLedgerRetries = 3

// RedemptionService performs the key consumption transition: the atomic
// decrement, redemption record, group assignment and the follow-up ledger
// increment.
type RedemptionService struct {
	Store  store.Store
	Ledger *LedgerService
	Tokens token.Generator
	Events event.Publisher

	// LedgerRetries bounds the at-least-once retry of the accepted-count
	// increment. Zero means defaultLedgerRetries.
	LedgerRetries int
}

func (s *RedemptionService) tokens() token.Generator {
	if s.Tokens == nil {
		return token.InlineGenerator{}
	}
	return s.Tokens
}

// Redeem consumes one use of the key for the registrant. The usability check
// and the decrement are a single atomic unit (compare-and-decrement inside a
// transaction), so with N uses remaining at most N concurrent redeemers can
// ever succeed. Group assignment happens in the same transaction; the
// issuer's accepted-count increment is a separate atomic step retried
// at-least-once.
func (s *RedemptionService) Redeem(
	ctx context.Context,
	keyString string,
	registrantID string,
) (domain.Key, error) {
	log := slogx.FromContext(ctx)

	if keyString == "" || registrantID == "" {
		return domain.Key{}, ErrInvalidRequest
	}

	k, err := s.Store.Keys().GetKey(ctx, keyString)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Key{}, ErrKeyNotFound
		}
		return domain.Key{}, err
	}

	now := time.Now().UTC()
	if k.Expired(now) {
		return domain.Key{}, ErrKeyExpired
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Keys().ConsumeUse(ctx, keyString); err != nil {
			return err
		}
		if err := tx.Keys().AddRedemption(ctx, keyString, registrantID, now); err != nil {
			return err
		}
		return s.assignGroups(ctx, tx, k, registrantID)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUsesLeft):
			return domain.Key{}, ErrKeyExhausted
		case errors.Is(err, store.ErrNotFound):
			return domain.Key{}, ErrKeyNotFound
		default:
			log.Error("invitation redemption failed",
				slog.String("key", keyString),
				slog.String("registrant_id", registrantID),
				slog.Any("error", err),
			)
			return domain.Key{}, err
		}
	}

	// The key transition is committed. A failure past this point must never
	// undo it; the ledger increment is retried instead.
	s.incrementAccepted(ctx, k.IssuerID)

	k.UsesRemaining--
	k.RedeemedBy = append(k.RedeemedBy, registrantID)

	s.tokens().HandleInvitationUsed(ctx, k)
	if s.Events != nil {
		s.Events.Publish(ctx, event.Event{
			Topic:    event.TopicAccepted,
			Key:      k.Key,
			IssuerID: k.IssuerID,
			UserID:   registrantID,
		})
	}

	log.Info("invitation redeemed",
		slog.String("key", k.Key),
		slog.String("registrant_id", registrantID),
		slog.Int("uses_remaining", k.UsesRemaining),
	)
	return k, nil
}

// assignGroups adds the registrant to each key group that exists. Unknown
// group names are silently ignored; groups are never created here.
func (s *RedemptionService) assignGroups(
	ctx context.Context,
	tx store.Tx,
	k domain.Key,
	registrantID string,
) error {
	for _, name := range k.Groups() {
		g, err := tx.Groups().GetGroupByName(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := tx.Groups().AddMember(ctx, g.ID, registrantID); err != nil {
			return err
		}
	}
	return nil
}

// incrementAccepted applies the accepted-count side effect with bounded
// retries. An increment that still fails after retries is logged at ERROR
// for reconciliation; it is never silently swallowed and never rolls back
// the redemption.
func (s *RedemptionService) incrementAccepted(ctx context.Context, issuerID string) {
	log := slogx.FromContext(ctx)

	retries := s.LedgerRetries
	if retries <= 0 {
		retries = defaultLedgerRetries
	}

	var err error
	for attempt := 1; attempt <= retries; attempt++ {
		if err = s.Ledger.IncrementAccepted(ctx, issuerID); err == nil {
			return
		}
		log.Warn("accepted-count increment failed, retrying",
			slog.String("issuer_id", issuerID),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}

	log.Error("accepted-count increment lost after retries, needs reconciliation",
		slog.String("issuer_id", issuerID),
		slog.Any("error", err),
	)
}
