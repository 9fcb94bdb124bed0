package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/event"
	"github.com/wattlehq/gatepass/internal/invitation/store"
)

func newRedemption(st store.Store) *RedemptionService {
	return &RedemptionService{
		Store:  st,
		Ledger: &LedgerService{Store: st, DefaultAllocation: 3},
	}
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")
	registrant := seedUser(t, st, "bob")
	now := time.Now().UTC()

	svc := newRedemption(st)

	t.Run("happy path consumes a use and records the redeemer", func(t *testing.T) {
		seedKey(t, st, domain.Key{
			Key: "welcome", IssuerID: issuer.ID,
			CreatedAt: now, UsesRemaining: 2, DurationDays: 7,
		})

		k, err := svc.Redeem(ctx, "welcome", registrant.ID)
		require.NoError(t, err)
		require.Equal(t, 1, k.UsesRemaining)
		require.Contains(t, k.RedeemedBy, registrant.ID)

		stored, err := st.Keys().GetKey(ctx, "welcome")
		require.NoError(t, err)
		require.Equal(t, 1, stored.UsesRemaining)
		require.Contains(t, stored.RedeemedBy, registrant.ID)
	})

	t.Run("issuer accepted count is incremented", func(t *testing.T) {
		l, err := st.Ledgers().GetLedger(ctx, issuer.ID)
		require.NoError(t, err)
		require.Equal(t, 1, l.Accepted)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := svc.Redeem(ctx, "missing", registrant.ID)
		require.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("expired key", func(t *testing.T) {
		seedKey(t, st, domain.Key{
			Key: "stale", IssuerID: issuer.ID,
			CreatedAt: now.Add(-8 * 24 * time.Hour), UsesRemaining: 1, DurationDays: 7,
		})
		_, err := svc.Redeem(ctx, "stale", registrant.ID)
		require.ErrorIs(t, err, ErrKeyExpired)
	})

	t.Run("exhausted key stays in place", func(t *testing.T) {
		seedKey(t, st, domain.Key{
			Key: "spent", IssuerID: issuer.ID,
			CreatedAt: now, UsesRemaining: 0, DurationDays: 7,
		})
		_, err := svc.Redeem(ctx, "spent", registrant.ID)
		require.ErrorIs(t, err, ErrKeyExhausted)

		_, err = st.Keys().GetKey(ctx, "spent")
		require.NoError(t, err)
	})
}

func TestRedeemGroupAssignment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")
	registrant := seedUser(t, st, "bob")

	members := seedGroup(t, st, "members")
	seedGroup(t, st, "staff")

	svc := newRedemption(st)

	// "vip" exists nowhere; it must be skipped without failing the
	// redemption.
	seedKey(t, st, domain.Key{
		Key: "grouped", IssuerID: issuer.ID,
		CreatedAt: time.Now().UTC(), UsesRemaining: 1, DurationDays: 7,
		GroupNames: "members, vip",
	})

	_, err := svc.Redeem(ctx, "grouped", registrant.ID)
	require.NoError(t, err)

	isMember, err := st.Groups().IsMember(ctx, members.ID, registrant.ID)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestRedeemPublishesAcceptedEvent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")
	registrant := seedUser(t, st, "bob")

	bus := event.NewBus()
	var got []event.Event
	bus.Subscribe(event.TopicAccepted, func(e event.Event) {
		got = append(got, e)
	})

	svc := newRedemption(st)
	svc.Events = bus

	seedKey(t, st, domain.Key{
		Key: "evkey", IssuerID: issuer.ID,
		CreatedAt: time.Now().UTC(), UsesRemaining: 1, DurationDays: 7,
	})

	_, err := svc.Redeem(ctx, "evkey", registrant.ID)
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.Equal(t, "evkey", got[0].Key)
	require.Equal(t, issuer.ID, got[0].IssuerID)
	require.Equal(t, registrant.ID, got[0].UserID)
}

func TestRedeemConcurrentLastUse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	carol := seedUser(t, st, "carol")

	svc := newRedemption(st)

	seedKey(t, st, domain.Key{
		Key: "lastuse", IssuerID: issuer.ID,
		CreatedAt: time.Now().UTC(), UsesRemaining: 1, DurationDays: 7,
	})

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, registrant := range []string{bob.ID, carol.ID} {
		wg.Add(1)
		go func(i int, registrant string) {
			defer wg.Done()
			_, errs[i] = svc.Redeem(ctx, "lastuse", registrant)
		}(i, registrant)
	}
	wg.Wait()

	var succeeded, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrKeyExhausted)
			exhausted++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, exhausted)

	stored, err := st.Keys().GetKey(ctx, "lastuse")
	require.NoError(t, err)
	require.Zero(t, stored.UsesRemaining)
	require.Len(t, stored.RedeemedBy, 1)
}

func TestRedeemBulkKeyUpToUses(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	svc := newRedemption(st)

	seedKey(t, st, domain.Key{
		Key: "event25", IssuerID: issuer.ID,
		CreatedAt: time.Now().UTC(), UsesRemaining: 3, DurationDays: 7,
	})

	for _, name := range []string{"bob", "carol", "dave"} {
		u := seedUser(t, st, name)
		_, err := svc.Redeem(ctx, "event25", u.ID)
		require.NoError(t, err)
	}

	late := seedUser(t, st, "erin")
	_, err := svc.Redeem(ctx, "event25", late.ID)
	require.ErrorIs(t, err, ErrKeyExhausted)

	stored, err := st.Keys().GetKey(ctx, "event25")
	require.NoError(t, err)
	require.Len(t, stored.RedeemedBy, 3)

	l, err := st.Ledgers().GetLedger(ctx, issuer.ID)
	require.NoError(t, err)
	require.Equal(t, 3, l.Accepted)
}
