package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/pkg/cryptox"
)

func newRegistration(st store.Store) *RegistrationService {
	ledger := &LedgerService{Store: st, DefaultAllocation: 3}
	return &RegistrationService{
		Store:      st,
		Registry:   &RegistryService{Store: st},
		Redemption: &RedemptionService{Store: st, Ledger: ledger},
		Ledger:     ledger,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")
	now := time.Now().UTC()

	svc := newRegistration(st)

	seedKey(t, st, domain.Key{
		Key: "welcome", IssuerID: issuer.ID,
		CreatedAt: now, UsesRemaining: 2, DurationDays: 7,
	})

	t.Run("creates the account and consumes a use", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterRequest{
			Key:      "welcome",
			Username: "bob",
			Email:    "bob@example.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		require.NoError(t, cryptox.VerifyPassword("hunter2hunter2", u.PasswordHash))

		stored, err := st.Keys().GetKey(ctx, "welcome")
		require.NoError(t, err)
		require.Equal(t, 1, stored.UsesRemaining)
		require.Contains(t, stored.RedeemedBy, u.ID)

		// The new account carries a ledger from birth.
		l, err := st.Ledgers().GetLedger(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 3, l.Allocated)
	})

	t.Run("username already taken", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{
			Key:      "welcome",
			Username: "bob",
			Password: "anotherpassword",
		})
		require.ErrorIs(t, err, ErrUsernameAlreadyTaken)

		// The failed attempt must not have spent a use.
		stored, err := st.Keys().GetKey(ctx, "welcome")
		require.NoError(t, err)
		require.Equal(t, 1, stored.UsesRemaining)
	})

	t.Run("invalid key costs nothing", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{
			Key:      "missing",
			Username: "carol",
			Password: "password123",
		})
		require.ErrorIs(t, err, ErrKeyNotFound)

		_, err = st.Users().GetUserByUsername(ctx, "carol")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{Key: "welcome", Username: "x"})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestRegisterDrainedKeyCostsNothing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	svc := newRegistration(st)

	seedKey(t, st, domain.Key{
		Key: "single", IssuerID: issuer.ID,
		CreatedAt: time.Now().UTC(), UsesRemaining: 1, DurationDays: 7,
	})

	winner := seedUser(t, st, "winner")
	require.NoError(t, st.Keys().ConsumeUse(ctx, "single"))
	require.NoError(t, st.Keys().AddRedemption(ctx, "single", winner.ID, time.Now().UTC()))

	_, err := svc.Register(ctx, RegisterRequest{
		Key:      "single",
		Username: "loser",
		Password: "password123",
	})
	require.ErrorIs(t, err, ErrKeyExhausted)

	_, err = st.Users().GetUserByUsername(ctx, "loser")
	require.ErrorIs(t, err, store.ErrNotFound)
}

// drainedStore makes every ConsumeUse inside a transaction lose, standing in
// for another registrant grabbing the last use between the validity check
// and redemption.
type drainedStore struct{ store.Store }

func (s drainedStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(drainedTx{tx})
	})
}

// storeTx aliases store.Tx so it can be embedded without the field name
// colliding with the interface's Tx method.
type storeTx = store.Tx

type drainedTx struct{ storeTx }

func (t drainedTx) Keys() store.Keys { return drainedKeys{t.storeTx.Keys()} }

type drainedKeys struct{ store.Keys }

func (drainedKeys) ConsumeUse(ctx context.Context, key string) error {
	return store.ErrNoUsesLeft
}

func TestRegisterRollsBackOnLostRace(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	drained := drainedStore{st}
	ledger := &LedgerService{Store: st, DefaultAllocation: 3}
	svc := &RegistrationService{
		Store:      st,
		Registry:   &RegistryService{Store: st},
		Redemption: &RedemptionService{Store: drained, Ledger: ledger},
		Ledger:     ledger,
	}

	seedKey(t, st, domain.Key{
		Key: "single", IssuerID: issuer.ID,
		CreatedAt: time.Now().UTC(), UsesRemaining: 1, DurationDays: 7,
	})

	_, err := svc.Register(ctx, RegisterRequest{
		Key:      "single",
		Username: "loser",
		Password: "password123",
	})
	require.ErrorIs(t, err, ErrKeyExhausted)

	// The half-created account must be gone, freeing the username.
	_, err = st.Users().GetUserByUsername(ctx, "loser")
	require.ErrorIs(t, err, store.ErrNotFound)

	// The use was never spent.
	stored, err := st.Keys().GetKey(ctx, "single")
	require.NoError(t, err)
	require.Equal(t, 1, stored.UsesRemaining)
}
