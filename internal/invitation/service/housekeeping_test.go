package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
)

func TestHousekeepingSweepsOnStart(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	seedKey(t, st, domain.Key{
		Key: "stale", IssuerID: issuer.ID,
		CreatedAt: time.Now().UTC().Add(-8 * 24 * time.Hour),
		UsesRemaining: 1, DurationDays: 7,
	})

	registry := &RegistryService{Store: st}
	hk := NewHousekeepingService(registry, slog.Default(), time.Hour)
	hk.Start()
	hk.Stop()

	_, err := st.Keys().GetKey(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestHousekeepingDefaultsInterval(t *testing.T) {
	hk := NewHousekeepingService(&RegistryService{}, slog.Default(), 0)
	require.Equal(t, time.Hour, hk.Interval)
}
