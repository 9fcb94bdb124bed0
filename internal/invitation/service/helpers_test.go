package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/internal/invitation/store/drivers/sqlite"
	"github.com/wattlehq/gatepass/pkg/idx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:        idx.New().String(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedGroup(t *testing.T, st store.Store, name string) domain.Group {
	t.Helper()

	g := domain.Group{
		ID:        idx.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Groups().CreateGroup(context.Background(), g))
	return g
}

func seedKey(t *testing.T, st store.Store, k domain.Key) domain.Key {
	t.Helper()

	require.NoError(t, st.Keys().CreateKey(context.Background(), k))
	return k
}
