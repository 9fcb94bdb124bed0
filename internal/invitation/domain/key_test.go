package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyExpiry(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("never-expiring key", func(t *testing.T) {
		k := Key{CreatedAt: created, DurationDays: DurationNever, UsesRemaining: 1}

		require.False(t, k.Expired(created.Add(100*365*24*time.Hour)))
		require.True(t, k.Usable(created.Add(100*365*24*time.Hour)))

		_, ok := k.ExpiresAt()
		require.False(t, ok)
		require.Equal(t, "never", k.ExpiryDisplay())
	})

	t.Run("seven day key", func(t *testing.T) {
		k := Key{CreatedAt: created, DurationDays: 7, UsesRemaining: 1}

		require.False(t, k.Expired(created.Add(6*24*time.Hour)))
		require.True(t, k.Usable(created.Add(6*24*time.Hour)))

		// Boundary: at exactly created+7d the key is expired
		require.True(t, k.Expired(created.Add(7*24*time.Hour)))
		require.False(t, k.Usable(created.Add(7*24*time.Hour)))
		require.True(t, k.Expired(created.Add(8*24*time.Hour)))
	})
}

func TestKeyUsableMatchesUsesAndExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		key    Key
		usable bool
	}{
		{"uses left, not expired", Key{CreatedAt: now, DurationDays: 7, UsesRemaining: 3}, true},
		{"exhausted", Key{CreatedAt: now, DurationDays: 7, UsesRemaining: 0}, false},
		{"expired", Key{CreatedAt: now.Add(-8 * 24 * time.Hour), DurationDays: 7, UsesRemaining: 3}, false},
		{"exhausted and expired", Key{CreatedAt: now.Add(-8 * 24 * time.Hour), DurationDays: 7, UsesRemaining: 0}, false},
		{"exhausted but never expires", Key{CreatedAt: now, DurationDays: DurationNever, UsesRemaining: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.usable, tc.key.Usable(now))
			require.Equal(t, tc.usable, tc.key.UsesRemaining > 0 && !tc.key.Expired(now))
		})
	}
}

func TestKeyGroups(t *testing.T) {
	t.Parallel()

	require.Nil(t, Key{}.Groups())
	require.Equal(t, []string{"editors", "beta"}, Key{GroupNames: "editors,beta"}.Groups())
	require.Equal(t, []string{"editors", "beta"}, Key{GroupNames: " editors , beta ,"}.Groups())
}

func TestKeyRecipient(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Key{}.Recipient())
	require.Equal(t, "a@example.com", Key{RecipientEmail: "a@example.com", RecipientOther: "x"}.Recipient())
	require.Equal(t, "@someone", Key{RecipientOther: "@someone"}.Recipient())
}

func TestLedgerRemaining(t *testing.T) {
	t.Parallel()

	t.Run("unlimited reports -1 no matter what was sent", func(t *testing.T) {
		l := Ledger{Allocated: AllocationUnlimited}
		require.Equal(t, AllocationUnlimited, l.Remaining(0))
		require.Equal(t, AllocationUnlimited, l.Remaining(5000))
		require.True(t, l.CanSend(5000))
	})

	t.Run("remaining is allocated minus sent", func(t *testing.T) {
		l := Ledger{Allocated: 3}
		require.Equal(t, 2, l.Remaining(1))
		require.Equal(t, 0, l.Remaining(3))
		require.False(t, l.CanSend(3))
	})

	t.Run("over-allocation reports negative, not clamped", func(t *testing.T) {
		l := Ledger{Allocated: 2}
		require.Equal(t, -3, l.Remaining(5))
	})
}
