package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/wattlehq/gatepass/internal/invitation/domain"
)

func TestNewResolvesMode(t *testing.T) {
	t.Parallel()

	t.Run("defaults to inline", func(t *testing.T) {
		gen, err := New("", "", "gatepass")
		require.NoError(t, err)
		require.IsType(t, InlineGenerator{}, gen)
	})

	t.Run("jwt requires a secret", func(t *testing.T) {
		_, err := New(ModeJWT, "", "gatepass")
		require.Error(t, err)
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		_, err := New("carrier-pigeon", "", "gatepass")
		require.Error(t, err)
	})
}

func TestInlineGeneratorWrapsURL(t *testing.T) {
	t.Parallel()

	artifact, err := InlineGenerator{}.GenerateToken(domain.Key{Key: "abc"},
		"https://example.com/invited/abc")
	require.NoError(t, err)
	require.Equal(t,
		`<a style="display: inline-block;" href="https://example.com/invited/abc">https://example.com/invited/abc</a>`,
		artifact)
}

func TestJWTGeneratorRoundTrip(t *testing.T) {
	t.Parallel()

	gen := &JWTGenerator{Secret: []byte("test-secret"), Issuer: "gatepass"}
	key := domain.Key{
		Key:          "some-key",
		CreatedAt:    time.Now().UTC(),
		DurationDays: 7,
	}

	raw, err := gen.GenerateToken(key, "https://example.com/invited/some-key")
	require.NoError(t, err)

	gotKey, gotURL, err := gen.ParseToken(raw)
	require.NoError(t, err)
	require.Equal(t, "some-key", gotKey)
	require.Equal(t, "https://example.com/invited/some-key", gotURL)
}

func TestJWTGeneratorRejectsTampering(t *testing.T) {
	t.Parallel()

	gen := &JWTGenerator{Secret: []byte("test-secret"), Issuer: "gatepass"}
	key := domain.Key{Key: "some-key", CreatedAt: time.Now().UTC(), DurationDays: domain.DurationNever}

	raw, err := gen.GenerateToken(key, "https://example.com/invited/some-key")
	require.NoError(t, err)

	other := &JWTGenerator{Secret: []byte("different-secret"), Issuer: "gatepass"}
	_, _, err = other.ParseToken(raw)
	require.Error(t, err)
}

func TestJWTGeneratorExpiryFollowsKey(t *testing.T) {
	t.Parallel()

	gen := &JWTGenerator{Secret: []byte("test-secret"), Issuer: "gatepass"}
	expired := domain.Key{
		Key:          "stale",
		CreatedAt:    time.Now().UTC().Add(-8 * 24 * time.Hour),
		DurationDays: 7,
	}

	raw, err := gen.GenerateToken(expired, "https://example.com/invited/stale")
	require.NoError(t, err)

	_, _, err = gen.ParseToken(raw)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}
