package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)

		_, err = GenerateToken(-1)
		require.Error(t, err)
	})

	t.Run("produces url-safe output of expected length", func(t *testing.T) {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		require.Len(t, token, 43)

		_, err = base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			token := MustGenerateToken(TokenSize128)
			_, dup := seen[token]
			require.False(t, dup, "duplicate token generated")
			seen[token] = struct{}{}
		}
	})
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, Fingerprint("alice|salt"), Fingerprint("alice|salt"))
	})

	t.Run("distinct inputs diverge", func(t *testing.T) {
		require.NotEqual(t, Fingerprint("alice|salt"), Fingerprint("alice|other"))
	})

	t.Run("fixed output length", func(t *testing.T) {
		require.Len(t, Fingerprint(""), 43)
		require.Len(t, Fingerprint("some rather long input string"), 43)
	})
}
