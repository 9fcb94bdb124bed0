package service

import (
	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/pkg/cryptox"
)

// PreviewKeyString is the placeholder key on transient, never-persisted
// preview invitations.
const PreviewKeyString = "previewkey00000000"

// KeyGenerator produces unguessable invitation key strings. Implementations
// must be collision resistant and side-effect free. Swapping the generator
// on the registry changes nothing else.
type KeyGenerator interface {
	GenerateKey(issuer domain.User) (string, error)
}

// HashKeyGenerator is the default: a SHA-256 fingerprint of the issuer's
// username joined with a 128-bit random salt.
type HashKeyGenerator struct{}

func (HashKeyGenerator) GenerateKey(issuer domain.User) (string, error) {
	salt, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}
	return cryptox.Fingerprint(issuer.Username + "|" + salt), nil
}
