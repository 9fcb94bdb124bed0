package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

var ErrInvalidToken = errors.New("token: invalid invitation token")

// JWTGenerator mints a signed HS256 token carrying the invitation key and
// redemption URL, for deployments where the artifact must be verifiable
// offline by another service.
type JWTGenerator struct {
	Secret []byte
	Issuer string
}

type inviteClaims struct {
	URL string `json:"url"`
	jwt.RegisteredClaims
}

func (g *JWTGenerator) GenerateToken(key domain.Key, invitationURL string) (string, error) {
	claims := inviteClaims{
		URL: invitationURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   g.Issuer,
			Subject:  key.Key,
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	// Align token expiry with the key's own window; never-expiring keys get
	// a token without an exp claim.
	if expiresAt, ok := key.ExpiresAt(); ok {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.Secret)
}

// ParseToken verifies a token minted by GenerateToken and returns the key
// string and invitation URL it carries.
func (g *JWTGenerator) ParseToken(raw string) (key, url string, err error) {
	parsed, err := jwt.ParseWithClaims(raw, &inviteClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return g.Secret, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := parsed.Claims.(*inviteClaims)
	if !ok || claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.URL, nil
}

// JWTs are stateless; lifecycle transitions only get noted for audit.
func (g *JWTGenerator) HandleInvitationUsed(ctx context.Context, key domain.Key) {
	slogx.FromContext(ctx).Debug("invitation token consumed", "key", key.Key)
}

func (g *JWTGenerator) HandleInvitationDeleted(ctx context.Context, key domain.Key) {
	slogx.FromContext(ctx).Debug("invitation token invalidated", "key", key.Key)
}
