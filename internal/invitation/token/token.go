package token

import (
	"context"
	"fmt"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
)

// Generator produces the link artifact embedded in a delivered invitation
// and observes key lifecycle transitions. The concrete generator is chosen
// once at startup from configuration and injected; it is never a mutable
// global.
type Generator interface {
	// GenerateToken builds the artifact for the invitation URL.
	GenerateToken(key domain.Key, invitationURL string) (string, error)

	// HandleInvitationUsed is called after a redemption of the key commits.
	HandleInvitationUsed(ctx context.Context, key domain.Key)

	// HandleInvitationDeleted is called when the key is removed, either by
	// the expiry sweep or an explicit delete.
	HandleInvitationDeleted(ctx context.Context, key domain.Key)
}

// Modes accepted by New.
const (
	ModeInline = "inline"
	ModeJWT    = "jwt"
)

// New resolves the configured generator strategy.
func New(mode, jwtSecret, issuer string) (Generator, error) {
	switch mode {
	case "", ModeInline:
		return InlineGenerator{}, nil
	case ModeJWT:
		if jwtSecret == "" {
			return nil, fmt.Errorf("token: jwt mode requires a secret")
		}
		return &JWTGenerator{Secret: []byte(jwtSecret), Issuer: issuer}, nil
	default:
		return nil, fmt.Errorf("token: unknown generator mode %q", mode)
	}
}

// InlineGenerator renders the invitation URL as an anchor tag, the default
// artifact for HTML email bodies.
type InlineGenerator struct{}

func (InlineGenerator) GenerateToken(_ domain.Key, invitationURL string) (string, error) {
	return `<a style="display: inline-block;" href="` +
		invitationURL + `">` + invitationURL + `</a>`, nil
}

func (InlineGenerator) HandleInvitationUsed(context.Context, domain.Key)    {}
func (InlineGenerator) HandleInvitationDeleted(context.Context, domain.Key) {}
