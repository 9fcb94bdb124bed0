package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/event"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/internal/invitation/token"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

// Recipient carries the optional identity an invitation is addressed to.
// A zero Recipient means an open key anyone may redeem.
type Recipient struct {
	Email     string
	FirstName string
	LastName  string
	Other     string
}

// RegistryService is the query/command surface over invitation keys:
// lookup, validity evaluation, creation (single and bulk), delivery and the
// expiry sweep.
type RegistryService struct {
	Store  store.Store
	KeyGen KeyGenerator    // defaults to HashKeyGenerator
	Tokens token.Generator // defaults to token.InlineGenerator
	Events event.Publisher

	// BaseURL is the public root the redemption URL is built under.
	BaseURL string

	// DefaultDurationDays applies to new keys; domain.DurationNever is
	// allowed.
	DefaultDurationDays int

	// DefaultGroupNames is the comma-delimited group list stamped onto new
	// keys (may be empty).
	DefaultGroupNames string
}

func (s *RegistryService) keyGen() KeyGenerator {
	if s.KeyGen == nil {
		return HashKeyGenerator{}
	}
	return s.KeyGen
}

func (s *RegistryService) tokens() token.Generator {
	if s.Tokens == nil {
		return token.InlineGenerator{}
	}
	return s.Tokens
}

func (s *RegistryService) publish(ctx context.Context, e event.Event) {
	if s.Events != nil {
		s.Events.Publish(ctx, e)
	}
}

// Lookup fetches a key by its string, or ErrKeyNotFound.
func (s *RegistryService) Lookup(ctx context.Context, keyString string) (domain.Key, error) {
	k, err := s.Store.Keys().GetKey(ctx, keyString)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Key{}, ErrKeyNotFound
		}
		return domain.Key{}, err
	}
	return k, nil
}

// CheckValid returns the key when it is usable. On failure the key is still
// returned alongside the distinct error (expired vs. exhausted) so callers
// can render specific messaging.
func (s *RegistryService) CheckValid(ctx context.Context, keyString string) (domain.Key, error) {
	k, err := s.Lookup(ctx, keyString)
	if err != nil {
		return domain.Key{}, err
	}

	now := time.Now().UTC()
	if k.Expired(now) {
		return k, ErrKeyExpired
	}
	if k.Exhausted() {
		return k, ErrKeyExhausted
	}
	return k, nil
}

// Create builds a new single-use invitation key for the issuer. Allocation
// headroom is deliberately NOT checked here: the invite workflow does that,
// which keeps preview construction (persist=false) possible for callers
// rendering an email before anything is spent.
func (s *RegistryService) Create(
	ctx context.Context,
	issuerID string,
	rec Recipient,
	persist bool,
) (domain.Key, error) {
	log := slogx.FromContext(ctx)

	issuer, err := s.Store.Users().GetUserByID(ctx, issuerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Key{}, ErrInvalidRequest
		}
		return domain.Key{}, err
	}

	now := time.Now().UTC()
	k := domain.Key{
		IssuerID:           issuer.ID,
		CreatedAt:          now,
		UsesRemaining:      1,
		DurationDays:       s.DefaultDurationDays,
		RecipientEmail:     rec.Email,
		RecipientFirstName: rec.FirstName,
		RecipientLastName:  rec.LastName,
		RecipientOther:     rec.Other,
		GroupNames:         s.DefaultGroupNames,
	}

	if !persist {
		// Transient preview instance, never stored.
		k.Key = PreviewKeyString
		return k, nil
	}

	keyString, err := s.keyGen().GenerateKey(issuer)
	if err != nil {
		log.Error("failed to generate invitation key", slog.Any("error", err))
		return domain.Key{}, err
	}
	k.Key = keyString

	if err := s.Store.Keys().CreateKey(ctx, k); err != nil {
		log.Error("failed to store invitation key",
			slog.String("issuer_id", issuer.ID),
			slog.Any("error", err),
		)
		return domain.Key{}, err
	}

	log.Debug("invitation key created",
		slog.String("issuer_id", issuer.ID),
		slog.String("recipient", k.Recipient()),
		slog.Int("duration_days", k.DurationDays),
	)
	return k, nil
}

// CreateBulk creates an open key redeemable up to uses times by any
// registrant. An explicit keyString may be supplied (e.g. a memorable event
// code); empty means generate one.
func (s *RegistryService) CreateBulk(
	ctx context.Context,
	issuerID string,
	keyString string,
	uses int,
	rec *Recipient,
) (domain.Key, error) {
	if uses <= 0 {
		return domain.Key{}, ErrInvalidRequest
	}

	issuer, err := s.Store.Users().GetUserByID(ctx, issuerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Key{}, ErrInvalidRequest
		}
		return domain.Key{}, err
	}

	if keyString == "" {
		keyString, err = s.keyGen().GenerateKey(issuer)
		if err != nil {
			return domain.Key{}, err
		}
	}

	k := domain.Key{
		Key:           keyString,
		IssuerID:      issuer.ID,
		CreatedAt:     time.Now().UTC(),
		UsesRemaining: uses,
		DurationDays:  s.DefaultDurationDays,
		GroupNames:    s.DefaultGroupNames,
	}
	if rec != nil {
		k.RecipientEmail = rec.Email
		k.RecipientFirstName = rec.FirstName
		k.RecipientLastName = rec.LastName
		k.RecipientOther = rec.Other
	}

	if err := s.Store.Keys().CreateKey(ctx, k); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Key{}, ErrKeyTaken
		}
		return domain.Key{}, err
	}

	slogx.FromContext(ctx).Info("bulk invitation key created",
		slog.String("issuer_id", issuer.ID),
		slog.Int("uses", uses),
	)
	return k, nil
}

// Delete removes a key unconditionally (explicit admin action).
func (s *RegistryService) Delete(ctx context.Context, keyString string) error {
	k, err := s.Lookup(ctx, keyString)
	if err != nil {
		return err
	}
	if err := s.Store.Keys().DeleteKey(ctx, keyString); err != nil {
		return err
	}
	s.tokens().HandleInvitationDeleted(ctx, k)
	return nil
}

// SweepExpired deletes every expired key regardless of remaining uses.
// Exhausted-but-unexpired keys are left alone. The sweep is idempotent and
// safe under concurrent invocation; a failure on one key never aborts the
// batch. Returns the number of keys deleted.
func (s *RegistryService) SweepExpired(ctx context.Context) (int, error) {
	log := slogx.FromContext(ctx)

	keys, err := s.Store.Keys().ListKeys(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	deleted := 0
	for _, k := range keys {
		if !k.Expired(now) {
			continue
		}

		if err := s.Store.Keys().DeleteKey(ctx, k.Key); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// A concurrent sweep got there first.
				continue
			}
			log.Warn("failed to delete expired invitation key",
				slog.String("key", k.Key),
				slog.Any("error", err),
			)
			continue
		}

		s.tokens().HandleInvitationDeleted(ctx, k)
		deleted++
	}

	log.Info("expired invitation sweep completed", slog.Int("deleted", deleted))
	return deleted, nil
}

// InvitationURL is the public redemption link for a key.
func (s *RegistryService) InvitationURL(k domain.Key) string {
	return strings.TrimRight(s.BaseURL, "/") + "/invited/" + k.Key
}

// DeliveryContext assembles the values a notification hook needs: recipient
// fields, the redemption URL, display-formatted expiry, issuer identity and
// the token artifact. Caller-supplied extras override defaults on collision.
func (s *RegistryService) DeliveryContext(
	ctx context.Context,
	k domain.Key,
	extra map[string]any,
) (DeliveryContext, error) {
	issuer, err := s.Store.Users().GetUserByID(ctx, k.IssuerID)
	if err != nil {
		return nil, err
	}

	invitationURL := s.InvitationURL(k)

	artifact, err := s.tokens().GenerateToken(k, invitationURL)
	if err != nil {
		return nil, err
	}

	dc := DeliveryContext{
		CtxInvitationKey:      k.Key,
		CtxInvitationURL:      invitationURL,
		CtxExpirationDate:     k.ExpiryDisplay(),
		CtxExpirationDays:     k.DurationDays,
		CtxFromUser:           issuer.Username,
		CtxRecipientEmail:     k.RecipientEmail,
		CtxRecipientFirstName: k.RecipientFirstName,
		CtxRecipientLastName:  k.RecipientLastName,
		CtxRecipientOther:     k.RecipientOther,
		CtxToken:              artifact,
	}
	for field, v := range extra {
		dc[field] = v
	}
	return dc, nil
}

// Deliver hands the key to the notification hook and, on success, publishes
// the invited event. A hook failure is reported as ErrDeliveryFailed; the
// key itself stays persisted either way.
func (s *RegistryService) Deliver(
	ctx context.Context,
	k domain.Key,
	hook NotificationHook,
	extra map[string]any,
) error {
	dc, err := s.DeliveryContext(ctx, k, extra)
	if err != nil {
		return err
	}

	if err := hook.SendInvitation(ctx, dc); err != nil {
		slogx.FromContext(ctx).Warn("invitation delivery failed",
			slog.String("key", k.Key),
			slog.String("recipient", k.Recipient()),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.publish(ctx, event.Event{
		Topic:    event.TopicInvited,
		Key:      k.Key,
		IssuerID: k.IssuerID,
	})
	return nil
}
