package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/pkg/cryptox"
	"github.com/wattlehq/gatepass/pkg/idx"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

// RegistrationService gates account creation behind a usable invitation key.
// It owns username validation, credential hashing and ledger provisioning
// for the new account, and then delegates key consumption to the
// RedemptionService.
type RegistrationService struct {
	Store      store.Store
	Registry   *RegistryService
	Redemption *RedemptionService
	Ledger     *LedgerService
}

// RegisterRequest carries everything a registrant submits.
type RegisterRequest struct {
	Key       string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates an account through a valid invitation key. The key is
// validated first so a bad key never costs a username; the user row is
// created before redemption and removed again if redemption loses the race
// for the key's last use.
func (s *RegistrationService) Register(
	ctx context.Context,
	req RegisterRequest,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Key == "" || req.Username == "" || req.Password == "" {
		return domain.User{}, ErrInvalidRequest
	}

	if _, err := s.Registry.CheckValid(ctx, req.Key); err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, req.Username); err == nil {
		return domain.User{}, ErrUsernameAlreadyTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameAlreadyTaken
		}
		return domain.User{}, err
	}

	// Every account carries a ledger from the moment it exists, so later
	// allocation passes never have to special-case missing rows.
	if _, err := s.Ledger.EnsureLedger(ctx, u.ID); err != nil {
		log.Warn("ledger provisioning failed for new account",
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
	}

	if _, err := s.Redemption.Redeem(ctx, req.Key, u.ID); err != nil {
		// The account must not outlive a failed redemption. Best effort:
		// a delete failure leaves an orphan account but is loud about it.
		if delErr := s.Store.Users().DeleteUser(ctx, u.ID); delErr != nil {
			log.Error("failed to remove account after redemption failure",
				slog.String("user_id", u.ID),
				slog.Any("error", delErr),
			)
		}
		return domain.User{}, err
	}

	log.Info("user registered via invitation",
		slog.String("user_id", u.ID),
		slog.String("username", u.Username),
		slog.String("key", req.Key),
	)
	return u, nil
}
