package store

import (
	"context"
	"errors"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrNoUsesLeft is returned by ConsumeUse when the compare-and-decrement
	// finds no remaining uses on the key.
	ErrNoUsesLeft = errors.New("store: no uses left")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Keys() Keys
	Ledgers() Ledgers
	Users() Users
	Groups() Groups

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Keys interface {
	// CreateKey inserts a new invitation key (key string is the identity).
	CreateKey(ctx context.Context, k domain.Key) error

	// GetKey returns a key by its string, redeemer list included.
	GetKey(ctx context.Context, key string) (domain.Key, error)

	// ListKeys returns every stored key (redeemer lists not populated).
	// Used by the expiry sweep.
	ListKeys(ctx context.Context) ([]domain.Key, error)

	// CountKeysByIssuer counts keys issued by a user. The ledger's "sent"
	// figure is always derived from this, never stored.
	CountKeysByIssuer(ctx context.Context, issuerID string) (int, error)

	// ConsumeUse atomically decrements uses_remaining if, and only if, at
	// least one use is left. Returns ErrNoUsesLeft otherwise. This is the
	// single atomic unit that makes concurrent redemptions safe.
	ConsumeUse(ctx context.Context, key string) error

	// AddRedemption records a registrant having consumed the key.
	AddRedemption(ctx context.Context, key, userID string, at time.Time) error

	// DeleteKey removes a key; redemption records cascade.
	DeleteKey(ctx context.Context, key string) error
}

type Ledgers interface {
	// GetLedger fetches the allocation record for an inviter.
	GetLedger(ctx context.Context, inviterID string) (domain.Ledger, error)

	// CreateLedger inserts a ledger row (one per user).
	CreateLedger(ctx context.Context, l domain.Ledger) error

	// AddAllocation atomically raises invites_allocated by delta. Unlimited
	// ledgers are left untouched.
	AddAllocation(ctx context.Context, inviterID string, delta int) error

	// IncrementAccepted atomically bumps invites_accepted by one.
	IncrementAccepted(ctx context.Context, inviterID string) error
}

// Users is the user directory collaborator: account rows live here, the
// invitation core only reads identities and inserts registrants.
type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during registration.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail backs the duplicate-recipient check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUserIDs enumerates every account, for bulk ledger operations.
	ListUserIDs(ctx context.Context) ([]string, error)

	// DeleteUser removes an account. Registration uses it to undo a freshly
	// created user whose key redemption failed.
	DeleteUser(ctx context.Context, id string) error
}

// Groups is the group directory collaborator: resolve names, add members.
// Groups are assumed to pre-exist; redemption never creates them.
type Groups interface {
	// CreateGroup inserts a group (administrative provisioning).
	CreateGroup(ctx context.Context, g domain.Group) error

	// GetGroupByName resolves a group by its unique name.
	GetGroupByName(ctx context.Context, name string) (domain.Group, error)

	// AddMember adds a user to a group. Adding an existing member is a no-op.
	AddMember(ctx context.Context, groupID, userID string) error

	// IsMember reports group membership.
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}
