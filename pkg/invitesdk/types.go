package invitesdk

// ErrorResponse is the JSON error body every endpoint returns on failure.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invitation_expired")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// Recipient identifies who an invitation is addressed to. All fields are
// optional; an empty recipient produces an open key.
type Recipient struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Other     string `json:"other,omitempty"`
}

// InviteRequest asks the service to create and deliver invitations on
// behalf of the issuer. At least one recipient is required.
type InviteRequest struct {
	IssuerID   string         `json:"issuer_id"`
	Recipients []Recipient    `json:"recipients"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// InviteResult is the outcome for a single recipient.
type InviteResult struct {
	Key                string    `json:"key"`
	InvitationURL      string    `json:"invitation_url"`
	ExpiresAt          string    `json:"expires_at"`
	Recipient          Recipient `json:"recipient"`
	Delivered          bool      `json:"delivered"`
	DuplicateRecipient bool      `json:"duplicate_recipient,omitempty"`
}

// InviteResponse carries one result per successfully created invitation.
type InviteResponse struct {
	Invitations []InviteResult `json:"invitations"`
}

// BulkKeyRequest creates a single key redeemable multiple times, e.g. a
// memorable code for an event. Key may be empty to have one generated.
type BulkKeyRequest struct {
	IssuerID  string     `json:"issuer_id"`
	Key       string     `json:"key,omitempty"`
	Uses      int        `json:"uses"`
	Recipient *Recipient `json:"recipient,omitempty"`
}

// KeyResponse describes a stored invitation key.
type KeyResponse struct {
	Key           string    `json:"key"`
	IssuerID      string    `json:"issuer_id"`
	CreatedAt     string    `json:"created_at"`
	UsesRemaining int       `json:"uses_remaining"`
	DurationDays  int       `json:"duration_days"`
	ExpiresAt     string    `json:"expires_at"`
	Recipient     Recipient `json:"recipient"`
	Groups        []string  `json:"groups,omitempty"`
	RedeemedBy    []string  `json:"redeemed_by,omitempty"`
}

// RegisterRequest creates an account through an invitation key.
type RegisterRequest struct {
	Key       string `json:"key"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Password  string `json:"password"`
}

// RegisterResponse confirms the created account.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// RemainingResponse reports a user's invitation allocation standing.
// Remaining is -1 for unlimited ledgers and may be negative when the
// allocation was reduced below what was already sent.
type RemainingResponse struct {
	UserID    string `json:"user_id"`
	Remaining int    `json:"remaining"`
	Allocated int    `json:"allocated"`
	Sent      int    `json:"sent"`
	Accepted  int    `json:"accepted"`
}

// TopOffRequest raises allocations so remaining reaches Target. An empty
// UserID applies to every account.
type TopOffRequest struct {
	UserID string `json:"user_id,omitempty"`
	Target int    `json:"target"`
}

// GrantRequest raises allocations by Delta. An empty UserID applies to
// every account.
type GrantRequest struct {
	UserID string `json:"user_id,omitempty"`
	Delta  int    `json:"delta"`
}

// SweepResponse reports how many expired keys a sweep removed.
type SweepResponse struct {
	Deleted int `json:"deleted"`
}

// HealthChecks itemizes dependency health on the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
