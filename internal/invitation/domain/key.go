package domain

import (
	"strings"
	"time"
)

// DurationNever marks a key that never expires.
const DurationNever = -1

// Key is a single invitation key. The key string itself is the identity used
// for lookup; a key may allow multiple redemptions before it is exhausted.
type Key struct {
	Key                string
	IssuerID           string
	CreatedAt          time.Time
	UsesRemaining      int
	DurationDays       int // DurationNever means the key won't expire
	RecipientEmail     string
	RecipientFirstName string
	RecipientLastName  string
	RecipientOther     string
	GroupNames         string // comma-delimited group names assigned on redemption
	RedeemedBy         []string
}

// Redemption records a single use of a key by a registrant.
type Redemption struct {
	Key        string
	UserID     string
	RedeemedAt time.Time
}

// ExpiresAt returns the computed expiry instant. The second return value is
// false for never-expiring keys. Expiry is always derived from CreatedAt and
// DurationDays, never stored.
func (k Key) ExpiresAt() (time.Time, bool) {
	if k.DurationDays < 0 {
		return time.Time{}, false
	}
	return k.CreatedAt.Add(time.Duration(k.DurationDays) * 24 * time.Hour), true
}

// Expired reports whether the key's validity window has elapsed at now.
// Never-expiring keys are never expired.
func (k Key) Expired(now time.Time) bool {
	expiresAt, ok := k.ExpiresAt()
	if !ok {
		return false
	}
	return !now.Before(expiresAt)
}

// Usable reports whether this key is still valid for registering a new user:
// it has uses remaining and has not expired.
func (k Key) Usable(now time.Time) bool {
	return k.UsesRemaining > 0 && !k.Expired(now)
}

// Exhausted reports whether all uses have been consumed. An exhausted key is
// not deleted until it expires.
func (k Key) Exhausted() bool {
	return k.UsesRemaining <= 0
}

// Recipient returns the best display identity for the intended recipient, or
// "" for an open key.
func (k Key) Recipient() string {
	if k.RecipientEmail != "" {
		return k.RecipientEmail
	}
	return k.RecipientOther
}

// Groups splits the stored group-name list. Empty entries are dropped.
func (k Key) Groups() []string {
	if k.GroupNames == "" {
		return nil
	}
	parts := strings.Split(k.GroupNames, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExpiryDisplay formats the expiry date for delivery templates.
func (k Key) ExpiryDisplay() string {
	expiresAt, ok := k.ExpiresAt()
	if !ok {
		return "never"
	}
	return expiresAt.Format("02 Jan 2006 15:04")
}
