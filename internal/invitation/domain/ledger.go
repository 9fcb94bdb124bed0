package domain

import "time"

// AllocationUnlimited marks a ledger with no allocation cap.
const AllocationUnlimited = -1

// Ledger is the per-user invitation allocation record. One row per user,
// created when the user account is created.
type Ledger struct {
	InviterID string
	Allocated int // AllocationUnlimited means no cap
	Accepted  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Unlimited reports whether this inviter has no allocation cap.
func (l Ledger) Unlimited() bool {
	return l.Allocated == AllocationUnlimited
}

// Remaining reports how many invitations the inviter may still issue, given
// the number of keys already issued. The sent count is always derived from
// the key collection so it cannot drift. Unlimited ledgers report
// AllocationUnlimited. If an admin reduced the allocation below what was
// already issued, the result is negative and reported as-is, not clamped.
func (l Ledger) Remaining(sent int) int {
	if l.Unlimited() {
		return AllocationUnlimited
	}
	return l.Allocated - sent
}

// CanSend reports whether the inviter may issue one more key.
func (l Ledger) CanSend(sent int) bool {
	if l.Unlimited() {
		return true
	}
	return l.Allocated > sent
}
