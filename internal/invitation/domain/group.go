package domain

import "time"

// Group is a pre-existing membership group. Keys may name groups to assign
// to a registrant on redemption; groups are never created by this service.
type Group struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
