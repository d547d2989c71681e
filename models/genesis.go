package models

import "time"

// Genesis is written once, when the court is first initialized against an
// empty store. Admin and CaseDurationSeconds never change afterwards.
type Genesis struct {
	Admin               Address   `json:"admin" bson:"admin"`
	CaseDurationSeconds uint64    `json:"caseDuration" bson:"caseDuration"`
	CreatedAt           time.Time `json:"createdAt" bson:"createdAt"`
}

// CaseDuration returns the expiry window as a time.Duration
func (g Genesis) CaseDuration() time.Duration {
	return time.Duration(g.CaseDurationSeconds) * time.Second
}

// Changeset is every write produced by one successful court operation.
// Stores apply it all-or-nothing.
type Changeset struct {
	// NewCase inserts Case instead of replacing the stored record
	NewCase bool
	Case    Case
	Message *Message
	// Judge is flagged in the judge registry when set
	Judge  Address
	Events []Event
}
