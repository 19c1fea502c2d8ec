package models

import "time"

// UnlockGrant records when a user unlocked a candidate. Validity is computed
// by readers; the row itself never expires.
type UnlockGrant struct {
	UserID      string
	CandidateID string
	IssuedAt    time.Time
}

// Usage is an advisory history record of coin spending.
type Usage struct {
	ID          int64
	UserID      string
	CandidateID string
	Kind        string
	Cost        int64
	CreatedAt   time.Time
}
