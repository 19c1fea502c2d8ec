package models

import "time"

// UnlockGrant is a remote grant as read by the client.
type UnlockGrant struct {
	CandidateID string
	IssuedAt    time.Time
}

type UnlockStatus string

const (
	UnlockSuccess UnlockStatus = "success"
	UnlockAlready UnlockStatus = "already"
	UnlockError   UnlockStatus = "error"
)

// UnlockResult is the outcome of one unlock attempt. Err is set only when
// Status is UnlockError.
type UnlockResult struct {
	Status  UnlockStatus
	Message string
	Err     error
}
