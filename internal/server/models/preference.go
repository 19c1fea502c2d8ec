package models

import "time"

// Preference is the per-(user, candidate) relationship row.
type Preference struct {
	UserID      string
	CandidateID string
	Saved       bool
	Favourite   bool
	Downloaded  bool
	Unlocked    bool
	UpdatedAt   time.Time
}

// PreferenceFilter selects preference rows. An empty CandidateID matches every
// candidate of the user.
type PreferenceFilter struct {
	UserID      string
	CandidateID string
}
