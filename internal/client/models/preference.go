package models

// PreferenceRecord is the relationship row for one (user, candidate) pair.
type PreferenceRecord struct {
	CandidateID string
	Saved       bool
	Favourite   bool
	Downloaded  bool
	Unlocked    bool
}

// FlagsPatch names the flags to change; nil fields are left as they are.
type FlagsPatch struct {
	Saved      *bool
	Favourite  *bool
	Downloaded *bool
	Unlocked   *bool
}

// Flag returns a pointer for use in a FlagsPatch literal.
func Flag(v bool) *bool { return &v }

// SetsAnyTrue reports whether applying the patch would turn some flag on.
func (p FlagsPatch) SetsAnyTrue() bool {
	for _, f := range []*bool{p.Saved, p.Favourite, p.Downloaded, p.Unlocked} {
		if f != nil && *f {
			return true
		}
	}
	return false
}

// Apply merges the patch into r.
func (p FlagsPatch) Apply(r *PreferenceRecord) {
	if p.Saved != nil {
		r.Saved = *p.Saved
	}
	if p.Favourite != nil {
		r.Favourite = *p.Favourite
	}
	if p.Downloaded != nil {
		r.Downloaded = *p.Downloaded
	}
	if p.Unlocked != nil {
		r.Unlocked = *p.Unlocked
	}
}

// RelationshipSets is a user's preference rows split by flag.
type RelationshipSets struct {
	SavedIDs      IDSet
	FavouriteIDs  IDSet
	DownloadedIDs IDSet
	UnlockedIDs   IDSet
}

func NewRelationshipSets() RelationshipSets {
	return RelationshipSets{
		SavedIDs:      IDSet{},
		FavouriteIDs:  IDSet{},
		DownloadedIDs: IDSet{},
		UnlockedIDs:   IDSet{},
	}
}

// PreferenceFilter selects a user's rows, optionally for one candidate.
type PreferenceFilter struct {
	UserID      string
	CandidateID string
}
