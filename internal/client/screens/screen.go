// Package screens drives the candidate list screens. One Controller serves
// one screen (All, Favourite, Saved or Unlocked) and answers what to render
// now: its status, the rows of the current page and the open detail.
package screens

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
)

type Screen string

const (
	ScreenAll       Screen = "all"
	ScreenFavourite Screen = "favourite"
	ScreenSaved     Screen = "saved"
	ScreenUnlocked  Screen = "unlocked"
)

// Screens lists every screen in menu order.
var Screens = []Screen{ScreenAll, ScreenFavourite, ScreenSaved, ScreenUnlocked}

func ParseScreen(s string) (Screen, bool) {
	for _, sc := range Screens {
		if string(sc) == s {
			return sc, true
		}
	}
	return "", false
}

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusLoggedOut
	StatusDetailView
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusLoggedOut:
		return "logged out"
	case StatusDetailView:
		return "detail"
	default:
		return "idle"
	}
}

// Row is one rendered list entry. Contact fields are masked unless the
// candidate is unlocked.
type Row struct {
	Candidate  models.Candidate
	Saved      bool
	Favourite  bool
	Downloaded bool
	Unlocked   bool
	Selected   bool
}

type Session interface {
	CurrentUser() string
}

type PhotoResolver interface {
	URLs(ctx context.Context, candidateIDs []string) (map[string]string, error)
}

// includes reports whether a candidate belongs on the screen.
func (s Screen) includes(id string, rels models.RelationshipSets, unlocked models.IDSet) bool {
	switch s {
	case ScreenFavourite:
		return rels.FavouriteIDs.Has(id)
	case ScreenSaved:
		return rels.SavedIDs.Has(id)
	case ScreenUnlocked:
		return unlocked.Has(id)
	default:
		return true
	}
}
