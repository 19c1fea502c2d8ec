package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagsPatch(t *testing.T) {
	assert.False(t, FlagsPatch{}.SetsAnyTrue())
	assert.False(t, FlagsPatch{Saved: Flag(false), Favourite: Flag(false)}.SetsAnyTrue())
	assert.True(t, FlagsPatch{Downloaded: Flag(true)}.SetsAnyTrue())

	r := PreferenceRecord{CandidateID: "c1", Saved: true, Favourite: true}
	FlagsPatch{Favourite: Flag(false), Unlocked: Flag(true)}.Apply(&r)
	assert.Equal(t, PreferenceRecord{CandidateID: "c1", Saved: true, Unlocked: true}, r)
}

func TestIDSet(t *testing.T) {
	a := NewIDSet("c2", "c1")
	b := NewIDSet("c3")
	u := a.Union(b)

	assert.Equal(t, []string{"c1", "c2", "c3"}, u.Sorted())
	assert.False(t, a.Has("c3"))
	u.Remove("c1")
	assert.False(t, u.Has("c1"))
}

func TestCandidateMasked(t *testing.T) {
	c := Candidate{ID: "c1", Email: "ananya@example.com", Phone: "12"}
	m := c.Masked()

	assert.Equal(t, "a****************m", m.Email)
	assert.Equal(t, "**", m.Phone)
	assert.Equal(t, "ananya@example.com", c.Email)
	assert.Empty(t, Candidate{}.Masked().Email)
}
