// Package models holds the client-side data types shared by services,
// list state and screens.
package models

import "strings"

// Candidate is one directory profile as the client renders it.
type Candidate struct {
	ID        string
	Name      string
	Headline  string
	Email     string
	Phone     string
	Education string
	Languages []string
	JobType   string
	Location  string
	Skills    []string
	Approved  bool
	PhotoURL  string
}

// Masked returns a copy with contact fields hidden. Screens show it until
// the candidate is unlocked.
func (c Candidate) Masked() Candidate {
	c.Email = maskValue(c.Email)
	c.Phone = maskValue(c.Phone)
	return c
}

func maskValue(v string) string {
	if v == "" {
		return ""
	}
	r := []rune(v)
	if len(r) <= 2 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}
