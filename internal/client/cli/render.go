package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/talentledger/internal/client/screens"
)

func (a *App) getStatus() string {
	s := string(a.current)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func flagString(r screens.Row) string {
	var b strings.Builder
	for _, f := range []struct {
		on bool
		c  byte
	}{{r.Saved, 'S'}, {r.Favourite, 'F'}, {r.Downloaded, 'D'}, {r.Unlocked, 'U'}} {
		if f.on {
			b.WriteByte(f.c)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func (a *App) render() {
	c := a.controller()
	page, pages := c.Page()
	rows := c.Rows()

	fmt.Fprintf(a.out, "%s: page %d/%d, %d candidates\n", a.current, page, pages, c.Len())
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "  (nothing to show)")
		return
	}
	for _, r := range rows {
		sel := " "
		if r.Selected {
			sel = "*"
		}
		fmt.Fprintf(a.out, "%s[%s] %-10s %-24s %-30s %s\n",
			sel, flagString(r), r.Candidate.ID, r.Candidate.Name, r.Candidate.Headline, r.Candidate.Email)
	}
}

func (a *App) renderDetail(r screens.Row) {
	cand := r.Candidate
	fmt.Fprintf(a.out, "%s [%s]\n", cand.Name, flagString(r))
	fmt.Fprintf(a.out, "  %s\n", cand.Headline)
	fmt.Fprintf(a.out, "  email:     %s\n", cand.Email)
	fmt.Fprintf(a.out, "  phone:     %s\n", cand.Phone)
	fmt.Fprintf(a.out, "  location:  %s\n", cand.Location)
	fmt.Fprintf(a.out, "  education: %s\n", cand.Education)
	fmt.Fprintf(a.out, "  job type:  %s\n", cand.JobType)
	fmt.Fprintf(a.out, "  skills:    %s\n", strings.Join(cand.Skills, ", "))
	fmt.Fprintf(a.out, "  languages: %s\n", strings.Join(cand.Languages, ", "))
	if cand.PhotoURL != "" {
		fmt.Fprintf(a.out, "  photo:     %s\n", cand.PhotoURL)
	}
	if !r.Unlocked {
		fmt.Fprintln(a.out, "  contact details hidden: 'unlock <id>' or 'unlock <id> bundle'")
	}
}
