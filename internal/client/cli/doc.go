// Package cli provides the interactive TalentLedger command-line client.
//
// It resumes the stored session (or asks for credentials) and runs a REPL
// over the four candidate list screens: all, favourite, saved and unlocked.
// Each screen keeps its own page, search, filters and selection.
//
// Key features:
//   - Register / Login / Logout
//   - Browse: page through a screen, search, filter, sort
//   - Mark candidates saved, favourite or downloaded
//   - Unlock contact details for coins (profile or profile+messaging)
//   - Open a detail view and return to the same page
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
