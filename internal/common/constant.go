// Package common contains shared constants and sentinel errors used across
// TalentLedger components.
package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// UnlockGrantValidity is how long an unlock grant (remote or locally cached)
// stays valid after issuance. Expiry is evaluated lazily on every read.
const UnlockGrantValidity = 30 * 24 * time.Hour

// Named unlock costs. Screens pass one of these to the unlock coordinator,
// which itself is cost-agnostic.
const (
	// UnlockCostProfile reveals the masked contact fields of one profile.
	UnlockCostProfile int64 = 50
	// UnlockCostProfileMessaging reveals contact fields and opens messaging.
	UnlockCostProfileMessaging int64 = 80
)

// GrantExpired reports whether a grant issued at issuedAt is past its
// validity window at now. The boundary instant itself is still valid.
func GrantExpired(issuedAt, now time.Time) bool {
	return now.After(issuedAt.Add(UnlockGrantValidity))
}
