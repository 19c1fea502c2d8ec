package marketv1

import (
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
)

type Candidate struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Headline  string   `json:"headline,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Education string   `json:"education,omitempty"`
	Languages []string `json:"languages,omitempty"`
	JobType   string   `json:"jobType,omitempty"`
	Location  string   `json:"location,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Approved  bool     `json:"approved"`
}

// Preference is one (user, candidate) relationship row. The user is implied
// by the access token.
type Preference struct {
	CandidateID string    `json:"candidateId"`
	Saved       bool      `json:"saved"`
	Favourite   bool      `json:"favourite"`
	Downloaded  bool      `json:"downloaded"`
	Unlocked    bool      `json:"unlocked"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type Grant struct {
	CandidateID string    `json:"candidateId"`
	IssuedAt    time.Time `json:"issuedAt"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type PingRequest = emptypb.Empty

type PingResponse struct {
	Status string `json:"status"`
}

type ListCandidatesRequest = emptypb.Empty

type ListCandidatesResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type ApprovedIDsRequest = emptypb.Empty

type ApprovedIDsResponse struct {
	IDs []string `json:"ids"`
}

// FindPreferencesRequest narrows to one candidate when CandidateID is set.
type FindPreferencesRequest struct {
	CandidateID string `json:"candidateId,omitempty"`
}

type FindPreferencesResponse struct {
	Preferences []Preference `json:"preferences"`
}

type UpsertPreferenceRequest struct {
	Preference Preference `json:"preference"`
}

type UpsertPreferenceResponse = emptypb.Empty

type GetBalanceRequest = emptypb.Empty

type GetBalanceResponse struct {
	Balance int64 `json:"balance"`
}

type SetBalanceRequest struct {
	Balance int64 `json:"balance"`
}

type SetBalanceResponse = emptypb.Empty

type GetGrantRequest struct {
	CandidateID string `json:"candidateId"`
}

type GetGrantResponse struct {
	Grant Grant `json:"grant"`
}

// PutGrantRequest carries no issue time; the server stamps its own clock.
type PutGrantRequest struct {
	CandidateID string `json:"candidateId"`
}

type PutGrantResponse struct {
	Grant Grant `json:"grant"`
}

type ListGrantsRequest = emptypb.Empty

type ListGrantsResponse struct {
	Grants []Grant `json:"grants"`
}

type RecordUsageRequest struct {
	CandidateID string `json:"candidateId"`
	Kind        string `json:"kind"`
	Cost        int64  `json:"cost"`
}

type RecordUsageResponse struct {
	ID int64 `json:"id"`
}

type PhotoURLsRequest struct {
	CandidateIDs []string `json:"candidateIds"`
}

type PhotoURLsResponse struct {
	URLs map[string]string `json:"urls"`
}
