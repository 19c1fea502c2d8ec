package models

// Candidate is one profile in the directory. Languages and Skills are stored
// comma-separated in the database.
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
}
