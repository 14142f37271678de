package models

// ScoredEntry is the score of one qualifying pull request, attributed to its author
type ScoredEntry struct {
	Identity string `json:"identity"`
	Points   int    `json:"points"`
}

// ContributorDetail is the name and contact of a contributor from the details sheet
type ContributorDetail struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// OutputRow is one line of the results sheet
type OutputRow struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	ProfileLink string `json:"profile_link"`
	TotalPoints int    `json:"total_points"`
}

// Values returns the row in column order A..D
func (r OutputRow) Values() []interface{} {
	return []interface{}{r.FullName, r.Email, r.ProfileLink, r.TotalPoints}
}
