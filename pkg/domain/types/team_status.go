package types

// TeamStatus represents the review state of a team registration
type TeamStatus string

const (
	TeamStatusPending   TeamStatus = "pending"
	TeamStatusApproved  TeamStatus = "approved"
	TeamStatusRejected  TeamStatus = "rejected"
	TeamStatusWithdrawn TeamStatus = "withdrawn"
)

// IsValid checks if the team status is valid
func (s TeamStatus) IsValid() bool {
	switch s {
	case TeamStatusPending, TeamStatusApproved, TeamStatusRejected, TeamStatusWithdrawn:
		return true
	default:
		return false
	}
}

// String returns the string representation of the team status
func (s TeamStatus) String() string {
	return string(s)
}

// League represents the competition league a team enters
type League string

const (
	LeagueJunior League = "junior"
	LeagueSenior League = "senior"
)

// IsValid checks if the league is valid
func (l League) IsValid() bool {
	switch l {
	case LeagueJunior, LeagueSenior:
		return true
	default:
		return false
	}
}

// String returns the string representation of the league
func (l League) String() string {
	return string(l)
}
