package model

import "time"

// Season represents one annual competition cycle
type Season struct {
	ID                   int64
	Year                 int
	Name                 string
	Theme                string
	Location             string
	RegistrationOpen     bool
	RegistrationStart    *time.Time
	RegistrationEnd      *time.Time
	CompetitionDateStart *time.Time
	CompetitionDateEnd   *time.Time
	IsCurrent            bool
	IsArchived           bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ArchiveSeason is the frozen record created when a season is finalized.
// TeamsCount is a snapshot taken at finalization time.
type ArchiveSeason struct {
	ID             int64
	Year           int
	Name           string
	Theme          string
	Description    string
	CoverImage     string
	FirstPlace     string
	SecondPlace    string
	ThirdPlace     string
	AdditionalInfo string
	TeamsCount     int
	CreatedAt      time.Time
}
