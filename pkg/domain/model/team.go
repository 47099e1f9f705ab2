package model

import (
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// Team is a registered competition team. CustomFields holds the values of
// the season's dynamic form fields; it is nil when the submission carried
// none, which is distinct from an empty map at the wire level.
type Team struct {
	ID                 int64
	SeasonID           int64
	RegistrationNumber string
	Name               string
	Email              string
	Phone              string
	Organization       string
	City               string
	Region             string
	ParticipantsCount  int
	League             types.League
	RulesAccepted      bool
	Status             types.TeamStatus
	CustomFields       map[string]any
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
