package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// PublishKind is the administrator's three-way publish choice
type PublishKind string

const (
	PublishDraft     PublishKind = "draft"
	PublishNow       PublishKind = "now"
	PublishScheduled PublishKind = "scheduled"
)

// IsValid checks if the publish kind is valid
func (k PublishKind) IsValid() bool {
	switch k {
	case PublishDraft, PublishNow, PublishScheduled:
		return true
	default:
		return false
	}
}

// PublishIntent is the authoring choice prior to projection into the two
// persisted fields. At is meaningful only when Kind is PublishScheduled.
type PublishIntent struct {
	Kind PublishKind
	At   time.Time
}

// Validate enforces the temporal invariant: a scheduled publication must
// carry a timestamp strictly after now.
func (p PublishIntent) Validate(now time.Time) error {
	if !p.Kind.IsValid() {
		return goerr.New("unknown publish kind", goerr.V("kind", p.Kind))
	}
	if p.Kind != PublishScheduled {
		return nil
	}
	if p.At.IsZero() {
		return goerr.Wrap(ErrScheduleIncomplete, "no publication time set")
	}
	if !p.At.After(now) {
		return goerr.Wrap(ErrScheduleNotFuture, "publication time already passed",
			goerr.V(ScheduledAtKey, p.At),
			goerr.V("now", now))
	}
	return nil
}

// Projection maps the intent onto the persisted pair
// (isPublished, scheduledPublishAt):
//
//	Draft     -> (false, nil)
//	Now       -> (true,  nil)
//	Scheduled -> (false, &At)
func (p PublishIntent) Projection() (bool, *time.Time) {
	switch p.Kind {
	case PublishNow:
		return true, nil
	case PublishScheduled:
		at := p.At
		return false, &at
	default:
		return false, nil
	}
}

// IntentOf derives the editing intent from a persisted record. Published
// records read as Now regardless of any stale schedule; unpublished
// records with a schedule read as Scheduled; everything else is Draft.
func IntentOf(isPublished bool, scheduledAt *time.Time) PublishIntent {
	switch {
	case isPublished:
		return PublishIntent{Kind: PublishNow}
	case scheduledAt != nil:
		return PublishIntent{Kind: PublishScheduled, At: *scheduledAt}
	default:
		return PublishIntent{Kind: PublishDraft}
	}
}

// ScheduleAt combines the date and time picker values into one timestamp
// in the display timezone. Both parts must be non-empty.
func ScheduleAt(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	if dateStr == "" || timeStr == "" {
		return time.Time{}, goerr.Wrap(ErrScheduleIncomplete, "date and time are both required",
			goerr.V("date", dateStr),
			goerr.V("time", timeStr))
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to parse publication time",
			goerr.V("date", dateStr),
			goerr.V("time", timeStr))
	}
	return at, nil
}
