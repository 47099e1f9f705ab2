package model

import "time"

// News is one content record. IsPublished and ScheduledPublishAt together
// encode the publish state; see PublishIntent for the mapping.
type News struct {
	ID                 int64
	Title              string
	Slug               string
	Excerpt            string
	Content            string
	FeaturedImage      string
	VideoURL           string
	Gallery            []string
	CategoryID         int64
	IsPublished        bool
	IsFeatured         bool
	ScheduledPublishAt *time.Time
	PublishDate        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Intent derives the editor's publish intent from the persisted state
func (n *News) Intent() PublishIntent {
	return IntentOf(n.IsPublished, n.ScheduledPublishAt)
}

// NewsCategory groups news records
type NewsCategory struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}
