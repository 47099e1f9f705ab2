package model

import "time"

// Partner is a sponsor or partner organization shown on the public site
type Partner struct {
	ID           int64
	Name         string
	LogoURL      string
	WebsiteURL   string
	Tier         string
	DisplayOrder int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
