package model

import (
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// VKIntegration holds the settings for importing wall posts from one VK
// community. At most one integration exists at a time.
type VKIntegration struct {
	ID                 int64
	GroupID            string
	AccessToken        string `masq:"secret"`
	Mode               types.VKMode
	DefaultCategoryID  int64
	AutoPublish        bool
	CheckIntervalMin   int
	FetchCount         int
	HashtagCategoryMap map[string]int64
	LastCheckedAt      *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Due reports whether the integration is ready for another automatic
// fetch at the given time.
func (v *VKIntegration) Due(now time.Time) bool {
	if v.Mode != types.VKModeAuto {
		return false
	}
	if v.LastCheckedAt == nil {
		return true
	}
	interval := time.Duration(v.CheckIntervalMin) * time.Minute
	return now.Sub(*v.LastCheckedAt) >= interval
}

// VKImportedPost records an imported wall post so repeated fetches do not
// duplicate news articles.
type VKImportedPost struct {
	ID            int64
	VKPostID      int64
	IntegrationID int64
	NewsID        int64
	VKPostDate    *time.Time
	ImportedAt    time.Time
}
