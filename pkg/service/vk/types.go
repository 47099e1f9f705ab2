package vk

// Post is one wall post as returned by wall.get
type Post struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"owner_id"`
	Date        int64        `json:"date"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is a wall post attachment. Only photo and video carry data
// the import uses.
type Attachment struct {
	Type  string `json:"type"`
	Photo *Photo `json:"photo,omitempty"`
	Video *Video `json:"video,omitempty"`
}

type Photo struct {
	ID    int64       `json:"id"`
	Sizes []PhotoSize `json:"sizes"`
}

type PhotoSize struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// BestSize returns the URL of the largest size by pixel area, or empty
// when the photo has no sizes.
func (p *Photo) BestSize() string {
	best := ""
	bestArea := -1
	for _, s := range p.Sizes {
		area := s.Width * s.Height
		if area > bestArea {
			bestArea = area
			best = s.URL
		}
	}
	return best
}

type Video struct {
	ID        int64       `json:"id"`
	OwnerID   int64       `json:"owner_id"`
	AccessKey string      `json:"access_key"`
	Player    string      `json:"player"`
	Image     []PhotoSize `json:"image"`
}

type Group struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}
