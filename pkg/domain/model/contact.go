package model

import (
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// ContactMessage is one submission of the public contact form
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Topic     types.ContactTopic
	Message   string
	IsRead    bool
	IsReplied bool
	RepliedAt *time.Time
	RepliedBy int64
	IPAddress string
	CreatedAt time.Time
}
