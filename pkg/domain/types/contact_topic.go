package types

// ContactTopic represents the subject area of a contact form message
type ContactTopic string

const (
	ContactTopicTechnical    ContactTopic = "technical"
	ContactTopicRegistration ContactTopic = "registration"
	ContactTopicSponsorship  ContactTopic = "sponsorship"
	ContactTopicPress        ContactTopic = "press"
	ContactTopicOther        ContactTopic = "other"
)

// AllContactTopics returns all valid contact topics
func AllContactTopics() []ContactTopic {
	return []ContactTopic{
		ContactTopicTechnical,
		ContactTopicRegistration,
		ContactTopicSponsorship,
		ContactTopicPress,
		ContactTopicOther,
	}
}

// IsValid checks if the contact topic is valid
func (t ContactTopic) IsValid() bool {
	switch t {
	case ContactTopicTechnical,
		ContactTopicRegistration,
		ContactTopicSponsorship,
		ContactTopicPress,
		ContactTopicOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the contact topic
func (t ContactTopic) String() string {
	return string(t)
}
