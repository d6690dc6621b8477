package events

// Event names understood by this consumer. Anything else is acknowledged
// and dropped.
const EventPostCreated = "PostCreated"

// Notification is a content event delivered by an upstream service.
// Delivery is at-least-once and unordered; duplicates are expected.
type Notification struct {
	Event    string `json:"event"`
	AuthorID int64  `json:"user_id"`
}
