package models

// Activity event types published to Kafka.
const (
	ActivityUserRegistered = "user_registered"
	ActivityPostCreated    = "post_created"
)

// Activity represents an activity event published to Kafka.
type Activity struct {
	ActivityID string `json:"activity_id"` // Unique event ID
	Timestamp  int64  `json:"timestamp"`   // Unix timestamp
	Type       string `json:"type"`        // Event type
	Username   string `json:"username"`    // Acting user
}
