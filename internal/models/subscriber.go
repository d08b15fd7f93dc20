package models

import "time"

// Subscriber represents one newsletter subscription. Email addresses are
// unique; re-subscribing is a no-op.
type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
