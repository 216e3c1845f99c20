package models

import "time"

// Notification is a user-visible message produced as a side effect of
// lifecycle transitions and settlement. Only the Read flag (and the Sent flag,
// owned by the delivery worker) mutate after insertion.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	Sent      bool      `bson:"sent" json:"sent"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
