package domain

import "time"

// Notification is a per-recipient message created when a change affects a
// staff member other than the actor. Only the Read flag is ever mutated.
type Notification struct {
	ID        string
	UserID    string
	LeadID    string
	Content   string
	Author    string
	Read      bool
	CreatedAt time.Time
}
