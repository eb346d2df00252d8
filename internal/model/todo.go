// Package model defines the entities exchanged with the remote collections.
package model

import "time"

// TimestampLayout is the local-clock, minute-precision stamp stored in
// last_edited_time.
const TimestampLayout = "2006-01-02 15:04"

// TodoItem is a single entry of the remote to-do collection.
// ID is assigned by the store; Owner is set once at creation.
type TodoItem struct {
	ID           string `json:"id,omitempty"`
	Owner        string `json:"username"`
	Text         string `json:"text"`
	Done         bool   `json:"done"`
	LastEditedAt string `json:"last_edited_time"`
}

// TodoPatch is a partial update. Nil fields are left untouched by the store.
type TodoPatch struct {
	Text         *string `json:"text,omitempty"`
	Done         *bool   `json:"done,omitempty"`
	LastEditedAt string  `json:"last_edited_time"`
}

// User is a record of the remote users collection.
// Password holds an encoded credential hash, never the plaintext.
type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

// Timestamp formats t the way last_edited_time is stored.
func Timestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp parses a stored last_edited_time in the local zone.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}
