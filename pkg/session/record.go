package session

import "time"

// Record is a single session.
type Record struct {
	ID        string    `json:"session_id" yaml:"-" bson:"session_id"`
	UserID    string    `json:"user_id" yaml:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" bson:"created_at"`
}

// Expired reports whether the record is older than ttl at now.
// A ttl of zero or less never expires.
func (r Record) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	if r.CreatedAt.IsZero() {
		return true
	}
	return r.CreatedAt.Add(ttl).Before(now)
}

func (r Record) valid() bool {
	return r.ID != "" && r.UserID != ""
}
