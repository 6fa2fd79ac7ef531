package location

import "time"

// Update is one entry in the append-only location log. Whether a member is
// "active" is derived at read time from the freshness window, never stored.
type Update struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	UserID    string    `json:"user_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	AccuracyM float64   `json:"accuracy_m,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
