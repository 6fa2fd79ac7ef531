package daynote

import "time"

// DayNote is a single free-text annotation for one calendar date of a trip.
// At most one note exists per (trip, date); saving over an existing note
// replaces its content and reassigns authorship to the saver.
type DayNote struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	Date      string    `json:"date"` // yyyy-mm-dd
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
