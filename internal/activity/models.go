package activity

import "time"

type Type string

const (
	TypeSightseeing    Type = "sightseeing"
	TypeDining         Type = "dining"
	TypeAccommodation  Type = "accommodation"
	TypeTransportation Type = "transportation"
	TypeActivity       Type = "activity"
	TypeNote           Type = "note"
	TypeOther          Type = "other"
)

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Activity struct {
	ID           string         `json:"id"`
	TripID       string         `json:"trip_id"`
	CreatedBy    string         `json:"created_by"`
	Type         Type           `json:"type"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	ScheduledFor *time.Time     `json:"scheduled_for,omitempty"`
	StartTime    *time.Time     `json:"start_time,omitempty"`
	EndTime      *time.Time     `json:"end_time,omitempty"`
	Location     string         `json:"location,omitempty"`
	Images       []string       `json:"images,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Status       Status         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AnchorTime is the single timestamp that places an activity in the
// timeline: scheduled_for, else start_time, else created_at. Every activity
// resolves to some anchor.
func (a Activity) AnchorTime() time.Time {
	if a.ScheduledFor != nil {
		return *a.ScheduledFor
	}
	if a.StartTime != nil {
		return *a.StartTime
	}
	return a.CreatedAt
}

// MetaString reads a string field from the activity metadata.
func (a Activity) MetaString(key string) string {
	if a.Metadata == nil {
		return ""
	}
	s, _ := a.Metadata[key].(string)
	return s
}

// MetaNumber reads a numeric metadata field. The second return reports
// whether the field was present as a number at all, so callers can exclude
// missing values instead of treating them as zero.
func (a Activity) MetaNumber(key string) (float64, bool) {
	if a.Metadata == nil {
		return 0, false
	}
	switch v := a.Metadata[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
