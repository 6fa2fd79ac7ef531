package activity

import (
	"context"
	"encoding/json"
	"time"

	"backend-travelshare/internal/db"
	"backend-travelshare/internal/trip"

	"github.com/google/uuid"
)

type Service struct {
	db    db.Querier
	trips *trip.Service
}

func NewService(db db.Querier, trips *trip.Service) *Service {
	return &Service{db: db, trips: trips}
}

const activityColumns = `id, trip_id, created_by, type, title, description, scheduled_for, start_time, end_time, location, images, metadata, status, created_at, updated_at`

func (s *Service) CreateActivity(ctx context.Context, input Activity) (Activity, error) {
	input.ID = uuid.NewString()
	if input.Status == "" {
		input.Status = StatusPlanned
	}
	if input.Images == nil {
		input.Images = []string{}
	}
	meta, err := json.Marshal(input.Metadata)
	if err != nil {
		return Activity{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO activities (id, trip_id, created_by, type, title, description, scheduled_for, start_time, end_time, location, images, metadata, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at
	`, input.ID, input.TripID, input.CreatedBy, string(input.Type), input.Title, input.Description,
		input.ScheduledFor, input.StartTime, input.EndTime, input.Location, input.Images, meta, string(input.Status))
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Activity{}, err
	}
	return input, nil
}

// CreateNote is the quick-add path for note-type entries: they anchor to the
// moment of capture and land on the timeline already completed.
func (s *Service) CreateNote(ctx context.Context, tripID, userID, title, description, location string, images []string) (Activity, error) {
	now := time.Now()
	if title == "" {
		title = "Note"
	}
	return s.CreateActivity(ctx, Activity{
		TripID:       tripID,
		CreatedBy:    userID,
		Type:         TypeNote,
		Title:        title,
		Description:  description,
		Location:     location,
		Images:       images,
		ScheduledFor: &now,
		StartTime:    &now,
		Status:       StatusCompleted,
		Metadata: map[string]any{
			"autoLocation": location != "",
			"capturedAt":   now.Format(time.RFC3339),
		},
	})
}

func (s *Service) GetActivity(ctx context.Context, id string) (Activity, error) {
	row := s.db.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id=$1`, id)
	return scanActivity(row)
}

func (s *Service) UpdateActivity(ctx context.Context, id string, patch Activity) (Activity, error) {
	a, err := s.GetActivity(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	if patch.Title != "" {
		a.Title = patch.Title
	}
	if patch.Description != "" {
		a.Description = patch.Description
	}
	if patch.Type != "" {
		a.Type = patch.Type
	}
	if patch.Status != "" {
		a.Status = patch.Status
	}
	if patch.ScheduledFor != nil {
		a.ScheduledFor = patch.ScheduledFor
	}
	if patch.StartTime != nil {
		a.StartTime = patch.StartTime
	}
	if patch.EndTime != nil {
		a.EndTime = patch.EndTime
	}
	if patch.Location != "" {
		a.Location = patch.Location
	}
	if patch.Images != nil {
		a.Images = patch.Images
	}
	if patch.Metadata != nil {
		a.Metadata = patch.Metadata
	}

	meta, err := json.Marshal(a.Metadata)
	if err != nil {
		return Activity{}, err
	}
	_, err = s.db.Exec(ctx, `
		UPDATE activities
		SET type=$2, title=$3, description=$4, scheduled_for=$5, start_time=$6, end_time=$7, location=$8, images=$9, metadata=$10, status=$11, updated_at=now()
		WHERE id=$1
	`, a.ID, string(a.Type), a.Title, a.Description, a.ScheduledFor, a.StartTime, a.EndTime, a.Location, a.Images, meta, string(a.Status))
	if err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (s *Service) ListByTrip(ctx context.Context, tripID string) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activities WHERE trip_id=$1
		ORDER BY COALESCE(scheduled_for, start_time, created_at)
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// Search is a case-insensitive substring match over title, description,
// location and type.
func (s *Service) Search(ctx context.Context, tripID, query string) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE trip_id=$1
		  AND (title ILIKE '%'||$2||'%' OR description ILIKE '%'||$2||'%' OR location ILIKE '%'||$2||'%' OR type ILIKE '%'||$2||'%')
		ORDER BY COALESCE(scheduled_for, start_time, created_at)
	`, tripID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, nil
}

func scanActivity(row interface{ Scan(...any) error }) (Activity, error) {
	var a Activity
	var typ, status string
	var meta []byte
	if err := row.Scan(&a.ID, &a.TripID, &a.CreatedBy, &typ, &a.Title, &a.Description,
		&a.ScheduledFor, &a.StartTime, &a.EndTime, &a.Location, &a.Images, &meta, &status,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return Activity{}, err
	}
	a.Type = Type(typ)
	a.Status = Status(status)
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &a.Metadata); err != nil {
			return Activity{}, err
		}
	}
	return a, nil
}
