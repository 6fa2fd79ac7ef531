package daynote

import (
	"context"
	"errors"

	"backend-travelshare/internal/db"
	"backend-travelshare/internal/trip"

	"github.com/google/uuid"
)

var ErrNoteNotFound = errors.New("day note not found")

type Service struct {
	db    db.Querier
	trips *trip.Service
}

func NewService(db db.Querier, trips *trip.Service) *Service {
	return &Service{db: db, trips: trips}
}

// Save upserts the note for a (trip, date) pair. Concurrent saves are
// last-write-wins; the most recent saver becomes the note's author.
func (s *Service) Save(ctx context.Context, tripID, date, userID, content string) (DayNote, error) {
	note := DayNote{
		TripID:  tripID,
		Date:    date,
		UserID:  userID,
		Content: content,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO day_notes (id, trip_id, date, user_id, content)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (trip_id, date) DO UPDATE
		SET content=EXCLUDED.content, user_id=EXCLUDED.user_id, updated_at=now()
		RETURNING id, created_at, updated_at
	`, uuid.NewString(), tripID, date, userID, content)
	if err := row.Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return DayNote{}, err
	}
	return note, nil
}

// Delete removes a note, scoped to the trip so ids from other trips miss.
func (s *Service) Delete(ctx context.Context, tripID, noteID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM day_notes WHERE id=$1 AND trip_id=$2`, noteID, tripID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (s *Service) ListByTrip(ctx context.Context, tripID string) ([]DayNote, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, date, user_id, content, created_at, updated_at
		FROM day_notes WHERE trip_id=$1
		ORDER BY date
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []DayNote
	for rows.Next() {
		var n DayNote
		if err := rows.Scan(&n.ID, &n.TripID, &n.Date, &n.UserID, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}
