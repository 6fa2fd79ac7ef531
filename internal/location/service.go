package location

import (
	"context"
	"encoding/json"
	"time"

	"backend-travelshare/internal/db"
	"backend-travelshare/internal/stream"
	"backend-travelshare/internal/trip"

	"github.com/google/uuid"
)

// FreshnessWindow is how long after their latest update a member still
// counts as actively sharing.
const FreshnessWindow = 30 * time.Minute

type Service struct {
	db    db.Querier
	trips *trip.Service
	hub   *stream.Hub
}

func NewService(db db.Querier, trips *trip.Service, hub *stream.Hub) *Service {
	return &Service{db: db, trips: trips, hub: hub}
}

// Record appends a location update and broadcasts it to trip subscribers.
func (s *Service) Record(ctx context.Context, input Update) (Update, error) {
	input.ID = uuid.NewString()
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO location_updates (id, trip_id, user_id, lat, lng, accuracy_m, timestamp)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING timestamp
	`, input.ID, input.TripID, input.UserID, input.Lat, input.Lng, input.AccuracyM, input.Timestamp)
	if err := row.Scan(&input.Timestamp); err != nil {
		return Update{}, err
	}

	if s.hub != nil {
		payload, _ := json.Marshal(input)
		s.hub.Broadcast(input.TripID, payload)
	}
	return input, nil
}

// Latest returns each member's most recent update for a trip.
func (s *Service) Latest(ctx context.Context, tripID string) ([]Update, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT ON (user_id) id, trip_id, user_id, lat, lng, COALESCE(accuracy_m,0), timestamp
		FROM location_updates
		WHERE trip_id=$1
		ORDER BY user_id, timestamp DESC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []Update
	for rows.Next() {
		var u Update
		if err := rows.Scan(&u.ID, &u.TripID, &u.UserID, &u.Lat, &u.Lng, &u.AccuracyM, &u.Timestamp); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}

// Active filters each member's latest update down to those inside the
// freshness window. Evaluated against now at every call, never cached.
func Active(updates []Update, now time.Time) []Update {
	latest := map[string]Update{}
	for _, u := range updates {
		prev, ok := latest[u.UserID]
		if !ok || u.Timestamp.After(prev.Timestamp) {
			latest[u.UserID] = u
		}
	}

	var active []Update
	for _, u := range updates {
		best, ok := latest[u.UserID]
		if !ok || best.ID != u.ID {
			continue
		}
		if now.Sub(best.Timestamp) < FreshnessWindow {
			active = append(active, best)
		}
	}
	return active
}
