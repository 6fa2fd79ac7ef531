package flightstats

import (
	"context"
	"encoding/json"

	"backend-travelshare/internal/activity"
	"backend-travelshare/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// UserStats aggregates flights across every trip the user belongs to. The
// summary figures cover the full set; the query narrows only the flight
// list.
func (s *Service) UserStats(ctx context.Context, userID, query string) (Stats, error) {
	flights, err := s.userFlights(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	stats := Compute(flights)
	stats.Flights = Search(stats.Flights, query)
	return stats, nil
}

func (s *Service) userFlights(ctx context.Context, userID string) ([]activity.Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT a.id, a.trip_id, a.created_by, a.title, a.scheduled_for, a.start_time, a.end_time, a.metadata, a.created_at
		FROM activities a
		JOIN trip_members m ON m.trip_id = a.trip_id
		WHERE m.user_id=$1 AND a.type='transportation' AND a.metadata ? 'airline'
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []activity.Activity
	for rows.Next() {
		var f activity.Activity
		var meta []byte
		if err := rows.Scan(&f.ID, &f.TripID, &f.CreatedBy, &f.Title, &f.ScheduledFor, &f.StartTime, &f.EndTime, &meta, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Type = activity.TypeTransportation
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &f.Metadata); err != nil {
				return nil, err
			}
		}
		flights = append(flights, f)
	}
	return flights, nil
}
