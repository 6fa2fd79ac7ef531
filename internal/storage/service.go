package storage

import (
	"context"
	"time"

	"backend-travelshare/internal/db"

	"github.com/google/uuid"
)

// MediaObject is an image attached to an activity (note photos, activity
// covers). Only the URL reference is stored; upload itself happens against
// the external object store.
type MediaObject struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	URL        string    `json:"url"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) SaveObject(ctx context.Context, activityID, userID, url, kind string) (MediaObject, error) {
	obj := MediaObject{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		URL:        url,
		Kind:       kind,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO media_objects (id, activity_id, user_id, url, kind)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, obj.ID, obj.ActivityID, obj.UserID, obj.URL, obj.Kind)
	if err := row.Scan(&obj.CreatedAt); err != nil {
		return MediaObject{}, err
	}
	return obj, nil
}

func (s *Service) ListByActivity(ctx context.Context, activityID string) ([]MediaObject, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, activity_id, user_id, url, kind, created_at
		FROM media_objects WHERE activity_id=$1
		ORDER BY created_at
	`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []MediaObject
	for rows.Next() {
		var o MediaObject
		if err := rows.Scan(&o.ID, &o.ActivityID, &o.UserID, &o.URL, &o.Kind, &o.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, nil
}
