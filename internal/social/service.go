package social

import (
	"context"
	"errors"

	"backend-travelshare/internal/db"
	"backend-travelshare/internal/trip"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotCommentOwner = errors.New("comment belongs to another user")

type Service struct {
	db    db.Querier
	trips *trip.Service
}

func NewService(db db.Querier, trips *trip.Service) *Service {
	return &Service{db: db, trips: trips}
}

func (s *Service) AddComment(ctx context.Context, activityID, userID, content string) (Comment, error) {
	comment := Comment{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		Content:    content,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (id, activity_id, user_id, content)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at
	`, comment.ID, comment.ActivityID, comment.UserID, comment.Content)
	if err := row.Scan(&comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Non-admins may only delete their own.
func (s *Service) DeleteComment(ctx context.Context, commentID, userID string, isAdmin bool) error {
	if isAdmin {
		_, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id=$1`, commentID)
		return err
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id=$1 AND user_id=$2`, commentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotCommentOwner
	}
	return nil
}

func (s *Service) CommentsByTrip(ctx context.Context, tripID string) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.activity_id, c.user_id, c.content, c.created_at, c.updated_at
		FROM comments c
		JOIN activities a ON a.id = c.activity_id
		WHERE a.trip_id=$1
		ORDER BY c.created_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// ToggleReaction adds a reaction, unless the same user already reacted with
// the same emoji on the same activity, in which case the existing reaction
// is removed instead. The bool reports whether a reaction now exists.
func (s *Service) ToggleReaction(ctx context.Context, activityID, userID, emoji string) (Reaction, bool, error) {
	var existingID string
	err := s.db.QueryRow(ctx, `
		SELECT id FROM reactions WHERE activity_id=$1 AND user_id=$2 AND emoji=$3
	`, activityID, userID, emoji).Scan(&existingID)
	switch {
	case err == nil:
		_, err := s.db.Exec(ctx, `DELETE FROM reactions WHERE id=$1`, existingID)
		return Reaction{}, false, err
	case errors.Is(err, pgx.ErrNoRows):
		// fall through to insert
	default:
		return Reaction{}, false, err
	}

	reaction := Reaction{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		Emoji:      emoji,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO reactions (id, activity_id, user_id, emoji)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, reaction.ID, reaction.ActivityID, reaction.UserID, reaction.Emoji)
	if err := row.Scan(&reaction.CreatedAt); err != nil {
		return Reaction{}, false, err
	}
	return reaction, true, nil
}

func (s *Service) RemoveReaction(ctx context.Context, reactionID, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM reactions WHERE id=$1 AND user_id=$2`, reactionID, userID)
	return err
}

func (s *Service) ReactionsByTrip(ctx context.Context, tripID string) ([]Reaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.activity_id, r.user_id, r.emoji, r.created_at
		FROM reactions r
		JOIN activities a ON a.id = r.activity_id
		WHERE a.trip_id=$1
		ORDER BY r.created_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []Reaction
	for rows.Next() {
		var r Reaction
		if err := rows.Scan(&r.ID, &r.ActivityID, &r.UserID, &r.Emoji, &r.CreatedAt); err != nil {
			return nil, err
		}
		reactions = append(reactions, r)
	}
	return reactions, nil
}

// activityTrip resolves which trip an activity belongs to, for role checks.
func (s *Service) activityTrip(ctx context.Context, activityID string) (string, error) {
	var tripID string
	err := s.db.QueryRow(ctx, `SELECT trip_id FROM activities WHERE id=$1`, activityID).Scan(&tripID)
	return tripID, err
}

// commentTrip resolves which trip a comment belongs to, for role checks.
func (s *Service) commentTrip(ctx context.Context, commentID string) (string, error) {
	var tripID string
	err := s.db.QueryRow(ctx, `
		SELECT a.trip_id FROM comments c
		JOIN activities a ON a.id = c.activity_id
		WHERE c.id=$1
	`, commentID).Scan(&tripID)
	return tripID, err
}
