package trip

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend-travelshare/internal/db"

	"github.com/google/uuid"
)

const invitationTTL = 7 * 24 * time.Hour

var ErrInvitationInvalid = errors.New("invitation invalid or expired")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateTrip(ctx context.Context, input Trip) (Trip, error) {
	input.ID = uuid.NewString()
	if input.LocationPermissions == (LocationPermissions{}) {
		input.LocationPermissions = DefaultLocationPermissions()
	}
	perms, err := json.Marshal(input.LocationPermissions)
	if err != nil {
		return Trip{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, name, description, start_date, end_date, cover_image, owner_id, is_public, location_permissions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`, input.ID, input.Name, input.Description, timePtr(input.StartDate), timePtr(input.EndDate), input.CoverImage, input.OwnerID, input.IsPublic, perms)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Trip{}, err
	}

	if _, err := s.AddMember(ctx, input.ID, input.OwnerID, string(RoleAdmin)); err != nil {
		return Trip{}, err
	}
	return input, nil
}

func (s *Service) GetTrip(ctx context.Context, id string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, start_date, end_date, cover_image, owner_id, is_public, is_archived, location_permissions, created_at, updated_at
		FROM trips WHERE id=$1
	`, id)
	return scanTrip(row)
}

func (s *Service) UpdateTrip(ctx context.Context, id string, patch Patch) (Trip, error) {
	trip, err := s.GetTrip(ctx, id)
	if err != nil {
		return Trip{}, err
	}
	if patch.Name != "" {
		trip.Name = patch.Name
	}
	if patch.Description != "" {
		trip.Description = patch.Description
	}
	if !patch.StartDate.IsZero() {
		trip.StartDate = patch.StartDate
	}
	if !patch.EndDate.IsZero() {
		trip.EndDate = patch.EndDate
	}
	if patch.CoverImage != "" {
		trip.CoverImage = patch.CoverImage
	}
	if patch.IsPublic != nil {
		trip.IsPublic = *patch.IsPublic
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET name=$2, description=$3, start_date=$4, end_date=$5, cover_image=$6, is_public=$7, updated_at=now()
		WHERE id=$1
	`, trip.ID, trip.Name, trip.Description, timePtr(trip.StartDate), timePtr(trip.EndDate), trip.CoverImage, trip.IsPublic)
	if err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func (s *Service) ArchiveTrip(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE trips SET is_archived=true, updated_at=now() WHERE id=$1`, id)
	return err
}

func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	return err
}

// UpdateLocationPermissions replaces the trip's per-role location matrix.
func (s *Service) UpdateLocationPermissions(ctx context.Context, tripID string, perms LocationPermissions) error {
	payload, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		UPDATE trips SET location_permissions=$2, updated_at=now() WHERE id=$1
	`, tripID, payload)
	return err
}

func (s *Service) AddMember(ctx context.Context, tripID, userID, role string) (Member, error) {
	if role == "" {
		role = string(RoleParticipant)
	}
	resolved := ParseRole(role)
	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_members (trip_id, user_id, role)
		VALUES ($1,$2,$3)
		ON CONFLICT (trip_id, user_id) DO UPDATE SET role=EXCLUDED.role
		RETURNING joined_at
	`, tripID, userID, string(resolved))
	member := Member{TripID: tripID, UserID: userID, Role: resolved}
	if err := row.Scan(&member.JoinedAt); err != nil {
		return Member{}, err
	}
	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, tripID, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trip_members WHERE trip_id=$1 AND user_id=$2`, tripID, userID)
	return err
}

func (s *Service) Members(ctx context.Context, tripID string) ([]Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT trip_id, user_id, role, joined_at
		FROM trip_members WHERE trip_id=$1
		ORDER BY joined_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		var role string
		if err := rows.Scan(&m.TripID, &m.UserID, &role, &m.JoinedAt); err != nil {
			return nil, err
		}
		m.Role = ParseRole(role)
		members = append(members, m)
	}
	return members, nil
}

// MemberRole returns the caller's role for a trip, or an error when they are
// not a member at all.
func (s *Service) MemberRole(ctx context.Context, tripID, userID string) (Role, error) {
	var role string
	err := s.db.QueryRow(ctx, `
		SELECT role FROM trip_members WHERE trip_id=$1 AND user_id=$2
	`, tripID, userID).Scan(&role)
	if err != nil {
		return "", err
	}
	return ParseRole(role), nil
}

func (s *Service) Invite(ctx context.Context, tripID, email, role string) (Invitation, error) {
	inv := Invitation{
		ID:        uuid.NewString(),
		TripID:    tripID,
		Email:     email,
		Role:      ParseRole(role),
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(invitationTTL),
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_invitations (id, trip_id, email, role, token, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, inv.ID, inv.TripID, inv.Email, string(inv.Role), inv.Token, inv.ExpiresAt)
	if err := row.Scan(&inv.CreatedAt); err != nil {
		return Invitation{}, err
	}
	return inv, nil
}

func (s *Service) AcceptInvitation(ctx context.Context, token, userID string) (Member, error) {
	var inv Invitation
	var role string
	var acceptedAt *time.Time
	err := s.db.QueryRow(ctx, `
		SELECT id, trip_id, role, expires_at, accepted_at
		FROM trip_invitations WHERE token=$1
	`, token).Scan(&inv.ID, &inv.TripID, &role, &inv.ExpiresAt, &acceptedAt)
	if err != nil {
		return Member{}, err
	}
	if acceptedAt != nil || time.Now().After(inv.ExpiresAt) {
		return Member{}, ErrInvitationInvalid
	}

	member, err := s.AddMember(ctx, inv.TripID, userID, role)
	if err != nil {
		return Member{}, err
	}
	_, err = s.db.Exec(ctx, `UPDATE trip_invitations SET accepted_at=now() WHERE id=$1`, inv.ID)
	if err != nil {
		return Member{}, err
	}
	return member, nil
}

func scanTrip(row interface{ Scan(...any) error }) (Trip, error) {
	var trip Trip
	var perms []byte
	if err := row.Scan(&trip.ID, &trip.Name, &trip.Description, &trip.StartDate, &trip.EndDate, &trip.CoverImage,
		&trip.OwnerID, &trip.IsPublic, &trip.IsArchived, &perms, &trip.CreatedAt, &trip.UpdatedAt); err != nil {
		return Trip{}, err
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &trip.LocationPermissions); err != nil {
			return Trip{}, err
		}
	} else {
		trip.LocationPermissions = DefaultLocationPermissions()
	}
	return trip, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
