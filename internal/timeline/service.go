package timeline

import (
	"context"
	"errors"
	"time"

	"backend-travelshare/internal/activity"
	"backend-travelshare/internal/daynote"
	"backend-travelshare/internal/location"
	"backend-travelshare/internal/social"
	"backend-travelshare/internal/trip"
)

var ErrNotMember = errors.New("not a member of this trip")

// Service assembles timelines from the other domain services. The clock is
// injectable so classification and live-position tests can pin the instant.
type Service struct {
	trips      *trip.Service
	activities *activity.Service
	social     *social.Service
	notes      *daynote.Service
	locations  *location.Service
	now        func() time.Time
}

func NewService(trips *trip.Service, activities *activity.Service, socialSvc *social.Service, notes *daynote.Service, locations *location.Service) *Service {
	return &Service{
		trips:      trips,
		activities: activities,
		social:     socialSvc,
		notes:      notes,
		locations:  locations,
		now:        time.Now,
	}
}

// WithClock overrides the evaluation instant provider.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TripTimeline loads the trip's five collections and assembles the feed for
// one viewer. viewAs is honored only when the viewer really is an admin.
// Non-members see public trips as viewers and get ErrNotMember otherwise.
func (s *Service) TripTimeline(ctx context.Context, tripID, userID, viewAs, statusFilter, typeFilter string) (Feed, error) {
	t, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return Feed{}, err
	}

	actual, err := s.trips.MemberRole(ctx, tripID, userID)
	if err != nil {
		if !t.IsPublic {
			return Feed{}, ErrNotMember
		}
		actual = trip.RoleViewer
	}
	effective := trip.Effective(actual, viewAs)

	snap, err := s.loadSnapshot(ctx, tripID)
	if err != nil {
		return Feed{}, err
	}

	return Assemble(snap, effective, t.LocationPermissions,
		ParseStatusFilter(statusFilter), ParseTypeFilter(typeFilter), s.now()), nil
}

func (s *Service) loadSnapshot(ctx context.Context, tripID string) (Snapshot, error) {
	activities, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return Snapshot{}, err
	}
	comments, err := s.social.CommentsByTrip(ctx, tripID)
	if err != nil {
		return Snapshot{}, err
	}
	reactions, err := s.social.ReactionsByTrip(ctx, tripID)
	if err != nil {
		return Snapshot{}, err
	}
	notes, err := s.notes.ListByTrip(ctx, tripID)
	if err != nil {
		return Snapshot{}, err
	}
	updates, err := s.locations.Latest(ctx, tripID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Activities: activities,
		Comments:   comments,
		Reactions:  reactions,
		DayNotes:   notes,
		Locations:  updates,
	}, nil
}
