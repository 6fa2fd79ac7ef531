package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-travelshare/internal/activity"
	"backend-travelshare/internal/daynote"
	"backend-travelshare/internal/location"
	"backend-travelshare/internal/social"
	"backend-travelshare/internal/trip"

	"github.com/pashagolub/pgxmock/v3"
)

var errQuery = errors.New("query error")

func newTimelineService(mock pgxmock.PgxPoolIface, now time.Time) *Service {
	trips := trip.NewService(mock)
	activities := activity.NewService(mock, trips)
	socialSvc := social.NewService(mock, trips)
	notes := daynote.NewService(mock, trips)
	locations := location.NewService(mock, trips, nil)
	return NewService(trips, activities, socialSvc, notes, locations).
		WithClock(func() time.Time { return now })
}

func expectTrip(mock pgxmock.PgxPoolIface, tripID string, isPublic bool) {
	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, description, start_date, end_date`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "start_date", "end_date", "cover_image", "owner_id", "is_public", "is_archived", "location_permissions", "created_at", "updated_at"}).
			AddRow(tripID, "Trip", "", now, now.Add(72*time.Hour), "", "user-1", isPublic, false, []byte(nil), now, now))
}

func expectSnapshot(mock pgxmock.PgxPoolIface, tripID string, anchor time.Time) {
	mock.ExpectQuery(`SELECT id, trip_id, created_by, type, title`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "trip_id", "created_by", "type", "title", "description", "scheduled_for", "start_time", "end_time", "location", "images", "metadata", "status", "created_at", "updated_at"}).
			AddRow("a1", tripID, "user-1", "dining", "Dinner", "", &anchor, nil, nil, "", []string{}, []byte(nil), "planned", anchor, anchor))
	mock.ExpectQuery(`FROM comments`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "activity_id", "user_id", "content", "created_at", "updated_at"}).
			AddRow("c1", "a1", "user-2", "yum", anchor, anchor))
	mock.ExpectQuery(`FROM reactions`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "activity_id", "user_id", "emoji", "created_at"}))
	mock.ExpectQuery(`FROM day_notes`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "trip_id", "date", "user_id", "content", "created_at", "updated_at"}))
	mock.ExpectQuery(`FROM location_updates`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "trip_id", "user_id", "lat", "lng", "accuracy_m", "timestamp"}))
}

func TestTripTimelineForMember(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	anchor := now.Add(-time.Hour)

	expectTrip(mock, "trip-1", false)
	mock.ExpectQuery(`SELECT role FROM trip_members`).
		WithArgs("trip-1", "user-2").
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("commentor"))
	expectSnapshot(mock, "trip-1", anchor)

	svc := newTimelineService(mock, now)
	feed, err := svc.TripTimeline(context.Background(), "trip-1", "user-2", "", "", "")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if feed.EffectiveRole != trip.RoleCommentor {
		t.Fatalf("effective role: %q", feed.EffectiveRole)
	}
	if !feed.Capabilities.CanComment || feed.Capabilities.CanAddActivity {
		t.Fatalf("commentor capabilities wrong: %+v", feed.Capabilities)
	}
	if len(feed.Days) != 1 || len(feed.Days[0].Activities) != 1 {
		t.Fatalf("expected one day with one activity")
	}
	if len(feed.Days[0].Activities[0].Comments) != 1 {
		t.Fatalf("comment should attach to activity")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripTimelineAdminViewAs(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	expectTrip(mock, "trip-1", false)
	mock.ExpectQuery(`SELECT role FROM trip_members`).
		WithArgs("trip-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("admin"))
	expectSnapshot(mock, "trip-1", now)

	svc := newTimelineService(mock, now)
	feed, err := svc.TripTimeline(context.Background(), "trip-1", "user-1", "viewer", "", "")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if feed.EffectiveRole != trip.RoleViewer {
		t.Fatalf("admin preview should assemble as viewer, got %q", feed.EffectiveRole)
	}
	if feed.Capabilities.CanComment || feed.Capabilities.CanManageTrip {
		t.Fatalf("previewed viewer must hold no capabilities")
	}
}

func TestTripTimelineViewAsIgnoredForNonAdmin(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	expectTrip(mock, "trip-1", false)
	mock.ExpectQuery(`SELECT role FROM trip_members`).
		WithArgs("trip-1", "user-3").
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("participant"))
	expectSnapshot(mock, "trip-1", now)

	svc := newTimelineService(mock, now)
	feed, err := svc.TripTimeline(context.Background(), "trip-1", "user-3", "admin", "", "")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if feed.EffectiveRole != trip.RoleParticipant {
		t.Fatalf("participant cannot escalate via preview, got %q", feed.EffectiveRole)
	}
}

func TestTripTimelineNonMemberPrivate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectTrip(mock, "trip-1", false)
	mock.ExpectQuery(`SELECT role FROM trip_members`).
		WithArgs("trip-1", "stranger").
		WillReturnError(errQuery)

	svc := newTimelineService(mock, time.Now())
	if _, err := svc.TripTimeline(context.Background(), "trip-1", "stranger", "", "", ""); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestTripTimelineNonMemberPublic(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	expectTrip(mock, "trip-1", true)
	mock.ExpectQuery(`SELECT role FROM trip_members`).
		WithArgs("trip-1", "stranger").
		WillReturnError(errQuery)
	expectSnapshot(mock, "trip-1", now)

	svc := newTimelineService(mock, now)
	feed, err := svc.TripTimeline(context.Background(), "trip-1", "stranger", "", "", "")
	if err != nil {
		t.Fatalf("public trip should be viewable: %v", err)
	}
	if feed.EffectiveRole != trip.RoleViewer {
		t.Fatalf("non-member views public trips as viewer, got %q", feed.EffectiveRole)
	}
}

func TestTripTimelineTripLoadError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, description, start_date, end_date`).
		WithArgs("missing").
		WillReturnError(errQuery)

	svc := newTimelineService(mock, time.Now())
	if _, err := svc.TripTimeline(context.Background(), "missing", "user-1", "", "", ""); err == nil {
		t.Fatalf("expected error")
	}
}
