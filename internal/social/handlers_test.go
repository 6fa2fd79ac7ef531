package social

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend-travelshare/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func fakeAuth(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func expectActivityTrip(mock pgxmock.PgxPoolIface, activityID, tripID string) {
	mock.ExpectQuery(`SELECT trip_id FROM activities`).
		WithArgs(activityID).
		WillReturnRows(pgxmock.NewRows([]string{"trip_id"}).AddRow(tripID))
}

func expectCommentTrip(mock pgxmock.PgxPoolIface, commentID, tripID string) {
	mock.ExpectQuery(`SELECT a.trip_id FROM comments c`).
		WithArgs(commentID).
		WillReturnRows(pgxmock.NewRows([]string{"trip_id"}).AddRow(tripID))
}

func expectRole(mock pgxmock.PgxPoolIface, tripID, userID, role string) {
	mock.ExpectQuery(`SELECT role FROM trip_members`).
		WithArgs(tripID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(role))
}

func TestSocialHandlersComment(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectActivityTrip(mock, "act-1", "trip-1")
	expectRole(mock, "trip-1", "user-1", "commentor")
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs(pgxmock.AnyArg(), "act-1", "user-1", "nice").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, trip.NewService(mock)), fakeAuth("user-1"))

	body, _ := json.Marshal(map[string]string{"content": "nice"})
	req := httptest.NewRequest(http.MethodPost, "/activities/act-1/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("comment status: %v", err)
	}
}

func TestSocialHandlersCommentForbiddenForViewer(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectActivityTrip(mock, "act-1", "trip-1")
	expectRole(mock, "trip-1", "user-3", "viewer")

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, trip.NewService(mock)), fakeAuth("user-3"))

	body, _ := json.Marshal(map[string]string{"content": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/activities/act-1/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("viewer must not comment")
	}
}

func TestSocialHandlersReactionToggle(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, trip.NewService(mock)), fakeAuth("user-1"))

	expectActivityTrip(mock, "act-1", "trip-1")
	expectRole(mock, "trip-1", "user-1", "participant")
	mock.ExpectQuery(`SELECT id FROM reactions`).
		WithArgs("act-1", "user-1", "🎉").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO reactions`).
		WithArgs(pgxmock.AnyArg(), "act-1", "user-1", "🎉").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	body, _ := json.Marshal(map[string]string{"emoji": "🎉"})
	req := httptest.NewRequest(http.MethodPost, "/activities/act-1/reactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("reaction add status: %v", err)
	}

	// toggling again removes and reports it
	expectActivityTrip(mock, "act-1", "trip-1")
	expectRole(mock, "trip-1", "user-1", "participant")
	mock.ExpectQuery(`SELECT id FROM reactions`).
		WithArgs("act-1", "user-1", "🎉").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("react-1"))
	mock.ExpectExec(`DELETE FROM reactions WHERE id=\$1`).
		WithArgs("react-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	req = httptest.NewRequest(http.MethodPost, "/activities/act-1/reactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("reaction toggle-off status: %v", err)
	}
}

func TestSocialHandlersDeleteComment(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, trip.NewService(mock)), fakeAuth("user-1"))

	expectCommentTrip(mock, "comment-1", "trip-1")
	expectRole(mock, "trip-1", "user-1", "participant")
	mock.ExpectExec(`DELETE FROM comments`).
		WithArgs("comment-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	req := httptest.NewRequest(http.MethodDelete, "/comments/comment-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete comment status: %v", err)
	}

	expectCommentTrip(mock, "comment-2", "trip-1")
	expectRole(mock, "trip-1", "user-1", "participant")
	mock.ExpectExec(`DELETE FROM comments`).
		WithArgs("comment-2", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	req = httptest.NewRequest(http.MethodDelete, "/comments/comment-2", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign comment delete should be forbidden")
	}
}

func TestSocialHandlersAdminDeletesForeignComment(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, trip.NewService(mock)), fakeAuth("admin-1"))

	// trip admins may remove any comment, not just their own
	expectCommentTrip(mock, "comment-3", "trip-1")
	expectRole(mock, "trip-1", "admin-1", "admin")
	mock.ExpectExec(`DELETE FROM comments WHERE id=\$1$`).
		WithArgs("comment-3").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	req := httptest.NewRequest(http.MethodDelete, "/comments/comment-3", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin delete status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSocialHandlersBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, NewService(nil, trip.NewService(nil)), fakeAuth("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/activities/act-1/comments", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty comment should be rejected")
	}

	req = httptest.NewRequest(http.MethodPost, "/activities/act-1/reactions", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty emoji should be rejected")
	}
}
