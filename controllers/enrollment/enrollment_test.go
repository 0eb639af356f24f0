package enrollmentController_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursebot/database"
	"coursebot/models"
	courseRoutes "coursebot/routers/courseRoutes"
	enrollmentRoutes "coursebot/routers/enrollmentRoutes"
	userRoutes "coursebot/routers/userRoutes"
	"coursebot/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	s := store.New(db)
	t.Cleanup(func() { _ = s.Close() })

	app := fiber.New()
	userRoutes.SetupUserRoutes(app, s)
	courseRoutes.SetupCourseRoutes(app, s)
	enrollmentRoutes.SetupEnrollmentRoutes(app, s)
	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func seed(t *testing.T, s *store.Store) (models.User, models.Course) {
	t.Helper()
	ctx := context.Background()

	user, err := s.UpsertUser(ctx, 42, "Alice")
	require.NoError(t, err)
	course, err := s.CreateCourse(ctx, "Go 101", "Introductory Go")
	require.NoError(t, err)
	return user, course
}

func TestUpsertUserEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/users", map[string]interface{}{
		"telegram_id": 42, "name": "Alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, envelope["status"])

	data := envelope["data"].(map[string]interface{})
	firstID := data["ID"].(float64)
	assert.Equal(t, "Alice", data["name"])

	// Same external id with a new name updates in place.
	resp, envelope = doJSON(t, app, http.MethodPost, "/users", map[string]interface{}{
		"telegram_id": 42, "name": "Alicia",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = envelope["data"].(map[string]interface{})
	assert.Equal(t, firstID, data["ID"])
	assert.Equal(t, "Alicia", data["name"])
}

func TestUpsertUserValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, envelope := doJSON(t, app, http.MethodPost, "/users", map[string]interface{}{
		"telegram_id": 0, "name": "",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, false, envelope["status"])
}

func TestEnrollEndpointDuplicate(t *testing.T) {
	app, s := newTestApp(t)
	user, course := seed(t, s)

	body := map[string]interface{}{"user_id": user.ID, "course_id": course.ID}

	resp, envelope := doJSON(t, app, http.MethodPost, "/enrollments/enroll", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, envelope["status"])

	resp, envelope = doJSON(t, app, http.MethodPost, "/enrollments/enroll", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already enrolled in this course!", envelope["message"])
}

func TestEnrollEndpointUnknownCourse(t *testing.T) {
	app, s := newTestApp(t)
	user, _ := seed(t, s)

	resp, _ := doJSON(t, app, http.MethodPost, "/enrollments/enroll", map[string]interface{}{
		"user_id": user.ID, "course_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLeaveEnrollmentEndpoint(t *testing.T) {
	app, s := newTestApp(t)
	user, course := seed(t, s)

	_, err := s.Enroll(context.Background(), user.ID, course.ID)
	require.NoError(t, err)

	path := fmt.Sprintf("/enrollments/leave_enrollment/%d/%d", user.ID, course.ID)

	resp, envelope := doJSON(t, app, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope["data"].(map[string]interface{})
	assert.EqualValues(t, user.ID, data["user_id"].(float64))

	resp, _ = doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserCoursesEndpoint(t *testing.T) {
	app, s := newTestApp(t)
	user, course := seed(t, s)

	_, err := s.Enroll(context.Background(), user.ID, course.ID)
	require.NoError(t, err)

	resp, envelope := doJSON(t, app, http.MethodGet, fmt.Sprintf("/enrollments/users/%d/courses", user.TelegramID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	courses := envelope["data"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Go 101", courses[0].(map[string]interface{})["title"])
}

func TestUserCoursesUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/enrollments/users/999/courses", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCourseEndpointNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/courses/123", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCourseEndpointConflict(t *testing.T) {
	app, s := newTestApp(t)
	user, course := seed(t, s)

	_, err := s.Enroll(context.Background(), user.ID, course.ID)
	require.NoError(t, err)

	path := fmt.Sprintf("/courses/%d", course.ID)

	resp, _ := doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	_, err = s.RemoveEnrollment(context.Background(), user.ID, course.ID)
	require.NoError(t, err)

	resp, _ = doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
