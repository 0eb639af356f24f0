package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  code == http.StatusOK,
		"message": message,
		"data":    data,
	})
}

func TestUpsertUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)

		var body struct {
			TelegramID int64  `json:"telegram_id"`
			Name       string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 42, body.TelegramID)

		respond(w, http.StatusOK, "User saved successfully!", map[string]interface{}{
			"ID": 1, "telegram_id": body.TelegramID, "name": body.Name,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	user, err := c.UpsertUser(context.Background(), 42, "Alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courses", r.URL.Path)
		respond(w, http.StatusOK, "Courses fetched successfully!", []map[string]interface{}{
			{"ID": 1, "title": "Go 101", "description": ""},
			{"ID": 2, "title": "Go 201", "description": "Advanced"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	courses, err := c.Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Go 101", courses[0].Title)
	assert.EqualValues(t, 2, courses[1].ID)
}

func TestCourseNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusNotFound, "Course not found!", nil)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Course(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnrollAlreadyEnrolled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusBadRequest, "User already enrolled in this course!", nil)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Enroll(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestLeaveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/enrollments/leave_enrollment/1/7", r.URL.Path)
		respond(w, http.StatusNotFound, "Enrollment not found!", nil)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Leave(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerFaultIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusInternalServerError, "Failed to fetch courses!", nil)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Courses(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestTimeoutIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		respond(w, http.StatusOK, "Courses fetched successfully!", nil)
	}))
	defer srv.Close()

	c := New(srv.URL, 20*time.Millisecond)
	_, err := c.Courses(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestUnreachableBackendIsUpstream(t *testing.T) {
	c := New("http://127.0.0.1:1", 100*time.Millisecond)
	_, err := c.Courses(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}
