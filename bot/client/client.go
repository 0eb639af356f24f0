// Package client is the bot's typed view of the backend REST API. Domain
// outcomes (not found, already enrolled) come back as sentinel errors the
// handlers can branch on; transport failures, timeouts and 5xx responses
// all collapse into ErrUpstream, which the bot surfaces as a transient
// "try again" message.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUpstream signals that the backend could not be reached or failed;
	// the condition is transient from the bot's point of view.
	ErrUpstream = errors.New("backend unavailable")

	// ErrNotFound signals that the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyEnrolled signals that the user already holds an enrollment
	// for the course. Callers treat it as "already enrolled", not a fault.
	ErrAlreadyEnrolled = errors.New("already enrolled")
)

type User struct {
	ID         uint   `json:"ID"`
	TelegramID int64  `json:"telegram_id"`
	Name       string `json:"name"`
}

type Course struct {
	ID          uint   `json:"ID"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Enrollment struct {
	ID       uint `json:"ID"`
	UserID   uint `json:"user_id"`
	CourseID uint `json:"course_id"`
}

// envelope mirrors the backend's JsonResponse shape.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &Client{http: c}
}

// UpsertUser registers or refreshes the user on the backend. Safe to
// repeat: the backend treats it as an upsert.
func (c *Client) UpsertUser(ctx context.Context, telegramID int64, name string) (User, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"telegram_id": telegramID, "name": name}).
		Post("/users")
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var user User
	if err := decode(resp, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Courses fetches the full course list.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/courses")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var courses []Course
	if err := decode(resp, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Course fetches a single course by id; ErrNotFound when it does not exist.
func (c *Client) Course(ctx context.Context, id uint) (Course, error) {
	resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/courses/%d", id))
	if err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var course Course
	if err := decode(resp, &course); err != nil {
		return Course{}, err
	}
	return course, nil
}

// UserCourses fetches the courses the Telegram user is enrolled in.
// ErrNotFound when the user has never been registered.
func (c *Client) UserCourses(ctx context.Context, telegramID int64) ([]Course, error) {
	resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/enrollments/users/%d/courses", telegramID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var courses []Course
	if err := decode(resp, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Enroll enrolls the user (backend surrogate id) in the course.
// ErrAlreadyEnrolled when an enrollment for the pair already exists.
func (c *Client) Enroll(ctx context.Context, userID, courseID uint) (Enrollment, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"user_id": userID, "course_id": courseID}).
		Post("/enrollments/enroll")
	if err != nil {
		return Enrollment{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode() == 400 {
		return Enrollment{}, ErrAlreadyEnrolled
	}

	var enrollment Enrollment
	if err := decode(resp, &enrollment); err != nil {
		return Enrollment{}, err
	}
	return enrollment, nil
}

// Leave removes the user's enrollment in the course and returns the removed
// record; ErrNotFound when no enrollment exists for the pair.
func (c *Client) Leave(ctx context.Context, userID, courseID uint) (Enrollment, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/enrollments/leave_enrollment/%d/%d", userID, courseID))
	if err != nil {
		return Enrollment{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var enrollment Enrollment
	if err := decode(resp, &enrollment); err != nil {
		return Enrollment{}, err
	}
	return enrollment, nil
}

// decode maps the response status to the error taxonomy and unmarshals the
// envelope's data field into out on success.
func decode(resp *resty.Response, out interface{}) error {
	switch {
	case resp.StatusCode() == 404:
		return ErrNotFound
	case resp.StatusCode() >= 500:
		return fmt.Errorf("%w: backend returned %d", ErrUpstream, resp.StatusCode())
	case resp.StatusCode() != 200:
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode(), resp.String())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrUpstream, err)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: malformed response data: %v", ErrUpstream, err)
	}
	return nil
}
