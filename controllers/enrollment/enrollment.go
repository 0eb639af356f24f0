package enrollmentController

import (
	"errors"
	"log"

	"coursebot/middleware"
	"coursebot/store"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	store *store.Store
}

func New(s *store.Store) *Controller {
	return &Controller{store: s}
}

// Enroll creates an enrollment for the given (user, course) pair.
// Re-enrolling an already-enrolled pair is a client error, not a fault.
func (ctl *Controller) Enroll(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, err := ctl.store.Enroll(c.Context(), reqData.UserID, reqData.CourseID)
	if errors.Is(err, store.ErrDuplicateEnrollment) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already enrolled in this course!", nil)
	}
	if errors.Is(err, store.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User or course not found!", nil)
	}
	if err != nil {
		log.Printf("enroll failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// LeaveEnrollment deletes the enrollment for the (user, course) pair and
// echoes the removed record back for confirmation.
func (ctl *Controller) LeaveEnrollment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	courseID := c.Locals("courseID").(int)

	enrollment, err := ctl.store.RemoveEnrollment(c.Context(), uint(userID), uint(courseID))
	if errors.Is(err, store.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}
	if err != nil {
		log.Printf("remove enrollment failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment removed successfully!", enrollment)
}

// UserCourses lists the courses the user identified by Telegram ID is
// enrolled in. An unknown user is a 404; a known user with no enrollments
// gets an empty list.
func (ctl *Controller) UserCourses(c *fiber.Ctx) error {
	telegramID := c.Locals("telegramID").(int64)

	user, err := ctl.store.GetUserByTelegramID(c.Context(), telegramID)
	if errors.Is(err, store.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if err != nil {
		log.Printf("get user failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	courses, err := ctl.store.CoursesForUser(c.Context(), user.ID)
	if err != nil {
		log.Printf("courses for user failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}
