package courseController

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

func (ctl *Controller) GetAllCourses(c *fiber.Ctx) error {
	courses, err := ctl.store.ListCourses(c.Context())
	if err != nil {
		log.Printf("list courses failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

func (ctl *Controller) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := ctl.store.GetCourseByID(c.Context(), uint(courseID))
	if errors.Is(err, store.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		log.Printf("get course failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ctl.store.CreateCourse(c.Context(), reqData.Title, reqData.Description)
	if err != nil {
		log.Printf("create course failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

// DeleteCourse rejects deletion while enrollments still reference the
// course; callers must remove those enrollments first.
func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	err := ctl.store.DeleteCourse(c.Context(), uint(courseID))
	if errors.Is(err, store.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if errors.Is(err, store.ErrEnrollmentsExist) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course still has enrollments!", nil)
	}
	if err != nil {
		log.Printf("delete course failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
