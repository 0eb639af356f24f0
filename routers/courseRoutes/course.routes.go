package courseRoutes

import (
	courseController "coursebot/controllers/course"
	"coursebot/store"
	courseValidator "coursebot/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App, s *store.Store) {
	ctl := courseController.New(s)
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", ctl.GetAllCourses)
	courseGroup.Post("/", courseValidator.CreateCourse(), ctl.CreateCourse)
	courseGroup.Get("/:id", courseValidator.GetCourse(), ctl.GetCourseDetails)
	courseGroup.Delete("/:id", courseValidator.GetCourse(), ctl.DeleteCourse)
}
