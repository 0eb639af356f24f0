package enrollmentRoutes

import (
	enrollmentController "coursebot/controllers/enrollment"
	"coursebot/store"
	enrollmentValidator "coursebot/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App, s *store.Store) {
	ctl := enrollmentController.New(s)
	enrollmentGroup := app.Group("/enrollments")

	enrollmentGroup.Post("/enroll", enrollmentValidator.Enroll(), ctl.Enroll)
	enrollmentGroup.Delete("/leave_enrollment/:userId/:courseId", enrollmentValidator.LeaveEnrollment(), ctl.LeaveEnrollment)
	enrollmentGroup.Get("/users/:telegramId/courses", enrollmentValidator.UserCourses(), ctl.UserCourses)
}
