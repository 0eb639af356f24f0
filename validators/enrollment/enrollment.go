package enrollmentValidator

import (
	"strconv"
	"strings"

	"coursebot/middleware"

	"github.com/gofiber/fiber/v2"
)

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint `json:"user_id"`
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID must be greater than 0!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

func LeaveEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := parsePositiveParam(c, "userId")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		courseID, err := parsePositiveParam(c, "courseId")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("userID", userID)
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func UserCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		telegramIDStr := strings.TrimSpace(c.Params("telegramId"))
		telegramID, err := strconv.ParseInt(telegramIDStr, 10, 64)
		if err != nil || telegramID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Telegram ID!", nil)
		}

		c.Locals("telegramID", telegramID)
		return c.Next()
	}
}

func parsePositiveParam(c *fiber.Ctx, name string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(c.Params(name)))
	if err != nil || value <= 0 {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}
