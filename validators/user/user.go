package userValidator

import (
	"strconv"
	"strings"

	"coursebot/middleware"

	"github.com/gofiber/fiber/v2"
)

func UpsertUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TelegramID int64  `json:"telegram_id"`
			Name       string `json:"name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate TelegramID
		if reqData.TelegramID <= 0 {
			errors["telegram_id"] = "Telegram ID must be greater than 0!"
		}

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

func GetUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		telegramIDStr := strings.TrimSpace(c.Params("telegramId"))
		if telegramIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Telegram ID is required!", nil)
		}

		telegramID, err := strconv.ParseInt(telegramIDStr, 10, 64)
		if err != nil || telegramID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Telegram ID!", nil)
		}

		c.Locals("telegramID", telegramID)
		return c.Next()
	}
}
