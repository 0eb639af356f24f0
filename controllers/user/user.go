package userController

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

// UpsertUser creates or updates a user by Telegram ID. Never fails on
// "already exists": repeating the same request leaves the row unchanged.
func (ctl *Controller) UpsertUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		TelegramID int64  `json:"telegram_id"`
		Name       string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.store.UpsertUser(c.Context(), reqData.TelegramID, reqData.Name)
	if err != nil {
		log.Printf("upsert user failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User saved successfully!", user)
}

func (ctl *Controller) ListUsers(c *fiber.Ctx) error {
	users, err := ctl.store.ListUsers(c.Context())
	if err != nil {
		log.Printf("list users failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

func (ctl *Controller) GetUser(c *fiber.Ctx) error {
	telegramID := c.Locals("telegramID").(int64)

	user, err := ctl.store.GetUserByTelegramID(c.Context(), telegramID)
	if errors.Is(err, store.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if err != nil {
		log.Printf("get user failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}
