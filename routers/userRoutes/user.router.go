package userRoutes

import (
	userController "coursebot/controllers/user"
	"coursebot/store"
	userValidator "coursebot/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, s *store.Store) {
	ctl := userController.New(s)
	userGroup := app.Group("/users")

	userGroup.Post("/", userValidator.UpsertUser(), ctl.UpsertUser)
	userGroup.Get("/", ctl.ListUsers)
	userGroup.Get("/:telegramId", userValidator.GetUser(), ctl.GetUser)
}
