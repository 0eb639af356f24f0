package main

import (
	"log"

	"coursebot/config"
	"coursebot/database"
	courseRoutes "coursebot/routers/courseRoutes"
	enrollmentRoutes "coursebot/routers/enrollmentRoutes"
	userRoutes "coursebot/routers/userRoutes"
	"coursebot/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	st := store.New(db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API is running!"})
	})

	userRoutes.SetupUserRoutes(app, st)
	courseRoutes.SetupCourseRoutes(app, st)
	enrollmentRoutes.SetupEnrollmentRoutes(app, st)

	log.Printf("Server is running on port %s", cfg.Port)
	err = app.Listen(":" + cfg.Port)

	// Release the connection pool before reporting why the server stopped.
	if closeErr := st.Close(); closeErr != nil {
		log.Printf("Failed to close store: %v", closeErr)
	}
	if err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
