package routes

import (
	"github.com/gofiber/fiber/v2"

	"techguide/backend/config"
	"techguide/backend/controllers"
	"techguide/backend/middleware"
	"techguide/backend/models"
	"techguide/backend/services"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Accounts   *services.AccountService
	Catalog    *services.CatalogService
	Progress   *services.ProgressService
	Instructor *services.InstructorService
}

func SetupRoutes(app *fiber.App, svc Services, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authController := controllers.NewAuthController(svc.Accounts)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	staffOnly := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// User routes
	userController := controllers.NewUserController(svc.Accounts, svc.Progress)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Catalog routes
	catalogController := controllers.NewCatalogController(svc.Catalog)
	catalog := app.Group("/api/catalog", authMiddleware)
	catalog.Get("/categories", catalogController.ListCategories)
	catalog.Get("/tutorials", catalogController.ListTutorials)
	catalog.Get("/tutorials/:id", catalogController.GetTutorial)

	// Progress routes
	progressController := controllers.NewProgressController(svc.Progress)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/dashboard", progressController.GetDashboard)
	progress.Get("/courses", progressController.GetMyCourses)
	progress.Post("/tutorials/:id/start", progressController.StartTutorial)
	progress.Post("/tutorials/:id/complete", progressController.CompleteTutorial)

	// Instructor routes
	instructorController := controllers.NewInstructorController(svc.Instructor)
	instructor := app.Group("/api/instructor", authMiddleware, staffOnly)
	instructor.Get("/categories", instructorController.GetCategoryOverview)
	instructor.Get("/tutorials/:id/students", instructorController.GetTutorialStudents)

	// Admin routes
	adminController := controllers.NewAdminController(svc.Accounts)
	admin := app.Group("/api/admin", authMiddleware)
	admin.Get("/users", adminOnly, adminController.ListUsers)
	admin.Post("/users", staffOnly, adminController.CreateUser)
	admin.Put("/users/:id/role", adminOnly, adminController.ChangeRole)
}
