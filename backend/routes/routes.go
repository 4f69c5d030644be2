package routes

import (
	"coursehub/backend/config"
	"coursehub/backend/controllers"
	"coursehub/backend/middleware"
	"coursehub/backend/session"
	"coursehub/backend/storage"
	"coursehub/backend/wizard"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, gw *storage.Gateway, cfg *config.Config, log *zap.Logger) {
	sess := session.New(gw)
	wizards := wizard.NewRegistry(cfg.WizardTTL)

	// Auth routes
	authController := controllers.NewAuthController(sess, wizards, cfg, log)
	app.Post("/api/auth/signup", authController.Signup)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)
	app.Get("/api/auth/session", authController.CurrentSession)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg, sess)

	// Overview routes
	overviewController := controllers.NewOverviewController(gw)
	app.Get("/api/overview", overviewController.GetOverview)

	// Courses routes
	coursesController := controllers.NewCoursesController(gw, sess, wizards, cfg, log)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.SearchCourses)
	courses.Get("/price-bounds", coursesController.GetPriceBounds)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/reservation", coursesController.StartReservation)

	analyticsController := controllers.NewAnalyticsController(gw)
	courses.Get("/:id/analytics", analyticsController.GetCourseAnalytics)

	// Review routes
	reviewsController := controllers.NewReviewsController(gw, sess, wizards)
	app.Get("/api/reviews", reviewsController.GetReviews)
	app.Post("/api/reviews", reviewsController.StartReview)

	// Wizard routes
	wizardController := controllers.NewWizardController(wizards, cfg, log)
	wizardGroup := app.Group("/api/wizards")
	wizardGroup.Get("/:id", wizardController.GetWizard)
	wizardGroup.Patch("/:id/fields", wizardController.SetFields)
	wizardGroup.Post("/:id/next", wizardController.Next)
	wizardGroup.Post("/:id/back", wizardController.Back)
	wizardGroup.Post("/:id/submit", wizardController.Submit)
	wizardGroup.Delete("/:id", wizardController.DiscardWizard)

	// User routes
	userController := controllers.NewUserController(gw, sess, log)
	user := app.Group("/api/user", authMiddleware)
	user.Get("/profile", userController.GetProfile)
	user.Put("/profile", userController.UpdateProfile)
	user.Get("/reservations", userController.GetReservations)
	user.Post("/reservations/:id/cancel", userController.CancelReservation)
	user.Get("/reviews", userController.GetReviews)
}
