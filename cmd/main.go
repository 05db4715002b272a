package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/poofware/screening-service/internal/app"
	"github.com/poofware/screening-service/internal/config"
	"github.com/poofware/screening-service/internal/constants"
	"github.com/poofware/screening-service/internal/controllers"
	"github.com/poofware/screening-service/internal/middleware"
	"github.com/poofware/screening-service/internal/repositories"
	"github.com/poofware/screening-service/internal/routes"
	"github.com/poofware/screening-service/internal/services"
	"github.com/poofware/screening-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize screening-service:", err)
	}
	defer application.Close()

	// Repositories
	workerRepo := repositories.NewWorkerRepository(application.DB)
	screeningRepo := repositories.NewScreeningRepository(application.DB)
	submissionRepo := repositories.NewSubmissionRepository(application.DB)

	// Services
	scoringService := services.NewScoringService()
	workerService := services.NewWorkerService(workerRepo)
	screeningService := services.NewScreeningService(screeningRepo)
	lifecycleService := services.NewLifecycleService(workerRepo)
	submissionService := services.NewSubmissionService(workerRepo, screeningRepo, submissionRepo, scoringService)
	reviewService := services.NewReviewService(submissionRepo, screeningRepo, lifecycleService, scoringService)
	escalationService := services.NewReviewEscalationService(
		submissionRepo,
		cfg.MaxPendingReviewAge,
		constants.ReviewEscalationCronSpec,
	)

	if err := escalationService.Start(); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to start review escalation sweep")
	}
	defer escalationService.Stop()

	// Controllers
	healthController := controllers.NewHealthController(application)
	screeningController := controllers.NewScreeningController(screeningService)
	submissionController := controllers.NewSubmissionController(submissionService, workerService)
	workerController := controllers.NewWorkerController(workerService, lifecycleService)
	reviewController := controllers.NewReviewController(reviewService)

	// Router setup
	router := mux.NewRouter()

	// Public Routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Secured routes for workers
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	secured.HandleFunc(routes.Screenings, screeningController.ListScreeningsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ScreeningByID, screeningController.GetScreeningHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Submissions, submissionController.SubmitHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.WorkerMe, workerController.GetMeHandler).Methods(http.MethodGet)

	// Admin routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuthMiddleware(cfg.RSAPublicKey))
	admin.HandleFunc(routes.AdminScreenings, screeningController.CreateScreeningHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminReviewQueue, reviewController.ListQueueHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReview, reviewController.ReviewHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminWorkers, workerController.CreateWorkerHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminWorkerByID, workerController.GetWorkerHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminWorkerTransition, workerController.TransitionHandler).Methods(http.MethodPost)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)

	utils.Logger.Infof("screening-service listening on :%s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, corsHandler); err != nil {
		utils.Logger.Fatal("Server stopped:", err)
	}
}
