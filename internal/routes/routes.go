package routes

const (
	// Health
	Health = "/health"

	// Worker endpoints
	Screenings    = "/api/v1/screenings"
	ScreeningByID = "/api/v1/screenings/{id}"
	Submissions   = "/api/v1/screenings/submissions"
	WorkerMe      = "/api/v1/workers/me"

	// Admin endpoints
	AdminScreenings       = "/api/v1/admin/screenings"
	AdminReviewQueue      = "/api/v1/admin/review-queue"
	AdminReview           = "/api/v1/admin/review"
	AdminWorkers          = "/api/v1/admin/workers"
	AdminWorkerTransition = "/api/v1/admin/workers/{id}/transition"
	AdminWorkerByID       = "/api/v1/admin/workers/{id}"
)
