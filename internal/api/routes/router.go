package routes

import (
	"net/http"

	"github.com/surgiplan/backend/internal/api/handlers"
	"github.com/surgiplan/backend/internal/api/middleware"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	surgeryHandler      *handlers.SurgeryHandler
	calendarHandler     *handlers.CalendarHandler
	dashboardHandler    *handlers.DashboardHandler
	reportHandler       *handlers.ReportHandler
	referenceHandler    *handlers.ReferenceHandler
	notificationHandler *handlers.NotificationHandler

	authService *services.AuthService
	metrics     *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	surgeryHandler *handlers.SurgeryHandler,
	calendarHandler *handlers.CalendarHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	referenceHandler *handlers.ReferenceHandler,
	notificationHandler *handlers.NotificationHandler,
	authService *services.AuthService,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:         authHandler,
		surgeryHandler:      surgeryHandler,
		calendarHandler:     calendarHandler,
		dashboardHandler:    dashboardHandler,
		reportHandler:       reportHandler,
		referenceHandler:    referenceHandler,
		notificationHandler: notificationHandler,

		authService: authService,
		metrics:     metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("GET /api/auth/session", r.authHandler.GetSession)

	// Everything below requires a session.
	protected := http.NewServeMux()

	// Calendar and dashboard endpoints
	protected.HandleFunc("GET /api/calendar", r.calendarHandler.GetCalendar)
	protected.HandleFunc("GET /api/dashboard", r.dashboardHandler.GetDashboard)

	// Surgery endpoints
	protected.HandleFunc("GET /api/surgeries", r.surgeryHandler.ListSurgeries)
	protected.HandleFunc("GET /api/surgeries/search", r.surgeryHandler.SearchSurgeries)
	protected.HandleFunc("GET /api/surgeries/{id}", r.surgeryHandler.GetSurgery)
	protected.HandleFunc("POST /api/surgeries", r.surgeryHandler.CreateSurgery)
	protected.HandleFunc("PUT /api/surgeries/{id}", r.surgeryHandler.UpdateSurgery)
	protected.HandleFunc("DELETE /api/surgeries/{id}", r.surgeryHandler.DeleteSurgery)
	protected.HandleFunc("POST /api/surgeries/{id}/reschedule", r.surgeryHandler.RescheduleSurgery)

	// Report endpoints
	protected.HandleFunc("GET /api/reports", r.reportHandler.GetReport)
	protected.HandleFunc("GET /api/reports/export", r.reportHandler.ExportReport)

	// Reference data endpoints
	protected.HandleFunc("GET /api/doctors", r.referenceHandler.ListDoctors)
	protected.HandleFunc("POST /api/doctors", r.referenceHandler.SaveDoctor)
	protected.HandleFunc("PUT /api/doctors/{id}", r.referenceHandler.SaveDoctor)
	protected.HandleFunc("DELETE /api/doctors/{id}", r.referenceHandler.DeleteDoctor)

	protected.HandleFunc("GET /api/hospitals", r.referenceHandler.ListHospitals)
	protected.HandleFunc("POST /api/hospitals", r.referenceHandler.SaveHospital)
	protected.HandleFunc("PUT /api/hospitals/{id}", r.referenceHandler.SaveHospital)
	protected.HandleFunc("DELETE /api/hospitals/{id}", r.referenceHandler.DeleteHospital)

	protected.HandleFunc("GET /api/insurance-plans", r.referenceHandler.ListInsurancePlans)
	protected.HandleFunc("POST /api/insurance-plans", r.referenceHandler.SaveInsurancePlan)
	protected.HandleFunc("PUT /api/insurance-plans/{id}", r.referenceHandler.SaveInsurancePlan)
	protected.HandleFunc("DELETE /api/insurance-plans/{id}", r.referenceHandler.DeleteInsurancePlan)

	// Notification endpoints
	protected.HandleFunc("GET /api/notifications", r.notificationHandler.ListNotifications)
	protected.HandleFunc("DELETE /api/notifications/{id}", r.notificationHandler.DismissNotification)
	protected.HandleFunc("GET /api/notifications/stream", r.notificationHandler.StreamNotifications)

	r.mux.Handle("/api/", middleware.SessionMiddleware(r.authService)(protected))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on preflights
	handler = middleware.CORSMiddleware(handler)

	return handler
}
