package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"railcare/handler"
	"railcare/middleware"
	"railcare/models"
	"railcare/service"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	complaintService *service.ComplaintService,
	lifecycleService *service.LifecycleService,
	categoryService *service.CategoryService,
	notificationService *service.NotificationService,
	emailTemplateService *service.EmailTemplateService,
	userService *service.UserService,
	reportService *service.ReportService,
	jwtSecret string,
	tokenTTLHours int,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Instrument)

	// Initialize handlers
	complaintHandler := handler.NewComplaintHandler(complaintService, lifecycleService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	emailTemplateHandler := handler.NewEmailTemplateHandler(emailTemplateService)
	authHandler := handler.NewAuthHandler(userService, jwtSecret, tokenTTLHours)
	adminHandler := handler.NewAdminHandler(userService, reportService)

	authMiddleware := middleware.NewAuthMiddleware(userService, jwtSecret)

	// API v1 routes
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	// Auth routes (public)
	auth := apiV1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	// Complaint routes (protected - require auth)
	complaints := apiV1.PathPrefix("/complaints").Subrouter()

	// POST /api/v1/complaints - Lodge a new grievance
	complaints.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Create))).Methods("POST")

	// GET /api/v1/complaints - List grievances visible to the caller
	complaints.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.List))).Methods("GET")

	// GET /api/v1/complaints/{id} - Grievance detail
	complaints.Handle("/{id}", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Get))).Methods("GET")

	// GET /api/v1/complaints/{id}/history - Transaction timeline
	complaints.Handle("/{id}/history", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.History))).Methods("GET")

	// Lifecycle actions (role checks happen in the service layer)
	complaints.Handle("/{id}/forward", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Forward))).Methods("POST")
	complaints.Handle("/{id}/close", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Close))).Methods("POST")
	complaints.Handle("/{id}/approve", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Approve))).Methods("POST")
	complaints.Handle("/{id}/revert", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Revert))).Methods("POST")
	complaints.Handle("/{id}/reply", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Reply))).Methods("POST")
	complaints.Handle("/{id}/additional-info", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.AdditionalInfo))).Methods("POST")
	complaints.Handle("/{id}/feedback", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Feedback))).Methods("POST")

	// Category routes
	categories := apiV1.PathPrefix("/categories").Subrouter()
	categories.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(categoryHandler.List))).Methods("GET")
	categories.Handle("/hierarchy", authMiddleware.RequireAuth(http.HandlerFunc(categoryHandler.Hierarchy))).Methods("GET")
	categories.Handle("/search", authMiddleware.RequireAuth(http.HandlerFunc(categoryHandler.Search))).Methods("GET")
	categories.Handle("", authMiddleware.RequireAdmin(http.HandlerFunc(categoryHandler.Create))).Methods("POST")
	categories.Handle("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(categoryHandler.Update))).Methods("PUT")
	categories.Handle("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(categoryHandler.Delete))).Methods("DELETE")

	// Notification routes
	notifications := apiV1.PathPrefix("/notifications").Subrouter()
	notifications.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(notificationHandler.List))).Methods("GET")
	notifications.Handle("/{id}/read", authMiddleware.RequireAuth(http.HandlerFunc(notificationHandler.MarkRead))).Methods("POST")
	notifications.Handle("/read-all", authMiddleware.RequireAuth(http.HandlerFunc(notificationHandler.MarkAllRead))).Methods("POST")
	notifications.Handle("/broadcast", authMiddleware.RequireRole(http.HandlerFunc(notificationHandler.Broadcast), models.RoleAdmin, models.RoleController)).Methods("POST")

	// Admin routes (admin role only)
	admin := apiV1.PathPrefix("/admin").Subrouter()
	admin.Handle("/users", authMiddleware.RequireAdmin(http.HandlerFunc(adminHandler.ListUsers))).Methods("GET")
	admin.Handle("/users", authMiddleware.RequireAdmin(http.HandlerFunc(adminHandler.CreateUser))).Methods("POST")
	admin.Handle("/users/{login_id}", authMiddleware.RequireAdmin(http.HandlerFunc(adminHandler.UpdateUser))).Methods("PUT")
	admin.Handle("/departments", authMiddleware.RequireStaff(http.HandlerFunc(adminHandler.DepartmentUsers))).Methods("GET")
	admin.Handle("/reports/summary", authMiddleware.RequireStaff(http.HandlerFunc(adminHandler.ReportSummary))).Methods("GET")

	admin.Handle("/email-templates", authMiddleware.RequireAdmin(http.HandlerFunc(emailTemplateHandler.List))).Methods("GET")
	admin.Handle("/email-templates", authMiddleware.RequireAdmin(http.HandlerFunc(emailTemplateHandler.Create))).Methods("POST")
	admin.Handle("/email-templates/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(emailTemplateHandler.Update))).Methods("PUT")
	admin.Handle("/email-templates/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(emailTemplateHandler.Delete))).Methods("DELETE")
	admin.Handle("/bulk-email", authMiddleware.RequireAdmin(http.HandlerFunc(emailTemplateHandler.BulkEmail))).Methods("POST")

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
