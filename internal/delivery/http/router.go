package http

import (
	"net/http"

	"carelink/internal/delivery/http/handler"
	"carelink/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	careHandler        *handler.CareHandler
	appointmentHandler *handler.AppointmentHandler
	healthHandler      *handler.HealthHandler
	recordHandler      *handler.RecordHandler
	doctorHandler      *handler.DoctorHandler
	patientHandler     *handler.PatientHandler
	chatHandler        *handler.ChatHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	careHandler *handler.CareHandler,
	appointmentHandler *handler.AppointmentHandler,
	healthHandler *handler.HealthHandler,
	recordHandler *handler.RecordHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		careHandler:        careHandler,
		appointmentHandler: appointmentHandler,
		healthHandler:      healthHandler,
		recordHandler:      recordHandler,
		doctorHandler:      doctorHandler,
		patientHandler:     patientHandler,
		chatHandler:        chatHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)
	authProtected.HandleFunc("/profile", r.authHandler.UpdateProfile).Methods(http.MethodPut)
	authProtected.HandleFunc("/account", r.authHandler.DeleteAccount).Methods(http.MethodDelete)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)

	patient.HandleFunc("/care-requests", r.careHandler.SendRequest).Methods(http.MethodPost)
	patient.HandleFunc("/care-requests", r.careHandler.ListPatientRequests).Methods(http.MethodGet)
	patient.HandleFunc("/doctors", r.patientHandler.ListDoctors).Methods(http.MethodGet)
	patient.HandleFunc("/doctors/available", r.patientHandler.ListAvailableDoctors).Methods(http.MethodGet)
	patient.HandleFunc("/dashboard", r.patientHandler.Dashboard).Methods(http.MethodGet)

	patient.HandleFunc("/metrics", r.healthHandler.ListMetrics).Methods(http.MethodGet)
	patient.HandleFunc("/metrics", r.healthHandler.AddMetric).Methods(http.MethodPost)
	patient.HandleFunc("/metrics/{id}", r.healthHandler.DeleteMetric).Methods(http.MethodDelete)
	patient.HandleFunc("/metrics/import", r.healthHandler.ImportFile).Methods(http.MethodPost)
	patient.HandleFunc("/metrics/files", r.healthHandler.ListFiles).Methods(http.MethodGet)

	patient.HandleFunc("/records", r.recordHandler.Upload).Methods(http.MethodPost)
	patient.HandleFunc("/records", r.recordHandler.List).Methods(http.MethodGet)
	patient.HandleFunc("/records/{id}", r.recordHandler.Delete).Methods(http.MethodDelete)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/care-requests", r.careHandler.ListDoctorRequests).Methods(http.MethodGet)
	doctor.HandleFunc("/care-requests/{id}", r.careHandler.RespondToRequest).Methods(http.MethodPut)
	doctor.HandleFunc("/assignments", r.careHandler.DirectAssign).Methods(http.MethodPost)
	doctor.HandleFunc("/patients", r.doctorHandler.ListPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/search", r.doctorHandler.SearchPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id}", r.doctorHandler.GetPatient).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id}/records", r.recordHandler.UploadForPatient).Methods(http.MethodPost)
	doctor.HandleFunc("/dashboard", r.doctorHandler.Dashboard).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/pending", r.appointmentHandler.ListPending).Methods(http.MethodGet)
	doctor.HandleFunc("/chat/analyze/{id}", r.chatHandler.Analyze).Methods(http.MethodPost)

	// Shared routes (protected - any role)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/upcoming", r.appointmentHandler.ListUpcoming).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/assignments/{id}", r.careHandler.RemoveAssignment).Methods(http.MethodDelete)

	protected.HandleFunc("/chat", r.chatHandler.Chat).Methods(http.MethodPost)
	protected.HandleFunc("/chat/history", r.chatHandler.History).Methods(http.MethodGet)
	protected.HandleFunc("/chat/history", r.chatHandler.ClearHistory).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
