package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledger-backend/internal/handlers"
	"ledger-backend/internal/middleware"
	"ledger-backend/internal/models"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	paymentHandler *handlers.PaymentHandler,
	purchaseHandler *handlers.PurchaseHandler,
	labelHandler *handlers.LabelHandler,
	historyHandler *handlers.HistoryHandler,
	summaryHandler *handlers.SummaryHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger, middleware.PanicRecovery, middleware.MetricsMiddleware)

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/host", healthHandler.HostHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)
	admin := authMiddleware.RequireAdmin

	api.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Clients
	api.HandleFunc("/clients", clientHandler.ListClients).Methods("GET")
	api.Handle("/clients", admin(http.HandlerFunc(clientHandler.CreateClient))).Methods("POST")
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.UpdateClient).Methods("PUT")
	api.Handle("/clients/{id:[0-9]+}", admin(http.HandlerFunc(clientHandler.DeleteClient))).Methods("DELETE")
	api.HandleFunc("/clients/{id:[0-9]+}/report", reportHandler.ClientReport).Methods("GET")

	// Payments
	api.HandleFunc("/clients/{id:[0-9]+}/payments", paymentHandler.ListByClient).Methods("GET")
	api.HandleFunc("/clients/{id:[0-9]+}/payments", paymentHandler.CreatePayment).Methods("POST")
	api.HandleFunc("/payments/{id:[0-9]+}", paymentHandler.UpdatePayment).Methods("PUT")
	api.HandleFunc("/payments/{id:[0-9]+}", paymentHandler.DeletePayment).Methods("DELETE")

	// Purchases
	api.HandleFunc("/clients/{id:[0-9]+}/purchases", purchaseHandler.ListByClient).Methods("GET")
	api.HandleFunc("/clients/{id:[0-9]+}/purchases", purchaseHandler.CreatePurchase).Methods("POST")
	api.HandleFunc("/purchases/{id:[0-9]+}", purchaseHandler.UpdatePurchase).Methods("PUT")
	api.HandleFunc("/purchases/{id:[0-9]+}", purchaseHandler.DeletePurchase).Methods("DELETE")

	// Reference lists
	api.HandleFunc("/labels/types", labelHandler.List(models.LabelType)).Methods("GET")
	api.HandleFunc("/labels/types", labelHandler.Create(models.LabelType)).Methods("POST")
	api.HandleFunc("/labels/classes", labelHandler.List(models.LabelClass)).Methods("GET")
	api.HandleFunc("/labels/classes", labelHandler.Create(models.LabelClass)).Methods("POST")

	// History and dashboard
	api.HandleFunc("/history/payments", historyHandler.Payments).Methods("GET")
	api.HandleFunc("/history/purchases", historyHandler.Purchases).Methods("GET")
	api.HandleFunc("/summary", summaryHandler.Global).Methods("GET")

	return r
}
