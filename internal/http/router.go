package http

import (
	"oliu-backend/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	orderHandler *handlers.OrderHandler,
	reportHandler *handlers.ReportHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	monitoringHandler *handlers.MonitoringHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.HandleFunc("", orderHandler.SubmitOrder).Methods("POST")
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("/{id:[0-9]+}", orderHandler.GetOrder).Methods("GET")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.HandleFunc("/dashboard", reportHandler.GetDashboard).Methods("GET")
	reportsAPI.HandleFunc("/dashboard/pdf", reportHandler.GetDashboardPDF).Methods("GET")
	reportsAPI.HandleFunc("/orders/csv", reportHandler.GetOrdersCSV).Methods("GET")

	// Payments
	r.HandleFunc("/api/payments/qr", paymentHandler.CreateOrderQR).Methods("POST")

	// Monitoring
	r.HandleFunc("/api/monitoring/system", monitoringHandler.GetSystemStats).Methods("GET")

	// Health and metrics
	r.HandleFunc("/healthz", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/readyz", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
