package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"oliu-backend/internal/config"
	"oliu-backend/internal/handlers"
	"oliu-backend/internal/health"
	h "oliu-backend/internal/http"
	"oliu-backend/internal/middleware"
	"oliu-backend/internal/repositories"
	"oliu-backend/internal/services"
)

// newRowStore builds the row store backend the deployment configured:
// the shared Google Sheet in production, a local workbook for offline
// deployments, or the in-memory grid for demos.
func newRowStore(ctx context.Context, cfg *config.Config) (repositories.RowStore, error) {
	switch cfg.Sheet.Backend {
	case "sheets":
		return repositories.NewSheetsRowStore(ctx, cfg)
	case "excel":
		return repositories.NewExcelRowStore(cfg)
	case "memory":
		headers := make([]string, cfg.Sheet.RowWidth)
		headers[0] = cfg.Sheet.IDHeader
		for _, p := range cfg.Products {
			if p.Column-1 < len(headers) {
				headers[p.Column-1] = p.Name
			}
		}
		store := repositories.NewMemoryRowStore(headers, cfg.Sheet.HeaderRow, cfg.Sheet.AnchorColumn, cfg.Sheet.RowWidth, cfg.Sheet.IDHeader)
		store.AutoAssignIDs = cfg.Sheet.IDPolicy == "sheet"
		return store, nil
	default:
		return nil, fmt.Errorf("unknown sheet backend %q", cfg.Sheet.Backend)
	}
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store, err := newRowStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize row store: %v", err)
	}
	log.Printf("[Server] Row store backend: %s", cfg.Sheet.Backend)

	cat := cfg.Catalog()
	log.Printf("[Server] Catalog loaded with %d products", len(cat.Products()))

	// Initialize services
	orderService := services.NewOrderService(store, cat, cfg)
	reportService := services.NewReportService(store, cat, cfg)
	vietQRService := services.NewVietQRService(store, cfg)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	reportHandler := handlers.NewReportHandler(reportService)
	paymentHandler := handlers.NewPaymentHandler(vietQRService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(store))
	monitoringHandler := handlers.NewMonitoringHandler()

	router := h.NewRouter(orderHandler, reportHandler, paymentHandler, healthHandler, monitoringHandler)

	// Wrap with panic recovery, metrics and CORS middleware
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
