package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"oliu-backend/internal/services"
	"oliu-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// GetDashboard handles GET /api/reports/dashboard
func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.BuildReport(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build report: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GetOrdersCSV handles GET /api/reports/orders/csv
func (h *ReportHandler) GetOrdersCSV(w http.ResponseWriter, r *http.Request) {
	csvData, err := h.Service.GenerateOrdersCSV(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate CSV: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("orders_%s.csv", timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(csvData)
}

// GetDashboardPDF handles GET /api/reports/dashboard/pdf
func (h *ReportHandler) GetDashboardPDF(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.BuildReport(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build report: %v", err), http.StatusInternalServerError)
		return
	}

	pdfData, err := h.Service.GenerateReportPDF(report)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("sales_report_%s.pdf", timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(pdfData)
}
