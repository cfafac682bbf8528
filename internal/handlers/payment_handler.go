package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"oliu-backend/internal/models"
	"oliu-backend/internal/services"
)

type PaymentHandler struct {
	Service *services.VietQRService
}

func NewPaymentHandler(service *services.VietQRService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// CreateOrderQR handles POST /api/payments/qr
func (h *PaymentHandler) CreateOrderQR(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentQRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrderID < 1 {
		http.Error(w, "order_id is required", http.StatusBadRequest)
		return
	}

	qr, err := h.Service.GenerateOrderQR(r.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]bool{"found": false})
			return
		}

		var provErr *models.ProviderError
		if errors.As(err, &provErr) {
			// Provider outages must be distinguishable from sheet errors.
			log.Printf("[Payment] provider error: %v", provErr)
			http.Error(w, "Payment QR provider unavailable", http.StatusBadGateway)
			return
		}

		var cfgErr *models.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Printf("[Payment] configuration error: %v", cfgErr)
			http.Error(w, cfgErr.Error(), http.StatusInternalServerError)
			return
		}

		log.Printf("[Payment] QR generation failed: %v", err)
		http.Error(w, "Failed to generate payment QR", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(qr)
}
