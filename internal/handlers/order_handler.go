package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"oliu-backend/internal/models"
	"oliu-backend/internal/services"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	Service *services.OrderService
}

func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{Service: service}
}

// SubmitOrder handles POST /api/orders
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var draft models.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.Service.Submit(r.Context(), &draft)
	if err != nil {
		var valErr *models.ValidationError
		if errors.As(err, &valErr) {
			// Expected outcome: the form reports one rejected field at a
			// time. Not a failure, so not logged as one.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"error": valErr.Error(),
				"field": valErr.Field,
			})
			return
		}

		var cfgErr *models.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Printf("[Order] configuration error: %v", cfgErr)
			http.Error(w, cfgErr.Error(), http.StatusInternalServerError)
			return
		}

		log.Printf("[Order] submit failed: %v", err)
		http.Error(w, "Failed to record order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.SubmitOrderResponse{
		OrderID: id,
		Message: "order recorded",
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil || id < 1 {
		http.Error(w, "Invalid order number", http.StatusBadRequest)
		return
	}

	record, err := h.Service.Lookup(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Expected outcome, reported as an empty result.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]bool{"found": false})
			return
		}
		log.Printf("[Order] lookup failed: %v", err)
		http.Error(w, "Failed to look up order", http.StatusInternalServerError)
		return
	}

	info, items := h.Service.SplitRecord(record)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"found": true,
		"info":  info,
		"items": items,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListOrders(r.Context())
	if err != nil {
		log.Printf("[Order] list failed: %v", err)
		http.Error(w, "Failed to read orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
