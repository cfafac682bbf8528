package health

import (
	"context"
	"time"

	"oliu-backend/internal/repositories"
)

type HealthChecker struct {
	store repositories.RowStore
}

type HealthStatus struct {
	Status   string      `json:"status"`
	RowStore StoreHealth `json:"row_store"`
}

type StoreHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(store repositories.RowStore) *HealthChecker {
	return &HealthChecker{store: store}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	storeHealth := h.checkStore()

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		RowStore: storeHealth,
	}
}

func (h *HealthChecker) checkStore() StoreHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StoreHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return StoreHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
