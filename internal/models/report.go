package models

// Sales status classification against the configured target.
const (
	StatusTargetMet   = "target_met"
	StatusNearTarget  = "near_target"
	StatusBelowTarget = "below_target"
)

// SalesSummary compares total sales to the campaign target.
type SalesSummary struct {
	TotalSales int64   `json:"total_sales"`
	Target     int64   `json:"target"`
	Delta      int64   `json:"delta"`
	Ratio      float64 `json:"ratio"`
	Status     string  `json:"status"`
}

// LeaderboardEntry is one salesperson's total in the leaderboard.
type LeaderboardEntry struct {
	Salesperson string `json:"salesperson"`
	Total       int64  `json:"total"`
}

// ProductRevenue is one row of the per-product breakdown.
type ProductRevenue struct {
	Product   string `json:"product"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Revenue   int64  `json:"revenue"`
}

// Report is the full dashboard payload, recomputed from the sheet on every
// request.
type Report struct {
	Summary      SalesSummary       `json:"summary"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
	Products     []ProductRevenue   `json:"products"`
	TotalRevenue int64              `json:"total_revenue"`
	OrderCount   int                `json:"order_count"`
}
