package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"oliu-backend/internal/catalog"
	"oliu-backend/internal/config"
	"oliu-backend/internal/models"
	"oliu-backend/internal/repositories"
	"oliu-backend/internal/textutil"
	"oliu-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"
)

var (
	ratioOne  = decimal.NewFromInt(1)
	ratioNear = decimal.RequireFromString("0.8")
)

// ReportService recomputes the dashboard from the full sheet on every call.
type ReportService struct {
	store   repositories.RowStore
	catalog *catalog.Catalog
	cfg     *config.Config
}

func NewReportService(store repositories.RowStore, cat *catalog.Catalog, cfg *config.Config) *ReportService {
	return &ReportService{store: store, catalog: cat, cfg: cfg}
}

// BuildReport reads all stored orders and computes the three dashboard
// views: sales vs target, the salesperson leaderboard and the per-product
// revenue breakdown.
func (s *ReportService) BuildReport(ctx context.Context) (*models.Report, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	headers, err := s.store.Headers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	report := &models.Report{
		Summary:     s.salesSummary(records),
		Leaderboard: s.leaderboard(records),
		OrderCount:  len(records),
	}
	report.Products, report.TotalRevenue = s.productBreakdown(records, headers)
	return report, nil
}

func (s *ReportService) salesSummary(records []models.StoredOrder) models.SalesSummary {
	var total int64
	for _, r := range records {
		total += textutil.ParseMoney(r.Get(s.cfg.Report.MoneyHeader))
	}

	target := s.cfg.Report.TargetSales
	ratio := decimal.NewFromInt(total).Div(decimal.NewFromInt(target))

	status := models.StatusBelowTarget
	switch {
	case ratio.Cmp(ratioOne) >= 0:
		status = models.StatusTargetMet
	case ratio.Cmp(ratioNear) >= 0:
		status = models.StatusNearTarget
	}

	ratioF, _ := ratio.Float64()
	return models.SalesSummary{
		TotalSales: total,
		Target:     target,
		Delta:      total - target,
		Ratio:      ratioF,
		Status:     status,
	}
}

func (s *ReportService) leaderboard(records []models.StoredOrder) []models.LeaderboardEntry {
	totals := make(map[string]int64)
	for _, r := range records {
		name := r.Get(s.cfg.Report.SalespersonHeader)
		if name == "" {
			name = s.cfg.Report.UnknownSalesperson
		}
		totals[name] += textutil.ParseMoney(r.Get(s.cfg.Report.MoneyHeader))
	}

	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, models.LeaderboardEntry{Salesperson: name, Total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Salesperson < entries[j].Salesperson
	})

	if topN := s.cfg.Report.TopN; topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// productBreakdown sums the configured contiguous range of product columns,
// joining quantities with catalog prices. Non-numeric cells count as 0 and
// products nobody bought are excluded.
func (s *ReportService) productBreakdown(records []models.StoredOrder, headers []string) ([]models.ProductRevenue, int64) {
	start, end := s.cfg.Report.ProductColStart, s.cfg.Report.ProductColEnd
	var products []models.ProductRevenue
	var grandTotal int64

	for col := start; col <= end; col++ {
		if col-1 >= len(headers) {
			break
		}
		name := headers[col-1]
		if name == "" {
			continue
		}

		var qty int64
		for _, r := range records {
			if v, err := strconv.ParseFloat(r.Get(name), 64); err == nil {
				qty += int64(v)
			}
		}
		if qty == 0 {
			continue
		}

		price := s.catalog.PriceOf(name)
		revenue := qty * price
		grandTotal += revenue
		products = append(products, models.ProductRevenue{
			Product:   name,
			Quantity:  qty,
			UnitPrice: price,
			Revenue:   revenue,
		})
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].Product < products[j].Product
	})
	return products, grandTotal
}

// GenerateOrdersCSV exports every stored order as CSV in sheet column order.
func (s *ReportService) GenerateOrdersCSV(ctx context.Context) ([]byte, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	headers, err := s.store.Headers(ctx)
	if err != nil {
		return nil, err
	}

	// Keep only the first occurrence of each header, matching the record
	// reconstruction.
	seen := make(map[string]bool)
	var cols []string
	for _, h := range headers {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		cols = append(cols, h)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cols); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := make([]string, len(cols))
		for i, h := range cols {
			row[i] = r[h]
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateReportPDF renders the dashboard as a one-page PDF summary.
// Diacritics are stripped because the built-in fonts cannot render them.
func (s *ReportService) GenerateReportPDF(report *models.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "Sales Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DateTimeLayout)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "Target")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(190, 6, fmt.Sprintf("Total sales: %s VND / %s VND (%.1f%%)",
		textutil.FormatMoney(report.Summary.TotalSales),
		textutil.FormatMoney(report.Summary.Target),
		report.Summary.Ratio*100))
	pdf.Ln(6)
	pdf.Cell(190, 6, fmt.Sprintf("Delta: %s VND (%s)",
		textutil.FormatMoney(report.Summary.Delta), report.Summary.Status))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "Top sellers")
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(95, 7, "Salesperson", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Sales (VND)", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	limit := len(report.Leaderboard)
	if limit > 10 {
		limit = 10
	}
	for _, e := range report.Leaderboard[:limit] {
		pdf.CellFormat(95, 6, textutil.StripDiacritics(e.Salesperson), "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, textutil.FormatMoney(e.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "Products")
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Unit price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Revenue", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, p := range report.Products {
		pdf.CellFormat(80, 6, textutil.StripDiacritics(p.Product), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, strconv.FormatInt(p.Quantity, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, textutil.FormatMoney(p.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, textutil.FormatMoney(p.Revenue), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 7, "Total revenue", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, textutil.FormatMoney(report.TotalRevenue), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
