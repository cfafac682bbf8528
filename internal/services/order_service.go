package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"oliu-backend/internal/catalog"
	"oliu-backend/internal/config"
	"oliu-backend/internal/metrics"
	"oliu-backend/internal/models"
	"oliu-backend/internal/repositories"
)

// requiredField checks run in this exact order; the first failure is the one
// reported, so staff fix mistakes one at a time, top of the form first.
var requiredFields = []struct {
	label string
	value func(*models.OrderDraft) string
}{
	{"Tên TNV bán", func(d *models.OrderDraft) string { return d.Salesperson }},
	{"Tên khách", func(d *models.OrderDraft) string { return d.CustomerName }},
	{"Hình thức nhận hàng", func(d *models.OrderDraft) string { return d.DeliveryMethod }},
	{"Kho nhận hàng", func(d *models.OrderDraft) string { return d.Warehouse }},
	{"Chi tiết đơn hàng", func(d *models.OrderDraft) string { return d.Detail }},
}

// OrderService takes a submitted draft through validation and encoding to an
// appended sheet row, and serves the read-side lookups.
type OrderService struct {
	store   repositories.RowStore
	catalog *catalog.Catalog
	cfg     *config.Config
}

func NewOrderService(store repositories.RowStore, cat *catalog.Catalog, cfg *config.Config) *OrderService {
	return &OrderService{store: store, catalog: cat, cfg: cfg}
}

// Validate returns the first missing required field, or the first choice
// field holding a value outside its configured option set, or nil.
func (s *OrderService) Validate(draft *models.OrderDraft) error {
	for _, f := range requiredFields {
		if isBlank(f.value(draft)) {
			return &models.ValidationError{Field: f.label}
		}
	}

	if err := checkChoice("Hình thức nhận hàng", draft.DeliveryMethod, s.cfg.Order.DeliveryMethods); err != nil {
		return err
	}
	if err := checkChoice("Kho nhận hàng", draft.Warehouse, s.cfg.Order.Warehouses); err != nil {
		return err
	}
	// The time window may be left blank; a value must still be a real option.
	if !isBlank(draft.DeliveryWindow) {
		if err := checkChoice("Thời gian nhận hàng", draft.DeliveryWindow, s.cfg.Order.DeliveryWindows); err != nil {
			return err
		}
	}
	return nil
}

// checkChoice rejects a value outside the configured option set. A
// deployment that configures no options leaves the field unconstrained.
func checkChoice(label, value string, options []string) error {
	if len(options) == 0 {
		return nil
	}
	value = strings.TrimSpace(value)
	for _, opt := range options {
		if value == opt {
			return nil
		}
	}
	return &models.ValidationError{Field: label, Msg: fmt.Sprintf("%q is not a configured option", value)}
}

func isBlank(v string) bool {
	for _, r := range v {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// Encode builds the fixed-width row for a validated draft. Column 1 (the
// order number) stays blank; metadata lands in columns 2-10; each purchased
// product's quantity lands in its catalog column. Zero quantities are not
// written at all: the store treats a blank cell as "no update", not as an
// explicit zero.
func (s *OrderService) Encode(draft *models.OrderDraft) ([]string, error) {
	row := make([]string, s.cfg.Sheet.RowWidth)
	row[1] = draft.Salesperson
	row[2] = draft.CustomerName
	row[3] = draft.Detail
	row[4] = draft.Phone
	row[5] = draft.Address
	row[6] = draft.District
	row[7] = draft.DeliveryMethod
	row[8] = draft.Warehouse
	row[9] = draft.DeliveryWindow

	for name, qty := range draft.PurchasedItems() {
		col, err := s.catalog.ColumnOf(name)
		if err != nil {
			// A quantity we cannot place is data loss waiting to happen;
			// fail the whole submission instead of dropping the item.
			return nil, err
		}
		if col-1 >= len(row) {
			return nil, models.NewConfigurationError("product %q maps to column %d beyond row width %d", name, col, len(row))
		}
		row[col-1] = strconv.Itoa(qty)
	}
	return row, nil
}

// Submit validates, encodes and appends a draft, returning the assigned
// order number.
func (s *OrderService) Submit(ctx context.Context, draft *models.OrderDraft) (int, error) {
	if err := s.Validate(draft); err != nil {
		return 0, err
	}

	row, err := s.Encode(draft)
	if err != nil {
		return 0, err
	}

	if s.cfg.Sheet.IDPolicy == "increment" {
		next, err := s.nextOrderNumber(ctx)
		if err != nil {
			return 0, err
		}
		row[0] = strconv.Itoa(next)
	}

	id, err := s.store.Append(ctx, row)
	if err != nil {
		return 0, fmt.Errorf("failed to append order: %w", err)
	}

	metrics.OrdersSubmittedTotal.Inc()
	log.Printf("[Order] order %d recorded for %s", id, draft.CustomerName)
	return id, nil
}

// nextOrderNumber implements the "increment" id policy: previous row's
// number + 1, starting at 1 on an empty sheet. A previous row whose number
// cannot be parsed means the sheet's numbering column is broken, which is a
// configuration problem and not something to guess a default for.
func (s *OrderService) nextOrderNumber(ctx context.Context) (int, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet for order numbering: %w", err)
	}
	if len(records) == 0 {
		return 1, nil
	}

	last := records[len(records)-1]
	prev, err := strconv.Atoi(last.Get(s.cfg.Sheet.IDHeader))
	if err != nil {
		return 0, models.NewConfigurationError("previous order number %q is not numeric", last.Get(s.cfg.Sheet.IDHeader))
	}
	return prev + 1, nil
}

// Lookup returns the stored order with the given number.
func (s *OrderService) Lookup(ctx context.Context, id int) (models.StoredOrder, error) {
	return s.store.FindByID(ctx, id)
}

// ListOrders returns every stored order in sheet order.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.StoredOrder, error) {
	return s.store.ReadAll(ctx)
}

// SplitRecord separates a stored order into customer/order info and the
// purchased items (cataloged products with a positive quantity). Blank and
// placeholder cells are dropped.
func (s *OrderService) SplitRecord(record models.StoredOrder) (info map[string]string, items map[string]int) {
	info = make(map[string]string)
	items = make(map[string]int)
	for header := range record {
		if record.IsBlank(header) {
			continue
		}
		value := record.Get(header)
		if s.catalog.Has(header) {
			// Quantity cells sometimes come back as "3.0" depending on the
			// sheet's formatting.
			if qty, err := strconv.ParseFloat(value, 64); err == nil && qty > 0 {
				items[header] = int(qty)
			}
			continue
		}
		info[header] = value
	}
	return info, items
}
