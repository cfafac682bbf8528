package services

import (
	"context"
	"errors"
	"testing"

	"oliu-backend/internal/catalog"
	"oliu-backend/internal/config"
	"oliu-backend/internal/models"
	"oliu-backend/internal/repositories"
)

// stubStore serves canned records and headers; Append is not supported and
// lookups can be overridden per test via findByID.
type stubStore struct {
	records  []models.StoredOrder
	headers  []string
	findByID func(id int) (models.StoredOrder, error)
}

func (s *stubStore) Append(ctx context.Context, row []string) (int, error) {
	return 0, errors.New("append not supported")
}

func (s *stubStore) ReadAll(ctx context.Context) ([]models.StoredOrder, error) {
	return s.records, nil
}

func (s *stubStore) FindByID(ctx context.Context, id int) (models.StoredOrder, error) {
	if s.findByID != nil {
		return s.findByID(id)
	}
	return nil, models.ErrNotFound
}

func (s *stubStore) Headers(ctx context.Context) ([]string, error) {
	return s.headers, nil
}

func (s *stubStore) Ping(ctx context.Context) error { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Sheet.HeaderRow = 5
	cfg.Sheet.AnchorColumn = 2
	cfg.Sheet.RowWidth = 20
	cfg.Sheet.IDPolicy = "sheet"
	cfg.Sheet.IDHeader = "STT"
	cfg.Report.MoneyHeader = "TIỀN BÁN HÀNG (2)"
	cfg.Report.TotalDueHeader = "TỔNG TIỀNCẦN TRẢ(1)+(2)"
	cfg.Report.SalespersonHeader = "TÊN TNV BÁN"
	cfg.Report.UnknownSalesperson = "Chưa xác định"
	cfg.Report.TargetSales = 200_000_000
	cfg.Report.TopN = 50
	cfg.Report.ProductColStart = 16
	cfg.Report.ProductColEnd = 18
	cfg.Products = []catalog.Product{
		{Name: "MÍT 500G", Price: 115000, Column: 16},
		{Name: "THẬP CẨM 500G", Price: 150000, Column: 17},
		{Name: "CHUỐI 500G", Price: 90000, Column: 18},
	}
	return cfg
}

func serviceHeaders(cfg *config.Config) []string {
	headers := make([]string, cfg.Sheet.RowWidth)
	headers[0] = cfg.Sheet.IDHeader
	headers[1] = cfg.Report.SalespersonHeader
	headers[2] = "TÊN KHÁCH"
	headers[10] = cfg.Report.MoneyHeader
	headers[11] = cfg.Report.TotalDueHeader
	for _, p := range cfg.Products {
		headers[p.Column-1] = p.Name
	}
	return headers
}

func newOrderService(cfg *config.Config) (*OrderService, *repositories.MemoryRowStore) {
	store := repositories.NewMemoryRowStore(
		serviceHeaders(cfg), cfg.Sheet.HeaderRow, cfg.Sheet.AnchorColumn,
		cfg.Sheet.RowWidth, cfg.Sheet.IDHeader)
	store.AutoAssignIDs = cfg.Sheet.IDPolicy == "sheet"
	return NewOrderService(store, cfg.Catalog(), cfg), store
}

func validDraft() *models.OrderDraft {
	return &models.OrderDraft{
		Salesperson:    "Nguyễn Văn An",
		CustomerName:   "Chị Hoa",
		Phone:          "0901234567",
		Warehouse:      "Kho Quận 1",
		DeliveryMethod: "Giao tận nơi",
		Detail:         "3 mít, 5 chuối",
		Quantities:     map[string]int{"MÍT 500G": 3, "CHUỐI 500G": 5},
	}
}

func TestValidateReportsFirstMissingField(t *testing.T) {
	cfg := testConfig()
	svc, _ := newOrderService(cfg)

	cases := []struct {
		name   string
		mutate func(*models.OrderDraft)
		field  string
	}{
		{"missing salesperson", func(d *models.OrderDraft) { d.Salesperson = "" }, "Tên TNV bán"},
		{"whitespace customer", func(d *models.OrderDraft) { d.CustomerName = "  \t" }, "Tên khách"},
		{"missing delivery method", func(d *models.OrderDraft) { d.DeliveryMethod = "" }, "Hình thức nhận hàng"},
		{"missing warehouse", func(d *models.OrderDraft) { d.Warehouse = "" }, "Kho nhận hàng"},
		{"missing detail", func(d *models.OrderDraft) { d.Detail = "" }, "Chi tiết đơn hàng"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(draft)
			err := svc.Validate(draft)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate error = %v, want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}

	t.Run("multiple missing reports the first", func(t *testing.T) {
		draft := validDraft()
		draft.CustomerName = ""
		draft.Warehouse = ""
		err := svc.Validate(draft)
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate error = %v, want ValidationError", err)
		}
		if verr.Field != "Tên khách" {
			t.Fatalf("field = %q, want Tên khách", verr.Field)
		}
	})

	t.Run("complete draft passes", func(t *testing.T) {
		if err := svc.Validate(validDraft()); err != nil {
			t.Fatalf("Validate error = %v, want nil", err)
		}
	})
}

func TestValidateRejectsUnconfiguredChoices(t *testing.T) {
	cfg := testConfig()
	cfg.Order.Warehouses = []string{"Kho Quận 1", "Kho Thủ Đức"}
	cfg.Order.DeliveryMethods = []string{"Giao tận nơi", "Nhận tại kho"}
	cfg.Order.DeliveryWindows = []string{"Sáng", "Chiều"}
	svc, store := newOrderService(cfg)

	cases := []struct {
		name   string
		mutate func(*models.OrderDraft)
		field  string
	}{
		{"bogus warehouse", func(d *models.OrderDraft) { d.Warehouse = "KHO KHÔNG TỒN TẠI" }, "Kho nhận hàng"},
		{"bogus delivery method", func(d *models.OrderDraft) { d.DeliveryMethod = "Thả dù" }, "Hình thức nhận hàng"},
		{"bogus delivery window", func(d *models.OrderDraft) { d.DeliveryWindow = "Nửa đêm" }, "Thời gian nhận hàng"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(draft)
			err := svc.Validate(draft)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate error = %v, want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}

	t.Run("blank window allowed", func(t *testing.T) {
		draft := validDraft()
		draft.DeliveryWindow = ""
		if err := svc.Validate(draft); err != nil {
			t.Fatalf("Validate error = %v, want nil", err)
		}
	})

	t.Run("configured choices pass", func(t *testing.T) {
		draft := validDraft()
		draft.DeliveryWindow = "Chiều"
		if err := svc.Validate(draft); err != nil {
			t.Fatalf("Validate error = %v, want nil", err)
		}
	})

	t.Run("rejected draft is not appended", func(t *testing.T) {
		ctx := context.Background()
		draft := validDraft()
		draft.Warehouse = "KHO KHÔNG TỒN TẠI"
		if _, err := svc.Submit(ctx, draft); err == nil {
			t.Fatal("Submit must reject an unconfigured warehouse")
		}
		records, err := store.ReadAll(ctx)
		if err != nil {
			t.Fatalf("ReadAll error: %v", err)
		}
		if len(records) != 0 {
			t.Fatalf("rejected draft must not be appended, got %d records", len(records))
		}
	})
}

func TestValidateUnconfiguredSetsAreUnconstrained(t *testing.T) {
	// A deployment that configures no option sets accepts any value.
	svc, _ := newOrderService(testConfig())
	draft := validDraft()
	draft.Warehouse = "Kho tạm"
	draft.DeliveryMethod = "Tự đến lấy"
	if err := svc.Validate(draft); err != nil {
		t.Fatalf("Validate error = %v, want nil", err)
	}
}

func TestEncodePlacesQuantitiesInCatalogColumns(t *testing.T) {
	cfg := testConfig()
	svc, _ := newOrderService(cfg)

	row, err := svc.Encode(validDraft())
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(row) != cfg.Sheet.RowWidth {
		t.Fatalf("row width = %d, want %d", len(row), cfg.Sheet.RowWidth)
	}
	if row[0] != "" {
		t.Fatalf("order number column must stay blank, got %q", row[0])
	}
	if row[1] != "Nguyễn Văn An" || row[2] != "Chị Hoa" {
		t.Fatalf("metadata columns = %q, %q", row[1], row[2])
	}
	if row[15] != "3" {
		t.Fatalf("MÍT 500G column = %q, want 3", row[15])
	}
	if row[16] != "" {
		t.Fatalf("unpurchased product column = %q, want blank", row[16])
	}
	if row[17] != "5" {
		t.Fatalf("CHUỐI 500G column = %q, want 5", row[17])
	}
}

func TestEncodeRejectsUnknownProduct(t *testing.T) {
	cfg := testConfig()
	svc, _ := newOrderService(cfg)

	draft := validDraft()
	draft.Quantities["BƠ SÁP 1KG"] = 2
	_, err := svc.Encode(draft)
	var cerr *models.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Encode error = %v, want ConfigurationError", err)
	}
}

func TestSubmitAssignsSequentialIDs(t *testing.T) {
	for _, policy := range []string{"sheet", "increment"} {
		t.Run(policy, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig()
			cfg.Sheet.IDPolicy = policy
			svc, _ := newOrderService(cfg)

			id, err := svc.Submit(ctx, validDraft())
			if err != nil {
				t.Fatalf("Submit error: %v", err)
			}
			if id != 1 {
				t.Fatalf("first id = %d, want 1", id)
			}

			id, err = svc.Submit(ctx, validDraft())
			if err != nil {
				t.Fatalf("Submit error: %v", err)
			}
			if id != 2 {
				t.Fatalf("second id = %d, want 2", id)
			}
		})
	}
}

func TestSubmitRejectsInvalidDraft(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrderService(testConfig())

	draft := validDraft()
	draft.Salesperson = ""
	if _, err := svc.Submit(ctx, draft); err == nil {
		t.Fatal("Submit must fail validation")
	}

	records, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected draft must not be appended, got %d records", len(records))
	}
}

func TestNextOrderNumberRejectsNonNumericPrevious(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Sheet.IDPolicy = "increment"
	store := &stubStore{
		records: []models.StoredOrder{{"STT": "abc", "TÊN TNV BÁN": "An"}},
	}
	svc := NewOrderService(store, cfg.Catalog(), cfg)

	_, err := svc.Submit(ctx, validDraft())
	var cerr *models.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Submit error = %v, want ConfigurationError", err)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrderService(testConfig())

	id, err := svc.Submit(ctx, validDraft())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	record, err := svc.Lookup(ctx, id)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}

	info, items := svc.SplitRecord(record)
	if items["MÍT 500G"] != 3 || items["CHUỐI 500G"] != 5 {
		t.Fatalf("items = %v", items)
	}
	if _, ok := items["THẬP CẨM 500G"]; ok {
		t.Fatal("unpurchased product must not appear in items")
	}
	if info["TÊN KHÁCH"] != "Chị Hoa" {
		t.Fatalf("info = %v", info)
	}
	if _, ok := info["MÍT 500G"]; ok {
		t.Fatal("catalog columns must not leak into info")
	}

	if _, err := svc.Lookup(ctx, 99); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Lookup(99) error = %v, want ErrNotFound", err)
	}
}

func TestSplitRecordParsesFloatQuantities(t *testing.T) {
	svc, _ := newOrderService(testConfig())

	record := models.StoredOrder{
		"STT":       "7",
		"TÊN KHÁCH": "Anh Minh",
		"MÍT 500G":  "3.0",
		"GHI CHÚ":   "None",
	}
	info, items := svc.SplitRecord(record)
	if items["MÍT 500G"] != 3 {
		t.Fatalf("float quantity parsed as %d, want 3", items["MÍT 500G"])
	}
	if _, ok := info["GHI CHÚ"]; ok {
		t.Fatal("placeholder cells must be dropped")
	}
}
