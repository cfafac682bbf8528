package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"oliu-backend/internal/config"
	"oliu-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, worksheet string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(worksheet)
	if err != nil {
		t.Fatalf("NewSheet error: %v", err)
	}
	f.SetActiveSheet(idx)

	headers := []string{"STT", "TÊN TNV BÁN", "TÊN KHÁCH", "TIỀN BÁN HÀNG (2)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		if err := f.SetCellValue(worksheet, cell, h); err != nil {
			t.Fatalf("SetCellValue error: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	return path
}

func excelTestConfig(path string) *config.Config {
	cfg := &config.Config{}
	cfg.Sheet.ExcelPath = path
	cfg.Sheet.Worksheet = "Orders"
	cfg.Sheet.HeaderRow = 5
	cfg.Sheet.AnchorColumn = 2
	cfg.Sheet.RowWidth = 40
	cfg.Sheet.IDHeader = "STT"
	return cfg
}

func TestExcelAppendAndFindByID(t *testing.T) {
	ctx := context.Background()
	path := writeTestWorkbook(t, "Orders")
	s, err := NewExcelRowStore(excelTestConfig(path))
	if err != nil {
		t.Fatalf("NewExcelRowStore error: %v", err)
	}

	row := make([]string, 40)
	row[0] = "1"
	row[1] = "An"
	row[2] = "Khách 1"

	id, err := s.Append(ctx, row)
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}

	record, err := s.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got := record.Get("TÊN KHÁCH"); got != "Khách 1" {
		t.Fatalf("TÊN KHÁCH = %q, want Khách 1", got)
	}

	if _, err := s.FindByID(ctx, 2); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("FindByID(2) error = %v, want ErrNotFound", err)
	}
}

func TestExcelAppendLandsBelowLastOrder(t *testing.T) {
	ctx := context.Background()
	path := writeTestWorkbook(t, "Orders")
	s, err := NewExcelRowStore(excelTestConfig(path))
	if err != nil {
		t.Fatalf("NewExcelRowStore error: %v", err)
	}

	first := make([]string, 40)
	first[0] = "1"
	first[1] = "An"
	second := make([]string, 40)
	second[0] = "2"
	second[1] = "Bình"

	if _, err := s.Append(ctx, first); err != nil {
		t.Fatalf("first Append error: %v", err)
	}
	if _, err := s.Append(ctx, second); err != nil {
		t.Fatalf("second Append error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f.Close()
	// Headers at row 5, so the two orders occupy rows 6 and 7.
	got, err := f.GetCellValue("Orders", "B7")
	if err != nil {
		t.Fatalf("GetCellValue error: %v", err)
	}
	if got != "Bình" {
		t.Fatalf("B7 = %q, want Bình", got)
	}
}

func TestExcelHeaders(t *testing.T) {
	ctx := context.Background()
	path := writeTestWorkbook(t, "Orders")
	s, err := NewExcelRowStore(excelTestConfig(path))
	if err != nil {
		t.Fatalf("NewExcelRowStore error: %v", err)
	}

	headers, err := s.Headers(ctx)
	if err != nil {
		t.Fatalf("Headers error: %v", err)
	}
	if len(headers) < 4 || headers[3] != "TIỀN BÁN HÀNG (2)" {
		t.Fatalf("headers = %v, want TIỀN BÁN HÀNG (2) at column 4", headers)
	}
}

func TestExcelStoreRejectsMissingWorkbook(t *testing.T) {
	cfg := excelTestConfig(filepath.Join(t.TempDir(), "missing.xlsx"))
	if _, err := NewExcelRowStore(cfg); err == nil {
		t.Fatal("NewExcelRowStore must fail for a missing workbook")
	}
}
