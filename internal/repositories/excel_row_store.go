package repositories

import (
	"context"
	"fmt"
	"log"
	"sync"

	"oliu-backend/internal/config"
	"oliu-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExcelRowStore implements RowStore on a local .xlsx workbook with the same
// layout as the shared sheet. Used by deployments that keep the order book
// offline and by ops tooling working from a downloaded copy.
type ExcelRowStore struct {
	mu           sync.Mutex
	path         string
	worksheet    string
	headerRow    int
	anchorColumn int
	rowWidth     int
	idHeader     string
}

func NewExcelRowStore(cfg *config.Config) (*ExcelRowStore, error) {
	if cfg.Sheet.ExcelPath == "" {
		return nil, models.NewConfigurationError("excel backend selected but no excel_path configured")
	}
	s := &ExcelRowStore{
		path:         cfg.Sheet.ExcelPath,
		worksheet:    cfg.Sheet.Worksheet,
		headerRow:    cfg.Sheet.HeaderRow,
		anchorColumn: cfg.Sheet.AnchorColumn,
		rowWidth:     cfg.Sheet.RowWidth,
		idHeader:     cfg.Sheet.IDHeader,
	}
	// Fail at startup, not on the first order, if the workbook is unusable.
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	f.Close()
	return s, nil
}

func (s *ExcelRowStore) Append(ctx context.Context, row []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	grid, err := f.GetRows(s.worksheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read worksheet: %w", err)
	}
	target := lastAnchoredRow(grid, s.anchorColumn) + 1

	for i, value := range row {
		if value == "" {
			continue
		}
		if i >= s.rowWidth {
			log.Printf("[RowStore] cell write failed at row %d col %d: column out of range", target, i+1)
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, target)
		if err != nil {
			log.Printf("[RowStore] cell write failed at row %d col %d: %v", target, i+1, err)
			continue
		}
		if err := f.SetCellValue(s.worksheet, cell, value); err != nil {
			log.Printf("[RowStore] cell write failed at row %d col %d: %v", target, i+1, err)
			continue
		}
	}

	if err := f.Save(); err != nil {
		return 0, fmt.Errorf("failed to save workbook: %w", err)
	}

	idCell, _ := excelize.CoordinatesToCellName(1, target)
	raw, err := f.GetCellValue(s.worksheet, idCell)
	if err != nil {
		return 0, fmt.Errorf("failed to read back order number: %w", err)
	}
	return parseAssignedID(raw, target)
}

func (s *ExcelRowStore) ReadAll(ctx context.Context) ([]models.StoredOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	grid, err := f.GetRows(s.worksheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	return decodeGrid(grid, s.headerRow), nil
}

func (s *ExcelRowStore) FindByID(ctx context.Context, id int) (models.StoredOrder, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(records, s.idHeader, id)
}

func (s *ExcelRowStore) Headers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	grid, err := f.GetRows(s.worksheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(grid) < s.headerRow {
		return nil, nil
	}
	return headerNames(grid[s.headerRow-1]), nil
}

func (s *ExcelRowStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return err
	}
	return f.Close()
}
