package repositories

import (
	"context"
	"strconv"
	"strings"

	"oliu-backend/internal/models"
)

// RowStore is the single writer path to the shared order sheet. One order is
// one fixed-width row; the sheet is the system of record and everything read
// from it is reconstructed fresh, never cached.
//
// Append finds the first empty row by counting values in the anchor column,
// writes every non-blank cell of the encoded row (a failed cell write is
// logged and skipped, it never aborts the rest of the row) and returns the
// order number read back from column 1 of the written row.
// Headers returns the header row by true sheet position (index i is column
// i+1), newline-stripped and without deduplication, so position-based
// consumers like the product breakdown can address column ranges.
type RowStore interface {
	Append(ctx context.Context, row []string) (int, error)
	ReadAll(ctx context.Context) ([]models.StoredOrder, error)
	FindByID(ctx context.Context, id int) (models.StoredOrder, error)
	Headers(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// headerNames strips newlines from a raw header row.
func headerNames(row []string) []string {
	names := make([]string, len(row))
	for i, h := range row {
		names[i] = strings.ReplaceAll(h, "\n", "")
	}
	return names
}

// decodeGrid turns the raw sheet grid into header-keyed records. Headers sit
// at headerRow (1-based), data rows follow. Newlines are stripped from
// headers and duplicate headers are dropped keeping the first occurrence.
func decodeGrid(grid [][]string, headerRow int) []models.StoredOrder {
	if len(grid) < headerRow {
		return nil
	}

	type column struct {
		idx  int
		name string
	}
	seen := make(map[string]bool)
	var columns []column
	for i, h := range grid[headerRow-1] {
		name := strings.ReplaceAll(h, "\n", "")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, column{idx: i, name: name})
	}

	records := make([]models.StoredOrder, 0, len(grid)-headerRow)
	for _, row := range grid[headerRow:] {
		record := make(models.StoredOrder, len(columns))
		for _, c := range columns {
			if c.idx < len(row) {
				record[c.name] = row[c.idx]
			} else {
				record[c.name] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// findByID filters decoded records for the one whose id column holds the
// string form of id.
func findByID(records []models.StoredOrder, idHeader string, id int) (models.StoredOrder, error) {
	want := strconv.Itoa(id)
	for _, r := range records {
		if r.Get(idHeader) == want {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

// parseAssignedID parses the order number read back from column 1 after an
// append. A row the store could not number is a deployment problem (the
// sheet's numbering column is broken), not a silent zero.
func parseAssignedID(raw string, rowIdx int) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, models.NewConfigurationError("row %d has no readable order number (got %q)", rowIdx, raw)
	}
	return id, nil
}

// lastAnchoredRow returns the 1-based index of the last row whose anchor
// column (1-based) holds a value, or 0 for an empty grid. The next order
// lands on the row after it.
func lastAnchoredRow(grid [][]string, anchorCol int) int {
	last := 0
	for i, row := range grid {
		if anchorCol-1 < len(row) && strings.TrimSpace(row[anchorCol-1]) != "" {
			last = i + 1
		}
	}
	return last
}
