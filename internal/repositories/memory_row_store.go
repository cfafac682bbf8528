package repositories

import (
	"context"
	"log"
	"strconv"
	"sync"

	"oliu-backend/internal/models"
)

// MemoryRowStore implements RowStore over an in-memory grid with the same
// row/column semantics as the shared sheet. It backs the "memory" deployment
// backend and the test suites.
//
// Appends are serialized with a mutex; the production sheet backend cannot
// offer that, see SheetsRowStore.
type MemoryRowStore struct {
	mu           sync.Mutex
	grid         [][]string
	width        int
	headerRow    int
	anchorColumn int
	idHeader     string

	// AutoAssignIDs emulates the production sheet's numbering column, which
	// fills column 1 with the running order count. Leave false when the
	// caller pre-computes order numbers (the "increment" id policy).
	AutoAssignIDs bool
}

// NewMemoryRowStore builds an empty store with the given header row placed
// at headerRow (1-based), matching the sheet layout where decorative rows
// precede the headers.
func NewMemoryRowStore(headers []string, headerRow, anchorColumn, width int, idHeader string) *MemoryRowStore {
	grid := make([][]string, headerRow)
	for i := range grid {
		grid[i] = make([]string, width)
	}
	copy(grid[headerRow-1], headers)
	return &MemoryRowStore{
		grid:         grid,
		width:        width,
		headerRow:    headerRow,
		anchorColumn: anchorColumn,
		idHeader:     idHeader,
	}
}

func (s *MemoryRowStore) Append(ctx context.Context, row []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := lastAnchoredRow(s.grid, s.anchorColumn) + 1
	for target > len(s.grid) {
		s.grid = append(s.grid, make([]string, s.width))
	}

	for i, value := range row {
		if value == "" {
			continue
		}
		if i >= s.width {
			// Same tolerance as the sheet backend: a single out-of-range
			// cell must not lose the rest of the order.
			log.Printf("[RowStore] cell write failed at row %d col %d: column out of range", target, i+1)
			continue
		}
		s.grid[target-1][i] = value
	}

	if s.AutoAssignIDs && s.grid[target-1][0] == "" {
		s.grid[target-1][0] = strconv.Itoa(target - s.headerRow)
	}

	return parseAssignedID(s.grid[target-1][0], target)
}

func (s *MemoryRowStore) ReadAll(ctx context.Context) ([]models.StoredOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeGrid(s.grid, s.headerRow), nil
}

func (s *MemoryRowStore) FindByID(ctx context.Context, id int) (models.StoredOrder, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(records, s.idHeader, id)
}

func (s *MemoryRowStore) Headers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return headerNames(s.grid[s.headerRow-1]), nil
}

func (s *MemoryRowStore) Ping(ctx context.Context) error {
	return nil
}
