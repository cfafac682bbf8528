package catalog

import (
	"errors"
	"testing"

	"oliu-backend/internal/models"
)

func testCatalog() *Catalog {
	return New([]Product{
		{Name: "MÍT 500G", Price: 115000, Column: 16},
		{Name: "THẬP CẨM 500G", Price: 80000, Column: 17},
		{Name: "MẬT ONG 1 LÍT", Price: 215000, Column: 32},
	})
}

func TestPriceOf(t *testing.T) {
	c := testCatalog()

	if got := c.PriceOf("MÍT 500G"); got != 115000 {
		t.Fatalf("PriceOf(MÍT 500G) = %d, want 115000", got)
	}
	if got := c.PriceOf("  MẬT ONG 1 LÍT  "); got != 215000 {
		t.Fatalf("PriceOf with padding = %d, want 215000", got)
	}
	if got := c.PriceOf("KHÔNG TỒN TẠI"); got != 0 {
		t.Fatalf("PriceOf(unknown) = %d, want 0", got)
	}
}

func TestColumnOf(t *testing.T) {
	c := testCatalog()

	col, err := c.ColumnOf("THẬP CẨM 500G")
	if err != nil {
		t.Fatalf("ColumnOf error: %v", err)
	}
	if col != 17 {
		t.Fatalf("ColumnOf = %d, want 17", col)
	}

	_, err = c.ColumnOf("KHÔNG TỒN TẠI")
	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("ColumnOf(unknown) error = %v, want ConfigurationError", err)
	}
}
