package catalog

import (
	"strings"

	"oliu-backend/internal/models"
)

// Product is one catalog entry: a display name, its unit price in VND and
// the 1-based sheet column its quantity is written to.
type Product struct {
	Name   string `mapstructure:"name" json:"name"`
	Price  int64  `mapstructure:"price" json:"price"`
	Column int    `mapstructure:"column" json:"column"`
}

// Catalog maps product names to prices and destination columns. It is
// immutable after construction; each deployment injects its own.
type Catalog struct {
	products []Product
	prices   map[string]int64
	columns  map[string]int
}

// New builds a Catalog from the configured product list. Name matching is
// exact after trimming; the sheet headers and the form labels must agree
// with the configured names.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		prices:   make(map[string]int64, len(products)),
		columns:  make(map[string]int, len(products)),
	}
	for _, p := range products {
		name := strings.TrimSpace(p.Name)
		c.prices[name] = p.Price
		c.columns[name] = p.Column
	}
	return c
}

// PriceOf returns the unit price for a product, or 0 for unknown names so
// uncataloged sheet columns simply contribute no revenue.
func (c *Catalog) PriceOf(name string) int64 {
	return c.prices[strings.TrimSpace(name)]
}

// ColumnOf returns the destination column for a product. An unknown name is
// a deployment misconfiguration and fails loudly.
func (c *Catalog) ColumnOf(name string) (int, error) {
	col, ok := c.columns[strings.TrimSpace(name)]
	if !ok {
		return 0, models.NewConfigurationError("product %q has no catalog column mapping", name)
	}
	return col, nil
}

// Has reports whether a name is a cataloged product.
func (c *Catalog) Has(name string) bool {
	_, ok := c.prices[strings.TrimSpace(name)]
	return ok
}

// Products returns the catalog entries in configured order.
func (c *Catalog) Products() []Product {
	return c.products
}
