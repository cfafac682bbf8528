package models

import "strings"

// OrderDraft is a submitted order form before encoding. It only exists for
// the duration of one submission; the encoded row is what persists.
type OrderDraft struct {
	Salesperson    string         `json:"salesperson"`
	CustomerName   string         `json:"customer_name"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	District       string         `json:"district"`
	Warehouse      string         `json:"warehouse"`
	DeliveryMethod string         `json:"delivery_method"`
	DeliveryWindow string         `json:"delivery_window"`
	Detail         string         `json:"detail"`
	Quantities     map[string]int `json:"quantities"`
}

// PurchasedItems returns the products with a positive quantity.
func (d *OrderDraft) PurchasedItems() map[string]int {
	items := make(map[string]int)
	for name, qty := range d.Quantities {
		if qty > 0 {
			items[name] = qty
		}
	}
	return items
}

// StoredOrder is the read-side view of one sheet row, keyed by the header
// row with duplicates dropped (first occurrence wins). Rebuilt on every read.
type StoredOrder map[string]string

// Get returns the trimmed cell value for a header, or "" if absent.
func (o StoredOrder) Get(header string) string {
	return strings.TrimSpace(o[header])
}

// IsBlank reports whether the cell for a header is empty or a null-ish
// placeholder carried over from the sheet.
func (o StoredOrder) IsBlank(header string) bool {
	v := o.Get(header)
	return v == "" || v == "None" || v == "nan"
}

type SubmitOrderResponse struct {
	OrderID int    `json:"order_id"`
	Message string `json:"message"`
}

type PaymentQRRequest struct {
	OrderID int `json:"order_id"`
}

type PaymentQRResponse struct {
	OrderID     int    `json:"order_id"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	QRImageURL  string `json:"qr_image_url"`
}
