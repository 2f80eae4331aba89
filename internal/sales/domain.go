package sales

import "fmt"

// Status is the lifecycle state of a sale. The set is closed: anything
// outside it is rejected at the boundary by ParseStatus / Validate.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusRefunded  Status = "refunded"
)

// ParseStatus converts a raw string into a Status, or returns
// ErrInvalidStatus for anything outside the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusSucceeded, StatusRefunded:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// SaleItem is a single line on a sale receipt. Order of items within a
// sale reflects display/receipt order.
type SaleItem struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	PriceInCents int64  `json:"priceInCents"`
	IsOrderBump  bool   `json:"isOrderBump"`
}

// Offer is the inline weak reference to the offer a sale was generated
// against. A sale whose Offer pointer is nil references an offer that was
// deleted after the sale happened; that is an expected state, not a
// data-integrity failure.
type Offer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
	IsUpsell *bool  `json:"isUpsell,omitempty"`
}

// Sale is the canonical record of a transaction. It is created once by the
// external payment processor and is immutable afterwards, except for Status
// (lifecycle transitions) and Offer (which becomes nil when the referenced
// offer is deleted).
//
// IsUpsell and Country are pointers so that "absent" stays distinguishable
// from the zero value; callers must handle nil explicitly.
type Sale struct {
	ID                 string     `json:"id"`
	CustomerName       string     `json:"customerName"`
	CustomerEmail      string     `json:"customerEmail"`
	TotalAmountInCents int64      `json:"totalAmountInCents"`
	Currency           string     `json:"currency"`
	Status             Status     `json:"status"`
	CreatedAt          string     `json:"createdAt"`
	IsUpsell           *bool      `json:"isUpsell,omitempty"`
	Country            *string    `json:"country,omitempty"`
	Offer              *Offer     `json:"offer"`
	Items              []SaleItem `json:"items"`
}
