package sales

import (
	"fmt"
	"time"
)

// ValidationError reports the first field of a candidate record that failed
// the boundary check, with a human-readable reason.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid sale: %s: %s", e.Field, e.Reason)
}

// Validate is the boundary check for records arriving from the persistence
// layer. It verifies required fields, membership of Status in the closed
// set, non-negative monetary values, and well-formedness of every item.
//
// Validation stops at the first violation; the returned error is always a
// *ValidationError naming the offending field. A nil Offer passes: it is
// the designed deleted-offer state, not a failure. Currency may be empty;
// display code resolves it through ResolveDisplayCurrency.
func Validate(s *Sale) error {
	if s == nil {
		return &ValidationError{Field: "sale", Reason: "record is nil"}
	}
	if s.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if s.CustomerName == "" {
		return &ValidationError{Field: "customerName", Reason: "must not be empty"}
	}
	if s.CustomerEmail == "" {
		return &ValidationError{Field: "customerEmail", Reason: "must not be empty"}
	}
	if s.TotalAmountInCents < 0 {
		return &ValidationError{Field: "totalAmountInCents", Reason: "must not be negative"}
	}
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not one of pending, succeeded, refunded", s.Status)}
	}
	if s.CreatedAt == "" {
		return &ValidationError{Field: "createdAt", Reason: "must not be empty"}
	}
	if _, err := time.Parse(time.RFC3339, s.CreatedAt); err != nil {
		return &ValidationError{Field: "createdAt", Reason: "must be an ISO-8601 timestamp"}
	}
	if s.Country != nil && len(*s.Country) != 2 {
		return &ValidationError{Field: "country", Reason: "must be a 2-letter code when present"}
	}
	if s.Offer != nil {
		if s.Offer.ID == "" {
			return &ValidationError{Field: "offer.id", Reason: "must not be empty when offer is present"}
		}
		if s.Offer.Name == "" {
			return &ValidationError{Field: "offer.name", Reason: "must not be empty when offer is present"}
		}
	}
	for i, item := range s.Items {
		if item.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].name", i), Reason: "must not be empty"}
		}
		if item.PriceInCents < 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].priceInCents", i), Reason: "must not be negative"}
		}
	}
	return nil
}
