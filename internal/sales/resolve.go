package sales

// Fallback chains and reporting helpers. These are the single home of the
// "explicit field, then offer field, then default" policy; handlers must
// not reimplement it inline.

// ResolveDisplayCurrency returns the currency code to display for a sale.
// It prefers the sale's own currency, then the referenced offer's currency
// when the offer still exists, then the configured default.
func ResolveDisplayCurrency(s *Sale, defaultCurrency string) string {
	if s.Currency != "" {
		return s.Currency
	}
	if s.Offer != nil && s.Offer.Currency != "" {
		return s.Offer.Currency
	}
	return defaultCurrency
}

// IsUpsellSale reports whether a sale was generated by an upsell flow.
// An explicit IsUpsell on the sale wins, even when false; otherwise the
// offer's flag applies; with neither present the answer is false.
func IsUpsellSale(s *Sale) bool {
	if s.IsUpsell != nil {
		return *s.IsUpsell
	}
	if s.Offer != nil && s.Offer.IsUpsell != nil {
		return *s.Offer.IsUpsell
	}
	return false
}

// TotalsSummary compares the total recomputed from items against the
// declared total on the record.
type TotalsSummary struct {
	ComputedTotal int64 `json:"computedTotal"`
	DeclaredTotal int64 `json:"declaredTotal"`
	Matches       bool  `json:"matches"`
}

// SummarizeTotals sums the item prices and compares the result against
// TotalAmountInCents. A mismatch flags possible data drift; it is reported,
// never corrected, since neither side is authoritative.
func SummarizeTotals(s *Sale) TotalsSummary {
	var computed int64
	for _, item := range s.Items {
		computed += item.PriceInCents
	}
	return TotalsSummary{
		ComputedTotal: computed,
		DeclaredTotal: s.TotalAmountInCents,
		Matches:       computed == s.TotalAmountInCents,
	}
}

// CanTransition reports whether a status change is allowed. A sale only
// moves out of pending; succeeded and refunded are terminal, and nothing
// ever leaves refunded.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusSucceeded || to == StatusRefunded
}
