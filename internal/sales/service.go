package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidTransition is returned when a status change is not allowed by
// the sale lifecycle.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidStatus is returned for status values outside the closed set.
var ErrInvalidStatus = errors.New("invalid status value")

// ErrOfferActive is returned when a caller tries to detach an offer that
// the offer service still knows about.
var ErrOfferActive = errors.New("offer still exists")

// OfferChecker probes the external offer service for the existence of an
// offer. Implemented by OfferClient; tests substitute a stub.
type OfferChecker interface {
	Exists(ctx context.Context, offerID string) (bool, error)
}

// Service provides the sale-record operations on a Storage backend. The
// model functions stay pure; mutation authority lives here.
type Service struct {
	storage         Storage
	logger          *zap.Logger
	offers          OfferChecker
	defaultCurrency string
}

// SalesMetadata summarizes a search result for the admin dashboard.
// Totals are keyed by resolved display currency, in minor units.
type SalesMetadata struct {
	Quantity         int              `json:"quantity"`
	Succeeded        int              `json:"succeeded"`
	Pending          int              `json:"pending"`
	Refunded         int              `json:"refunded"`
	TotalsByCurrency map[string]int64 `json:"totalsByCurrency"`
}

// TotalsDrift flags a stored sale whose declared total disagrees with the
// sum of its items.
type TotalsDrift struct {
	SaleID  string        `json:"saleId"`
	Summary TotalsSummary `json:"summary"`
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger, offers OfferChecker, defaultCurrency string) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		storage:         storage,
		logger:          logger,
		offers:          offers,
		defaultCurrency: defaultCurrency,
	}
}

// IngestSale validates a candidate record arriving from the payment
// boundary and persists it. An ID is assigned when the record carries none;
// CreatedAt is stamped when empty. Validation failures come back as a
// *ValidationError so callers can degrade gracefully instead of crashing
// a listing.
func (s *Service) IngestSale(sale *Sale) (*Sale, error) {
	if sale == nil {
		return nil, &ValidationError{Field: "sale", Reason: "record is nil"}
	}
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.CreatedAt == "" {
		sale.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := Validate(sale); err != nil {
		s.logger.Warn("rejected sale candidate", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, err
	}

	if err := s.storage.Set(sale); err != nil {
		s.logger.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	s.logger.Info("sale ingested",
		zap.String("sale_id", sale.ID),
		zap.String("status", string(sale.Status)),
		zap.Int64("total_amount_in_cents", sale.TotalAmountInCents),
	)
	return sale, nil
}

// GetSale retrieves a single sale by ID.
func (s *Service) GetSale(id string) (*Sale, error) {
	return s.storage.Read(id)
}

// DisplayCurrency resolves the display currency for a sale using the
// configured default as the last fallback.
func (s *Service) DisplayCurrency(sale *Sale) string {
	return ResolveDisplayCurrency(sale, s.defaultCurrency)
}

// SearchSales returns sales matching the optional status and country
// filters, plus metadata for the listing header. An unknown status filter
// is rejected with ErrInvalidStatus.
func (s *Service) SearchSales(status, country string) ([]*Sale, SalesMetadata, error) {
	var statusFilter Status
	if status != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			s.logger.Warn("invalid status filter", zap.String("status_filter", status))
			return nil, SalesMetadata{}, err
		}
		statusFilter = parsed
	}

	allSales, err := s.storage.GetAll()
	if err != nil {
		s.logger.Error("failed to get all sales from storage", zap.Error(err))
		return nil, SalesMetadata{}, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	filtered := make([]*Sale, 0)
	metadata := SalesMetadata{TotalsByCurrency: map[string]int64{}}

	for _, sale := range allSales {
		if status != "" && sale.Status != statusFilter {
			continue
		}
		if country != "" && (sale.Country == nil || *sale.Country != country) {
			continue
		}

		filtered = append(filtered, sale)

		metadata.Quantity++
		metadata.TotalsByCurrency[s.DisplayCurrency(sale)] += sale.TotalAmountInCents
		switch sale.Status {
		case StatusSucceeded:
			metadata.Succeeded++
		case StatusPending:
			metadata.Pending++
		case StatusRefunded:
			metadata.Refunded++
		}
	}

	s.logger.Info("sales search completed",
		zap.String("status_filter", status),
		zap.String("country_filter", country),
		zap.Int("results_count", len(filtered)),
	)
	return filtered, metadata, nil
}

// UpdateSaleStatus applies a lifecycle transition requested by an admin
// action. The closed set and the transition rules are both enforced here:
// the stored model itself is stateless about ordering, so this is the layer
// that must reject moves out of a terminal state.
func (s *Service) UpdateSaleStatus(saleID, newStatus string) (*Sale, error) {
	sale, err := s.storage.Read(saleID)
	if err != nil {
		return nil, ErrNotFound
	}

	parsed, err := ParseStatus(newStatus)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	if !CanTransition(sale.Status, parsed) {
		s.logger.Warn("rejected status transition",
			zap.String("sale_id", saleID),
			zap.String("from", string(sale.Status)),
			zap.String("to", string(parsed)),
		)
		return nil, ErrInvalidTransition
	}

	sale.Status = parsed
	if err := s.storage.Set(sale); err != nil {
		s.logger.Error("failed to update sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale status updated", zap.String("sale_id", sale.ID), zap.String("status", string(parsed)))
	return sale, nil
}

// ReconcileTotals walks the store and reports every sale whose declared
// total disagrees with the sum of its items. Drift is reported, never
// corrected.
func (s *Service) ReconcileTotals() ([]TotalsDrift, error) {
	allSales, err := s.storage.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	drifts := make([]TotalsDrift, 0)
	for _, sale := range allSales {
		summary := SummarizeTotals(sale)
		if !summary.Matches {
			drifts = append(drifts, TotalsDrift{SaleID: sale.ID, Summary: summary})
		}
	}

	if len(drifts) > 0 {
		s.logger.Warn("totals drift detected", zap.Int("drifted_sales", len(drifts)))
	}
	return drifts, nil
}

// DetachOffer nulls the offer reference on a sale after confirming with the
// offer service that the offer no longer exists. Detaching an already
// detached sale is a no-op.
func (s *Service) DetachOffer(ctx context.Context, saleID string) (*Sale, error) {
	sale, err := s.storage.Read(saleID)
	if err != nil {
		return nil, ErrNotFound
	}
	if sale.Offer == nil {
		return sale, nil
	}

	exists, err := s.offers.Exists(ctx, sale.Offer.ID)
	if err != nil {
		s.logger.Error("error checking offer", zap.String("offer_id", sale.Offer.ID), zap.Error(err))
		return nil, fmt.Errorf("error checking offer: %w", err)
	}
	if exists {
		return nil, ErrOfferActive
	}

	offerID := sale.Offer.ID
	sale.Offer = nil
	if err := s.storage.Set(sale); err != nil {
		s.logger.Error("failed to update sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("offer detached", zap.String("sale_id", sale.ID), zap.String("offer_id", offerID))
	return sale, nil
}
