package api

import (
	"errors"
	"net/http"

	"sales_admin/internal/i18n"
	"sales_admin/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sales service and implements HTTP handlers for
// the admin sale-record operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
	defaultLang  i18n.Language
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger, defaultLang i18n.Language) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
		defaultLang:  defaultLang,
	}
}

// handleIngestSale handles the POST /sales endpoint. The body is a raw
// candidate record from the payment boundary; validation failures come
// back as 400 with the offending field and reason.
func (h *salesHandler) handleIngestSale(ctx *gin.Context) {
	var candidate sales.Sale
	if err := ctx.ShouldBindJSON(&candidate); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.salesService.IngestSale(&candidate)
	if err != nil {
		var vErr *sales.ValidationError
		if errors.As(err, &vErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": vErr})
			return
		}
		h.logger.Error("failed to ingest sale", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest sale"})
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleGetSale handles GET /sales/:id, returning the record together
// with its resolved display fields for the dashboard. The lang query
// parameter picks the string table; unknown values fall back to the
// default language.
func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.GetSale(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}

	table := i18n.For(i18n.Parse(ctx.DefaultQuery("lang", string(h.defaultLang))))
	ctx.JSON(http.StatusOK, gin.H{
		"sale":            sale,
		"displayCurrency": h.salesService.DisplayCurrency(sale),
		"isUpsell":        sales.IsUpsellSale(sale),
		"totals":          sales.SummarizeTotals(sale),
		"statusLabel":     table.StatusLabel(string(sale.Status)),
	})
}

// handleSearchSales handles GET /sales with optional status and country
// query filters.
func (h *salesHandler) handleSearchSales(ctx *gin.Context) {
	status := ctx.Query("status")
	country := ctx.Query("country")

	results, metadata, err := h.salesService.SearchSales(status, country)
	if err != nil {
		if errors.Is(err, sales.ErrInvalidStatus) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		h.logger.Error("error searching sales",
			zap.String("status_filter", status),
			zap.String("country_filter", country),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search sales"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": results, "metadata": metadata})
}

// handleUpdateStatus handles PATCH /sales/:id. Transitions out of a
// terminal state are rejected with 409.
func (h *salesHandler) handleUpdateStatus(ctx *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.salesService.UpdateSaleStatus(ctx.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		case errors.Is(err, sales.ErrInvalidStatus):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
		case errors.Is(err, sales.ErrInvalidTransition):
			ctx.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// handleDetachOffer handles DELETE /sales/:id/offer. The deletion is
// confirmed against the offer service first; a still-active offer is a 409.
func (h *salesHandler) handleDetachOffer(ctx *gin.Context) {
	updated, err := h.salesService.DetachOffer(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		case errors.Is(err, sales.ErrOfferActive):
			ctx.JSON(http.StatusConflict, gin.H{"error": "offer still exists"})
		default:
			h.logger.Error("failed to detach offer", zap.String("sale_id", ctx.Param("id")), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to detach offer"})
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// handleDriftReport handles GET /sales/drift.
func (h *salesHandler) handleDriftReport(ctx *gin.Context) {
	drifts, err := h.salesService.ReconcileTotals()
	if err != nil {
		h.logger.Error("failed to reconcile totals", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reconcile totals"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"drifted": drifts})
}
