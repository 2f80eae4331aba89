package api

import (
	"net/http"

	"sales_admin/internal/config"
	"sales_admin/internal/i18n"
	"sales_admin/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InitRoutes registers all sale-record endpoints on the given Gin engine.
// It initializes the storage, offer client, service, and handler, then
// binds each HTTP method and path to the appropriate handler function.
func InitRoutes(e *gin.Engine, cfg config.Config) {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	salesStorage := sales.NewLocalStorage()
	offerClient := sales.NewOfferClient(cfg.OfferServiceURL)
	salesService := sales.NewService(salesStorage, logger, offerClient, cfg.DefaultCurrency)
	salesHandler := NewSalesHandler(salesService, logger, i18n.Parse(cfg.DefaultLanguage))

	e.POST("/sales", salesHandler.handleIngestSale)
	e.GET("/sales", salesHandler.handleSearchSales)
	e.GET("/sales/drift", salesHandler.handleDriftReport)
	e.GET("/sales/:id", salesHandler.handleGetSale)
	e.PATCH("/sales/:id", salesHandler.handleUpdateStatus)
	e.DELETE("/sales/:id/offer", salesHandler.handleDetachOffer)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
