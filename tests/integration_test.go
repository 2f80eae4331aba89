package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales_admin/api"
	"sales_admin/internal/config"
	"sales_admin/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// initRoutesTests wires the API against a mock offer service. The flow
// below runs sequentially in one process; the external collaborators are
// all local mocks, so nothing here touches a real payment sandbox.
func initRoutesTests() (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	offerMockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offerID := strings.TrimPrefix(r.URL.Path, "/offers/")
		switch offerID {
		case "offer-live":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "offer-live", "name": "Pro Plan"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Offer not found"))
		}
	}))

	api.InitRoutes(router, config.Config{
		OfferServiceURL: offerMockServer.URL + "/offers",
		DefaultCurrency: "brl",
		DefaultLanguage: "pt",
	})

	return router, offerMockServer
}

func postSale(t *testing.T, router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	bodyBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestSalesHappyPath_FullFlow runs POST -> GET -> PATCH -> search -> drift
// -> detach against the full HTTP surface.
func TestSalesHappyPath_FullFlow(t *testing.T) {
	router, offerMockServer := initRoutesTests()
	defer offerMockServer.Close()

	var saleID string

	t.Run("POST_IngestSale", func(t *testing.T) {
		w := postSale(t, router, map[string]interface{}{
			"customerName":       "Ana Lima",
			"customerEmail":      "ana@example.com",
			"totalAmountInCents": 1500,
			"currency":           "",
			"status":             "pending",
			"country":            "br",
			"offer": map[string]interface{}{
				"id":       "offer-gone",
				"name":     "Starter Plan",
				"currency": "usd",
				"isUpsell": true,
			},
			"items": []map[string]interface{}{
				{"name": "Starter Plan", "priceInCents": 1000, "isOrderBump": false},
				{"name": "Extended Support", "priceInCents": 500, "isOrderBump": true},
			},
		})

		assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 Created for a valid candidate")

		var created sales.Sale
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID, "Expected sale ID to be generated")
		assert.NotEmpty(t, created.CreatedAt, "Expected createdAt to be stamped")
		assert.Equal(t, sales.StatusPending, created.Status)

		saleID = created.ID
	})

	if saleID == "" {
		t.Fatal("Sale ID was not generated in POST_IngestSale step.")
	}

	t.Run("GET_SaleWithDisplayFields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales/"+saleID+"?lang=en", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			DisplayCurrency string              `json:"displayCurrency"`
			IsUpsell        bool                `json:"isUpsell"`
			Totals          sales.TotalsSummary `json:"totals"`
			StatusLabel     string              `json:"statusLabel"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "usd", resp.DisplayCurrency, "Expected currency to fall back to the offer")
		assert.True(t, resp.IsUpsell, "Expected upsell flag to fall back to the offer")
		assert.True(t, resp.Totals.Matches)
		assert.Equal(t, "pending", resp.StatusLabel)
	})

	t.Run("PATCH_StatusTransition", func(t *testing.T) {
		body := bytes.NewBufferString(`{"status": "succeeded"}`)
		req := httptest.NewRequest(http.MethodPatch, "/sales/"+saleID, body)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var updated sales.Sale
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, sales.StatusSucceeded, updated.Status)
	})

	t.Run("PATCH_TerminalStateRejected", func(t *testing.T) {
		body := bytes.NewBufferString(`{"status": "refunded"}`)
		req := httptest.NewRequest(http.MethodPatch, "/sales/"+saleID, body)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code, "Expected HTTP 409 for a transition out of a terminal state")
	})

	t.Run("GET_SearchWithMetadata", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales?status=succeeded&country=br", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Results  []sales.Sale        `json:"results"`
			Metadata sales.SalesMetadata `json:"metadata"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Results, 1)
		assert.Equal(t, 1, resp.Metadata.Succeeded)
		assert.Equal(t, int64(1500), resp.Metadata.TotalsByCurrency["usd"])
	})

	t.Run("GET_DriftReport", func(t *testing.T) {
		w := postSale(t, router, map[string]interface{}{
			"id":                 "drifted-sale",
			"customerName":       "Bruno Reis",
			"customerEmail":      "bruno@example.com",
			"totalAmountInCents": 2000,
			"currency":           "brl",
			"status":             "succeeded",
			"createdAt":          "2026-08-02T09:00:00Z",
			"offer":              nil,
			"items": []map[string]interface{}{
				{"name": "Pro Plan", "priceInCents": 1800, "isOrderBump": false},
			},
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/sales/drift", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Drifted []sales.TotalsDrift `json:"drifted"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Drifted, 1)
		assert.Equal(t, "drifted-sale", resp.Drifted[0].SaleID)
		assert.Equal(t, int64(1800), resp.Drifted[0].Summary.ComputedTotal)
		assert.Equal(t, int64(2000), resp.Drifted[0].Summary.DeclaredTotal)
	})

	t.Run("DELETE_DetachDeletedOffer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/sales/"+saleID+"/offer", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var updated sales.Sale
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Nil(t, updated.Offer, "Expected offer reference to be nil after detach")
	})
}

func TestIngestSale_ValidationFailure(t *testing.T) {
	router, offerMockServer := initRoutesTests()
	defer offerMockServer.Close()

	w := postSale(t, router, map[string]interface{}{
		"customerName":       "Carla Dias",
		"customerEmail":      "carla@example.com",
		"totalAmountInCents": 1000,
		"currency":           "brl",
		"status":             "chargeback",
		"items":              []map[string]interface{}{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error sales.ValidationError `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "status", resp.Error.Field)
}

func TestDetachOffer_ActiveOfferRejected(t *testing.T) {
	router, offerMockServer := initRoutesTests()
	defer offerMockServer.Close()

	w := postSale(t, router, map[string]interface{}{
		"id":                 "sale-live-offer",
		"customerName":       "Davi Castro",
		"customerEmail":      "davi@example.com",
		"totalAmountInCents": 0,
		"currency":           "brl",
		"status":             "succeeded",
		"createdAt":          "2026-08-03T10:00:00Z",
		"offer": map[string]interface{}{
			"id":   "offer-live",
			"name": "Pro Plan",
		},
		"items": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/sales/sale-live-offer/offer", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code, "Expected HTTP 409 when the offer service still knows the offer")
}

// TestSaleRoundTrip checks that a validated sale survives a serialize /
// deserialize cycle unchanged and still validates.
func TestSaleRoundTrip(t *testing.T) {
	country := "br"
	upsell := true
	original := &sales.Sale{
		ID:                 "round-trip",
		CustomerName:       "Elisa Prado",
		CustomerEmail:      "elisa@example.com",
		TotalAmountInCents: 990,
		Currency:           "eur",
		Status:             sales.StatusRefunded,
		CreatedAt:          "2026-07-15T08:30:00Z",
		IsUpsell:           &upsell,
		Country:            &country,
		Offer:              nil,
		Items: []sales.SaleItem{
			{ID: "item-1", Name: "Mini Course", PriceInCents: 990, IsOrderBump: false},
		},
	}
	assert.NoError(t, sales.Validate(original))

	encoded, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded sales.Sale
	assert.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, *original, decoded)
	assert.NoError(t, sales.Validate(&decoded))
}
