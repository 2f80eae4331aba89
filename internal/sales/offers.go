package sales

import (
	"context"
	"fmt"
	"net/http"

	"resty.dev/v3"
)

// OfferClient probes the external offer service over HTTP. It only asks
// whether an offer still exists; offer content is owned elsewhere.
type OfferClient struct {
	client  *resty.Client
	baseURL string
}

// NewOfferClient creates a client against the offer service base URL,
// e.g. "http://localhost:8080/offers".
func NewOfferClient(baseURL string) *OfferClient {
	return &OfferClient{
		client:  resty.New(),
		baseURL: baseURL,
	}
}

// Exists reports whether the offer service still knows the given offer.
// A 404 means the offer was deleted; that is a normal answer, not an error.
func (c *OfferClient) Exists(ctx context.Context, offerID string) (bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%s", c.baseURL, offerID))
	if err != nil {
		return false, fmt.Errorf("error making request to offer API: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("offer API returned unexpected status: %d", resp.StatusCode())
	}
}

// Close releases the underlying HTTP client resources.
func (c *OfferClient) Close() {
	c.client.Close()
}
