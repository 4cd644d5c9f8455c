package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type catalogHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewCatalogHTTPClient builds a CatalogSource over a dummyjson-style
// product API (GET /products?limit=&skip= and GET /products/{id}).
func NewCatalogHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) domain.CatalogSource {
	return &catalogHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *catalogHTTPClient) List(ctx context.Context, skip, limit int) (domain.ProductPage, error) {
	url := fmt.Sprintf("%s/products?limit=%d&skip=%d", c.baseURL, limit, skip)
	c.log.Infof("CatalogClient: Requesting product page from URL: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to create list request (skip=%d, limit=%d): %v", skip, limit, err)
		return domain.ProductPage{}, fmt.Errorf("%w: failed to create request: %v", domain.ErrFetchFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to execute list request (skip=%d, limit=%d): %v", skip, limit, err)
		return domain.ProductPage{}, fmt.Errorf("%w: failed to reach catalog source: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Errorf("CatalogClient: List request (skip=%d, limit=%d) failed with status %d", skip, limit, resp.StatusCode)
		return domain.ProductPage{}, fmt.Errorf("%w: catalog source returned status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	var page domain.ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.log.Errorf("CatalogClient: Failed to decode list response (skip=%d, limit=%d): %v", skip, limit, err)
		return domain.ProductPage{}, fmt.Errorf("%w: failed to decode catalog response: %v", domain.ErrFetchFailed, err)
	}

	c.log.Infof("CatalogClient: Received %d products (skip=%d, limit=%d, total=%d)",
		len(page.Products), skip, limit, page.Total)
	return page, nil
}

func (c *catalogHTTPClient) Get(ctx context.Context, id int) (domain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	c.log.Infof("CatalogClient: Requesting product info from URL: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to create get request for ID %d: %v", id, err)
		return domain.Product{}, fmt.Errorf("%w: failed to create request: %v", domain.ErrFetchFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to execute get request for ID %d: %v", id, err)
		return domain.Product{}, fmt.Errorf("%w: failed to reach catalog source: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Warnf("CatalogClient: Product with ID %d not found (status %d)", id, resp.StatusCode)
		return domain.Product{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Errorf("CatalogClient: Get request for ID %d failed with status %d", id, resp.StatusCode)
		return domain.Product{}, fmt.Errorf("%w: catalog source returned status %d for product %d", domain.ErrFetchFailed, resp.StatusCode, id)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		c.log.Errorf("CatalogClient: Failed to decode get response for ID %d: %v", id, err)
		return domain.Product{}, fmt.Errorf("%w: failed to decode catalog response: %v", domain.ErrFetchFailed, err)
	}

	if product.ID != id {
		c.log.Warnf("CatalogClient: Mismatched product ID in response. Requested %d, got %d", id, product.ID)
	}

	return product, nil
}
