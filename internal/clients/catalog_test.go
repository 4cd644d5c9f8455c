package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestCatalogClient_ListSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		assert.Equal(t, "24", r.URL.Query().Get("skip"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
            "products": [
                {"id": 25, "title": "Apple iPhone", "category": "phones", "price": 899.99, "rating": 4.5, "stock": 10},
                {"id": 26, "title": "Samsung TV", "category": "electronics", "price": 499.0, "rating": 4.0, "stock": 3}
            ],
            "total": 100, "skip": 24, "limit": 12
        }`)
	}))
	defer server.Close()

	client := NewCatalogHTTPClient(server.URL, 5*time.Second, testLogger())

	page, err := client.List(context.Background(), 24, 12)
	require.NoError(t, err)
	assert.Equal(t, 100, page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, 25, page.Products[0].ID)
	assert.Equal(t, "Apple iPhone", page.Products[0].Title)
	assert.InDelta(t, 899.99, page.Products[0].Price, 1e-9)
}

func TestCatalogClient_ListNon2xxIsFetchFailed(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadRequest, http.StatusTooManyRequests} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewCatalogHTTPClient(server.URL, 5*time.Second, testLogger())
		_, err := client.List(context.Background(), 0, 12)

		require.Error(t, err, "status %d", status)
		assert.ErrorIs(t, err, domain.ErrFetchFailed, "status %d", status)
		server.Close()
	}
}

func TestCatalogClient_ListBadJSONDegradesToFetchFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"products": [`)
	}))
	defer server.Close()

	client := NewCatalogHTTPClient(server.URL, 5*time.Second, testLogger())
	_, err := client.List(context.Background(), 0, 12)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestCatalogClient_ListUnreachableHost(t *testing.T) {
	client := NewCatalogHTTPClient("http://127.0.0.1:1", 500*time.Millisecond, testLogger())

	_, err := client.List(context.Background(), 0, 12)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestCatalogClient_GetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		fmt.Fprint(w, `{"id": 7, "title": "Coffee Maker", "category": "kitchen", "price": 49.99, "rating": 4.8, "images": ["a.jpg", "b.jpg"]}`)
	}))
	defer server.Close()

	client := NewCatalogHTTPClient(server.URL, 5*time.Second, testLogger())

	product, err := client.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, product.ID)
	assert.Equal(t, "Coffee Maker", product.Title)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, product.Images)
}

func TestCatalogClient_GetNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewCatalogHTTPClient(server.URL, 5*time.Second, testLogger())

	_, err := client.Get(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.NotErrorIs(t, err, domain.ErrFetchFailed)
}

func TestCatalogClient_GetNon2xxIsFetchFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCatalogHTTPClient(server.URL, 5*time.Second, testLogger())

	_, err := client.Get(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}
