package delivery

import (
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	pager   usecase.Pager
	catalog domain.CatalogSource
	log     *logrus.Logger
}

func NewCatalogHandler(pager usecase.Pager, catalog domain.CatalogSource, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		pager:   pager,
		catalog: catalog,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("", h.GetView)
		catalog.POST("/next", h.FetchNext)
		catalog.POST("/reset", h.Reset)
		catalog.GET("/categories", h.GetCategories)
		catalog.GET("/suggestions", h.GetSuggestions)
	}
	router.GET("/products/:id", h.GetProductByID)
}

type catalogViewResponse struct {
	Products   []domain.Product       `json:"products"`
	Categories []domain.CategoryCount `json:"categories"`
	Loaded     int                    `json:"loaded"`
	Total      int                    `json:"total"`
	HasMore    bool                   `json:"hasMore"`
	Fetching   bool                   `json:"fetching"`
}

// GetView derives the filtered, sorted catalog over the accumulated
// products. Purely a read: repeated calls with the same inputs and no
// new pages return the same view.
func (h *CatalogHandler) GetView(c *gin.Context) {
	query := c.Query("search")
	category := c.Query("category")
	sortOption := domain.SortOption(c.DefaultQuery("sort", string(domain.SortTitleAsc)))
	if !domain.IsValidSortOption(sortOption) {
		h.log.Warnf("Invalid sort option '%s', using default %s", sortOption, domain.SortTitleAsc)
		sortOption = domain.SortTitleAsc
	}

	view := usecase.DeriveView(h.pager.Products(), query, category, sortOption)
	SuccessResponse(c, http.StatusOK, "Catalog view derived successfully", catalogViewResponse{
		Products:   view.Products,
		Categories: view.Categories,
		Loaded:     h.pager.Loaded(),
		Total:      h.pager.Total(),
		HasMore:    h.pager.HasMore(),
		Fetching:   h.pager.Fetching(),
	})
}

type fetchNextResponse struct {
	Fetched bool `json:"fetched"`
	Loaded  int  `json:"loaded"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// FetchNext is the "near end of visible content" signal. While a search
// or category filter is active the request is acknowledged without
// fetching; so are requests past the last page or during an in-flight
// fetch.
func (h *CatalogHandler) FetchNext(c *gin.Context) {
	query := c.Query("search")
	category := c.Query("category")

	if usecase.SuppressAutoFetch(query, category) {
		h.log.Debugf("Auto-pagination suppressed (search=%q, category=%q)", query, category)
		SuccessResponse(c, http.StatusOK, "Pagination suppressed while filtering", fetchNextResponse{
			Fetched: false,
			Loaded:  h.pager.Loaded(),
			Total:   h.pager.Total(),
			HasMore: h.pager.HasMore(),
		})
		return
	}

	before := h.pager.Loaded()
	if err := h.pager.FetchNextPage(c.Request.Context()); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to fetch next catalog page: %v", err)
		ErrorResponse(c, statusCode, "Failed to fetch next page: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Catalog page fetched", fetchNextResponse{
		Fetched: h.pager.Loaded() != before,
		Loaded:  h.pager.Loaded(),
		Total:   h.pager.Total(),
		HasMore: h.pager.HasMore(),
	})
}

func (h *CatalogHandler) Reset(c *gin.Context) {
	h.pager.Reset()
	h.log.Info("Catalog pager reset")
	SuccessResponse(c, http.StatusOK, "Catalog reset successfully", nil)
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	index := usecase.CategoryIndex(h.pager.Products())
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", index)
}

func (h *CatalogHandler) GetSuggestions(c *gin.Context) {
	query := c.Query("q")
	suggestions := usecase.Suggestions(h.pager.Products(), query)
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	SuccessResponse(c, http.StatusOK, "Suggestions retrieved successfully", suggestions)
}

func (h *CatalogHandler) GetProductByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get product by ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve product: "+err.Error())
		return
	}

	h.log.Infof("Product retrieved successfully: ID %d", id)
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}
