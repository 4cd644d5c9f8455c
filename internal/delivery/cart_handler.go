package delivery

import (
	"math"
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	cart usecase.CartUseCase
	log  *logrus.Logger
}

func NewCartHandler(cart usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cart: cart,
		log:  logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:id", h.UpdateQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/checkout", h.Checkout)
	}
}

type cartResponse struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

// roundPrice rounds to two decimals for display; the aggregate keeps
// full precision internally.
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

func (h *CartHandler) GetCart(c *gin.Context) {
	lines := h.cart.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", cartResponse{
		Lines:      lines,
		TotalItems: h.cart.TotalItems(),
		TotalPrice: roundPrice(h.cart.TotalPrice()),
	})
}

type addItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for add cart item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Product.ID <= 0 {
		h.log.Warnf("Add cart item with invalid product ID: %d", req.Product.ID)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: product id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	h.cart.AddItem(req.Product, req.Quantity)
	h.log.Infof("Cart item added: product ID %d, quantity %d", req.Product.ID, req.Quantity)
	self := cartResponse{
		Lines:      h.cart.Lines(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: roundPrice(h.cart.TotalPrice()),
	}
	SuccessResponse(c, http.StatusOK, "Item added to cart", self)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter for cart update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for cart quantity update ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	h.cart.UpdateQuantity(id, req.Quantity)
	h.log.Infof("Cart quantity updated: product ID %d, quantity %d", id, req.Quantity)
	SuccessResponse(c, http.StatusOK, "Cart quantity updated", cartResponse{
		Lines:      h.cart.Lines(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: roundPrice(h.cart.TotalPrice()),
	})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter for cart removal: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	h.cart.RemoveItem(id)
	h.log.Infof("Cart item removed: product ID %d", id)
	SuccessResponse(c, http.StatusOK, "Item removed from cart", cartResponse{
		Lines:      h.cart.Lines(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: roundPrice(h.cart.TotalPrice()),
	})
}

// Checkout is intentionally a stub.
func (h *CartHandler) Checkout(c *gin.Context) {
	h.log.Info("Checkout requested, not implemented")
	ErrorResponse(c, http.StatusNotImplemented, "Checkout is not implemented")
}
