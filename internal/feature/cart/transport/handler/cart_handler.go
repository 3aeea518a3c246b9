// Package handler provides the HTTP handlers of the cart feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/domain/money"
	"gallery_backend/internal/feature/cart/usecase"
	"gallery_backend/internal/platform/http/response"
	jwtmw "gallery_backend/internal/platform/jwt"
)

type CartUsecase interface {
	Add(ctx context.Context, userID, productID string) (bool, error)
	Remove(ctx context.Context, userID, cartItemID string) error
	List(ctx context.Context, userID string) ([]entity.CartLine, error)
	Clear(ctx context.Context, userID string) error
}

type AddReq struct {
	ProductID string `json:"product_id" binding:"required"`
}

// CartRes lists the lines with the total both as a decimal and formatted in BRL.
type CartRes struct {
	Items          []entity.CartLine `json:"items"`
	Total          decimal.Decimal   `json:"total"`
	TotalFormatted string            `json:"total_formatted"`
}

type CartHandler struct {
	cart CartUsecase
}

func NewCartHandler(cart CartUsecase) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) List(c *gin.Context) {
	lines, err := h.cart.List(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		response.Error(c, "list cart", err)
		return
	}
	total, err := usecase.LinesTotal(lines)
	if err != nil {
		response.Error(c, "cart total", err)
		return
	}
	c.JSON(http.StatusOK, CartRes{Items: lines, Total: total, TotalFormatted: money.FormatBRL(total)})
}

// Add answers 201 when the product was reserved and 409 when it is sold,
// missing or already in this cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req AddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "add to cart", err)
		return
	}
	added, err := h.cart.Add(c.Request.Context(), jwtmw.UserID(c), req.ProductID)
	if err != nil {
		response.Error(c, "add to cart", err)
		return
	}
	if !added {
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: "product unavailable or already in cart"})
		return
	}
	c.JSON(http.StatusCreated, response.MessageResponse{Message: "ok"})
}

func (h *CartHandler) Remove(c *gin.Context) {
	if err := h.cart.Remove(c.Request.Context(), jwtmw.UserID(c), c.Param("itemID")); err != nil {
		response.Error(c, "remove from cart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context(), jwtmw.UserID(c)); err != nil {
		response.Error(c, "clear cart", err)
		return
	}
	c.Status(http.StatusNoContent)
}
