// Package handler provides the HTTP handlers of the checkout feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/domain/money"
	"gallery_backend/internal/platform/http/response"
	jwtmw "gallery_backend/internal/platform/jwt"
)

type CheckoutUsecase interface {
	CheckoutCart(ctx context.Context, userID string) (*entity.Sale, error)
	ListSales(ctx context.Context, userID string) ([]entity.Sale, error)
}

// SaleRes adds the BRL-formatted total to a sale.
type SaleRes struct {
	entity.Sale
	TotalFormatted string `json:"total_formatted"`
}

func newSaleRes(s entity.Sale) SaleRes {
	return SaleRes{Sale: s, TotalFormatted: money.FormatBRL(s.Total)}
}

type CheckoutHandler struct {
	checkout CheckoutUsecase
}

func NewCheckoutHandler(checkout CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout buys everything in the caller's cart.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sale, err := h.checkout.CheckoutCart(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		response.Error(c, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, newSaleRes(*sale))
}

func (h *CheckoutHandler) ListSales(c *gin.Context) {
	sales, err := h.checkout.ListSales(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		response.Error(c, "list sales", err)
		return
	}
	out := make([]SaleRes, 0, len(sales))
	for _, s := range sales {
		out = append(out, newSaleRes(s))
	}
	c.JSON(http.StatusOK, out)
}
