// Package handler provides the HTTP handlers of the custom-order workflow.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/domain/money"
	"gallery_backend/internal/feature/customorder/usecase"
	"gallery_backend/internal/platform/http/response"
	jwtmw "gallery_backend/internal/platform/jwt"
)

type CustomOrderUsecase interface {
	Create(ctx context.Context, userID string, in usecase.CreateInput) (string, error)
	ListPending(ctx context.Context) ([]entity.PendingCustomOrder, error)
	ListForUser(ctx context.Context, userID string) ([]entity.CustomOrder, error)
	Get(ctx context.Context, id string) (*entity.CustomOrder, error)
	Quote(ctx context.Context, id string, price, fee decimal.Decimal) error
	SetStatus(ctx context.Context, id string, next entity.CustomOrderStatus) error
	Refuse(ctx context.Context, userID, id string) error
	Pay(ctx context.Context, userID, id string) (decimal.Decimal, error)
}

type CreateReq struct {
	ImageRef    string  `json:"image_ref"`
	Width       float64 `json:"width" binding:"required"`
	Height      float64 `json:"height" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Address     string  `json:"address" binding:"required"`
}

// QuoteReq takes amounts as decimal strings ("350.00") to avoid float rounding.
type QuoteReq struct {
	Price       decimal.Decimal `json:"price"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

type StatusReq struct {
	Status entity.CustomOrderStatus `json:"status" binding:"required"`
}

type CreatedRes struct {
	ID string `json:"id"`
}

type PaidRes struct {
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
}

type CustomOrderHandler struct {
	orders CustomOrderUsecase
}

func NewCustomOrderHandler(orders CustomOrderUsecase) *CustomOrderHandler {
	return &CustomOrderHandler{orders: orders}
}

func (h *CustomOrderHandler) Create(c *gin.Context) {
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "create custom order", err)
		return
	}
	id, err := h.orders.Create(c.Request.Context(), jwtmw.UserID(c), usecase.CreateInput{
		ImageRef:    req.ImageRef,
		Width:       req.Width,
		Height:      req.Height,
		Description: req.Description,
		Address:     req.Address,
	})
	if err != nil {
		response.Error(c, "create custom order", err)
		return
	}
	c.JSON(http.StatusCreated, CreatedRes{ID: id})
}

// ListMine returns the caller's orders, newest first.
func (h *CustomOrderHandler) ListMine(c *gin.Context) {
	orders, err := h.orders.ListForUser(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		response.Error(c, "list custom orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *CustomOrderHandler) Refuse(c *gin.Context) {
	if err := h.orders.Refuse(c.Request.Context(), jwtmw.UserID(c), c.Param("id")); err != nil {
		response.Error(c, "refuse custom order", err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}

func (h *CustomOrderHandler) Pay(c *gin.Context) {
	total, err := h.orders.Pay(c.Request.Context(), jwtmw.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, "pay custom order", err)
		return
	}
	c.JSON(http.StatusOK, PaidRes{Total: total, TotalFormatted: money.FormatBRL(total)})
}

// ListPending is the admin queue.
func (h *CustomOrderHandler) ListPending(c *gin.Context) {
	orders, err := h.orders.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, "list pending custom orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *CustomOrderHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, "get custom order", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *CustomOrderHandler) Quote(c *gin.Context) {
	var req QuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "quote custom order", err)
		return
	}
	if err := h.orders.Quote(c.Request.Context(), c.Param("id"), req.Price, req.DeliveryFee); err != nil {
		response.Error(c, "quote custom order", err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}

func (h *CustomOrderHandler) SetStatus(c *gin.Context) {
	var req StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "set custom order status", err)
		return
	}
	if err := h.orders.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.Error(c, "set custom order status", err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
