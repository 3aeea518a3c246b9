// Package handler provides the HTTP handlers of the catalog feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/http/response"
	jwtmw "gallery_backend/internal/platform/jwt"
)

type CatalogUsecase interface {
	Create(ctx context.Context, ownerID string, d entity.ProductDetails) (*entity.Product, error)
	Update(ctx context.Context, id string, d entity.ProductDetails) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	RecordView(ctx context.Context, productID, viewerID string) error
}

// ProductReq is the admin's create/update body.
type ProductReq struct {
	Title    string  `json:"title" binding:"required"`
	Price    string  `json:"price" binding:"required"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ImageRef string  `json:"image_ref"`
}

func (r ProductReq) details() entity.ProductDetails {
	return entity.ProductDetails{
		Title:    r.Title,
		Price:    r.Price,
		Width:    r.Width,
		Height:   r.Height,
		ImageRef: r.ImageRef,
	}
}

type CatalogHandler struct {
	catalog CatalogUsecase
}

func NewCatalogHandler(catalog CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns the available products, newest first.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		response.Error(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns one product and records a view. A failed view is logged only.
func (h *CatalogHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	p, err := h.catalog.Get(ctx, id)
	if err != nil {
		response.Error(c, "get product", err)
		return
	}
	if err := h.catalog.RecordView(ctx, id, jwtmw.UserID(c)); err != nil {
		slog.Warn("record view failed", "error", err, "product_id", id)
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "create product", err)
		return
	}
	p, err := h.catalog.Create(c.Request.Context(), jwtmw.UserID(c), req.details())
	if err != nil {
		response.Error(c, "create product", err)
		return
	}
	slog.Info("product created", "product_id", p.ID, "owner_id", p.OwnerID)
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var req ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "update product", err)
		return
	}
	id := c.Param("id")
	if err := h.catalog.Update(c.Request.Context(), id, req.details()); err != nil {
		response.Error(c, "update product", err)
		return
	}
	slog.Info("product updated", "product_id", id)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, "delete product", err)
		return
	}
	slog.Info("product deleted", "product_id", id)
	c.Status(http.StatusNoContent)
}
