// Package handler exposes the admin dashboard.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/http/response"
)

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)
}

type AnalyticsHandler struct {
	analytics AnalyticsUsecase
}

func NewAnalyticsHandler(analytics AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard returns store totals and the most viewed products.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
