// Package handler serves display settings.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/http/response"
)

type SettingsUsecase interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]entity.Setting, error)
}

type SetReq struct {
	Value *string `json:"value" binding:"required"`
}

type SettingsHandler struct {
	settings SettingsUsecase
}

func NewSettingsHandler(settings SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// List returns every setting as a key to value object.
func (h *SettingsHandler) List(c *gin.Context) {
	list, err := h.settings.List(c.Request.Context())
	if err != nil {
		response.Error(c, "list settings", err)
		return
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	c.JSON(http.StatusOK, out)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	v, err := h.settings.Get(c.Request.Context(), key)
	if err != nil {
		response.Error(c, "get setting", err)
		return
	}
	c.JSON(http.StatusOK, entity.Setting{Key: key, Value: v})
}

// Set creates or overwrites a setting. An empty value is allowed.
func (h *SettingsHandler) Set(c *gin.Context) {
	var req SetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "set setting", err)
		return
	}
	if err := h.settings.Set(c.Request.Context(), c.Param("key"), *req.Value); err != nil {
		response.Error(c, "set setting", err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
