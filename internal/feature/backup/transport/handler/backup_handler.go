// Package handler downloads and restores full backups.
package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery_backend/internal/platform/http/response"
)

// maxBackupBytes bounds the restore upload.
const maxBackupBytes = 64 << 20

type BackupUsecase interface {
	ExportJSON(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, doc []byte) error
}

type BackupHandler struct {
	backup BackupUsecase
	now    func() string
}

func NewBackupHandler(backup BackupUsecase, now func() string) *BackupHandler {
	return &BackupHandler{backup: backup, now: now}
}

// Export streams the data set as a JSON attachment.
func (h *BackupHandler) Export(c *gin.Context) {
	doc, err := h.backup.ExportJSON(c.Request.Context())
	if err != nil {
		response.Error(c, "export backup", err)
		return
	}
	name := "backup.json"
	if h.now != nil {
		name = fmt.Sprintf("backup-%s.json", h.now())
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}

// Import replaces all data with the uploaded document.
func (h *BackupHandler) Import(c *gin.Context) {
	doc, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBackupBytes))
	if err != nil {
		response.BadRequest(c, "import backup", err)
		return
	}
	if err := h.backup.Import(c.Request.Context(), doc); err != nil {
		response.Error(c, "import backup", err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
