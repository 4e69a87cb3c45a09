package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/platform/apierr"
	"github.com/studyforge/studyforge-backend/internal/platform/openrouter"
	"github.com/studyforge/studyforge-backend/internal/services"
	"github.com/studyforge/studyforge-backend/internal/types"
)

type ContentHandler struct {
	log           *logger.Logger
	generationSvc services.GenerationService
	exportSvc     services.ExportService
}

func NewContentHandler(log *logger.Logger, generationSvc services.GenerationService, exportSvc services.ExportService) *ContentHandler {
	return &ContentHandler{
		log:           log.With("handler", "ContentHandler"),
		generationSvc: generationSvc,
		exportSvc:     exportSvc,
	}
}

// POST /api/content/generate
func (h *ContentHandler) Generate(c *gin.Context) {
	var req types.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	topic, err := h.generationSvc.Generate(c.Request.Context(), req)
	if err != nil {
		if openrouter.IsUpstreamError(err) {
			h.log.Error("Upstream generation failed", "topic", req.Topic, "error", err)
			RespondError(c, http.StatusBadGateway, apierr.CodeUpstream, err)
			return
		}
		h.log.Error("Generation failed", "topic", req.Topic, "error", err)
		RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, err)
		return
	}

	RespondOK(c, gin.H{
		"success": true,
		"data":    topic,
		"message": fmt.Sprintf("Successfully generated %s for %s", req.ContentType, req.Topic),
	})
}

// POST /api/content/export
func (h *ContentHandler) Export(c *gin.Context) {
	var req types.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	artifact, err := h.exportSvc.Export(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, types.ErrInvalidFilename) || errors.Is(err, types.ErrInvalidJSON) {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
			return
		}
		h.log.Error("Export failed", "format", req.Format, "error", err)
		RespondError(c, http.StatusInternalServerError, apierr.CodeExport, err)
		return
	}

	RespondOK(c, gin.H{
		"success":      true,
		"filename":     artifact.FileName,
		"format":       artifact.Format,
		"download_url": artifact.DownloadURL,
	})
}

// GET /api/content/models
func (h *ContentHandler) ListModels(c *gin.Context) {
	RespondOK(c, gin.H{"models": openrouter.Catalog()})
}
