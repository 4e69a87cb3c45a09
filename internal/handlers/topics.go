package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/platform/apierr"
	"github.com/studyforge/studyforge-backend/internal/services"
	"github.com/studyforge/studyforge-backend/internal/types"
)

type TopicsHandler struct {
	log      *logger.Logger
	topicSvc services.TopicService
}

func NewTopicsHandler(log *logger.Logger, topicSvc services.TopicService) *TopicsHandler {
	return &TopicsHandler{
		log:      log.With("handler", "TopicsHandler"),
		topicSvc: topicSvc,
	}
}

// GET /api/topics?limit=
func (h *TopicsHandler) List(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	topics, err := h.topicSvc.List(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("List topics failed", "error", err)
		RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, err)
		return
	}

	RespondOK(c, gin.H{
		"success": true,
		"data":    topics,
		"count":   len(topics),
	})
}

// GET /api/topics/:id
func (h *TopicsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, errors.New("invalid topic id"))
		return
	}

	topic, err := h.topicSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrTopicNotFound) {
			RespondError(c, http.StatusNotFound, apierr.CodeNotFound, err)
			return
		}
		h.log.Error("Get topic failed", "topic_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, err)
		return
	}

	RespondOK(c, gin.H{"success": true, "data": topic})
}

// DELETE /api/topics/:id
func (h *TopicsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, errors.New("invalid topic id"))
		return
	}

	if err := h.topicSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, types.ErrTopicNotFound) {
			RespondError(c, http.StatusNotFound, apierr.CodeNotFound, err)
			return
		}
		h.log.Error("Delete topic failed", "topic_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, err)
		return
	}

	RespondOK(c, gin.H{"success": true, "message": "Topic deleted successfully"})
}

// GET /api/topics/stats/overview
func (h *TopicsHandler) Stats(c *gin.Context) {
	stats, err := h.topicSvc.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("Topic stats failed", "error", err)
		RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, err)
		return
	}

	RespondOK(c, gin.H{"success": true, "stats": stats})
}
