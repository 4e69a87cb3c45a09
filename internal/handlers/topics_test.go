package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyforge/studyforge-backend/internal/services"
	"github.com/studyforge/studyforge-backend/internal/types"
)

type stubTopicService struct {
	topics []*types.Topic
	topic  *types.Topic
	stats  *services.TopicStats
	err    error

	gotLimit int
	gotID    uuid.UUID
}

func (s *stubTopicService) List(ctx context.Context, limit int) ([]*types.Topic, error) {
	s.gotLimit = limit
	return s.topics, s.err
}

func (s *stubTopicService) Get(ctx context.Context, id uuid.UUID) (*types.Topic, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.topic, nil
}

func (s *stubTopicService) Delete(ctx context.Context, id uuid.UUID) error {
	s.gotID = id
	return s.err
}

func (s *stubTopicService) Stats(ctx context.Context) (*services.TopicStats, error) {
	return s.stats, s.err
}

func newTopicsRouter(svc services.TopicService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTopicsHandler(newTestLogger(), svc)
	r := gin.New()
	r.GET("/api/topics", h.List)
	r.GET("/api/topics/stats/overview", h.Stats)
	r.GET("/api/topics/:id", h.Get)
	r.DELETE("/api/topics/:id", h.Delete)
	return r
}

func TestListTopicsDefaultLimit(t *testing.T) {
	svc := &stubTopicService{topics: []*types.Topic{
		{ID: uuid.New(), Title: "A", CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Title: "B", CreatedAt: time.Now().UTC()},
	}}
	r := newTopicsRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/topics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotLimit != 50 {
		t.Fatalf("expected default limit 50, got %d", svc.gotLimit)
	}

	var body struct {
		Success bool          `json:"success"`
		Data    []types.Topic `json:"data"`
		Count   int           `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response does not parse: %v", err)
	}
	if !body.Success || body.Count != 2 || len(body.Data) != 2 {
		t.Fatalf("unexpected response %s", w.Body.String())
	}
}

func TestListTopicsRejectsBadLimit(t *testing.T) {
	r := newTopicsRouter(&stubTopicService{})

	for _, limit := range []string{"abc", "0", "-3"} {
		w := doJSON(t, r, http.MethodGet, "/api/topics?limit="+limit, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("limit=%s: expected 400, got %d", limit, w.Code)
		}
	}
}

func TestGetTopicByID(t *testing.T) {
	topic := &types.Topic{ID: uuid.New(), Title: "Photosynthesis", CreatedAt: time.Now().UTC()}
	svc := &stubTopicService{topic: topic}
	r := newTopicsRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/topics/"+topic.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotID != topic.ID {
		t.Fatalf("handler passed wrong id %s", svc.gotID)
	}
}

func TestGetTopicInvalidID(t *testing.T) {
	r := newTopicsRouter(&stubTopicService{})

	w := doJSON(t, r, http.MethodGet, "/api/topics/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetTopicMissingIs404(t *testing.T) {
	r := newTopicsRouter(&stubTopicService{err: types.ErrTopicNotFound})

	w := doJSON(t, r, http.MethodGet, "/api/topics/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("error body does not parse: %v", err)
	}
	if envelope.Error.Code != "not_found" {
		t.Fatalf("expected not_found, got %q", envelope.Error.Code)
	}
}

func TestDeleteTopic(t *testing.T) {
	id := uuid.New()
	svc := &stubTopicService{}
	r := newTopicsRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/api/topics/"+id.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotID != id {
		t.Fatalf("handler passed wrong id %s", svc.gotID)
	}
}

func TestDeleteTopicMissingIs404(t *testing.T) {
	r := newTopicsRouter(&stubTopicService{err: types.ErrTopicNotFound})

	w := doJSON(t, r, http.MethodDelete, "/api/topics/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTopicStats(t *testing.T) {
	r := newTopicsRouter(&stubTopicService{stats: &services.TopicStats{
		TotalTopics:   3,
		ByDifficulty:  map[string]int64{"beginner": 2, "advanced": 1},
		ByContentType: map[string]int64{"notes": 3},
	}})

	w := doJSON(t, r, http.MethodGet, "/api/topics/stats/overview", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Success bool                `json:"success"`
		Stats   services.TopicStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response does not parse: %v", err)
	}
	if !body.Success || body.Stats.TotalTopics != 3 || body.Stats.ByDifficulty["beginner"] != 2 {
		t.Fatalf("unexpected response %s", w.Body.String())
	}
}
