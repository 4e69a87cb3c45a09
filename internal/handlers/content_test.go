package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/platform/openrouter"
	"github.com/studyforge/studyforge-backend/internal/services"
	"github.com/studyforge/studyforge-backend/internal/types"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type stubGeneration struct {
	topic *types.Topic
	err   error
}

func (s *stubGeneration) Generate(ctx context.Context, req types.GenerationRequest) (*types.Topic, error) {
	return s.topic, s.err
}

type stubExport struct {
	artifact *types.ExportArtifact
	err      error
}

func (s *stubExport) Export(ctx context.Context, req types.ExportRequest) (*types.ExportArtifact, error) {
	return s.artifact, s.err
}

func newContentRouter(gen services.GenerationService, exp services.ExportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewContentHandler(newTestLogger(), gen, exp)
	r := gin.New()
	r.POST("/api/content/generate", h.Generate)
	r.POST("/api/content/export", h.Export)
	r.GET("/api/content/models", h.ListModels)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateValidatesBody(t *testing.T) {
	r := newContentRouter(&stubGeneration{}, &stubExport{})

	cases := []struct {
		name string
		body string
	}{
		{"missing topic", `{"subject":"Biology","content_type":"notes"}`},
		{"short topic", `{"topic":"x","subject":"Biology","content_type":"notes"}`},
		{"bad content type", `{"topic":"Photosynthesis","subject":"Biology","content_type":"poems"}`},
		{"bad difficulty", `{"topic":"Photosynthesis","subject":"Biology","content_type":"notes","difficulty":"expert"}`},
		{"mcq count too low", `{"topic":"Photosynthesis","subject":"Biology","content_type":"mcqs","mcq_count":2}`},
		{"not json", `topic=Photosynthesis`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/content/generate", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("error body does not parse: %v", err)
			}
			if envelope.Error.Code != "validation_error" {
				t.Fatalf("expected validation_error, got %q", envelope.Error.Code)
			}
		})
	}
}

func TestGenerateSuccessEnvelope(t *testing.T) {
	topic := &types.Topic{
		ID:          uuid.New(),
		Title:       "Photosynthesis",
		Subject:     "Biology",
		Difficulty:  "intermediate",
		ContentType: "notes",
		CreatedAt:   time.Now().UTC(),
	}
	r := newContentRouter(&stubGeneration{topic: topic}, &stubExport{})

	w := doJSON(t, r, http.MethodPost, "/api/content/generate",
		`{"topic":"Photosynthesis","subject":"Biology","content_type":"notes"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool        `json:"success"`
		Data    types.Topic `json:"data"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response does not parse: %v", err)
	}
	if !body.Success || body.Data.ID != topic.ID {
		t.Fatalf("unexpected response %s", w.Body.String())
	}
	if !strings.Contains(body.Message, "notes") || !strings.Contains(body.Message, "Photosynthesis") {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestGenerateUpstreamFailureIs502(t *testing.T) {
	r := newContentRouter(&stubGeneration{err: &openrouter.UpstreamError{Status: 503, Message: "model down"}}, &stubExport{})

	w := doJSON(t, r, http.MethodPost, "/api/content/generate",
		`{"topic":"Photosynthesis","subject":"Biology","content_type":"all"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("error body does not parse: %v", err)
	}
	if envelope.Error.Code != "upstream_error" {
		t.Fatalf("expected upstream_error, got %q", envelope.Error.Code)
	}
}

func TestExportInvalidFilenameIs400(t *testing.T) {
	r := newContentRouter(&stubGeneration{}, &stubExport{err: types.ErrInvalidFilename})

	w := doJSON(t, r, http.MethodPost, "/api/content/export",
		`{"format":"markdown","content":"# Doc","filename":"..."}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestExportSuccessReturnsDownloadURL(t *testing.T) {
	r := newContentRouter(&stubGeneration{}, &stubExport{artifact: &types.ExportArtifact{
		Format:      "markdown",
		FileName:    "doc.md",
		DownloadURL: "/exports/doc.md",
	}})

	w := doJSON(t, r, http.MethodPost, "/api/content/export",
		`{"format":"markdown","content":"# Doc","filename":"doc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Success     bool   `json:"success"`
		Filename    string `json:"filename"`
		DownloadURL string `json:"download_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response does not parse: %v", err)
	}
	if !body.Success || body.Filename != "doc.md" || body.DownloadURL != "/exports/doc.md" {
		t.Fatalf("unexpected response %s", w.Body.String())
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	r := newContentRouter(&stubGeneration{}, &stubExport{})

	w := doJSON(t, r, http.MethodPost, "/api/content/export",
		`{"format":"docx","content":"# Doc","filename":"doc"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported format, got %d", w.Code)
	}
}

func TestListModels(t *testing.T) {
	r := newContentRouter(&stubGeneration{}, &stubExport{})

	w := doJSON(t, r, http.MethodGet, "/api/content/models", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Models map[string]types.ModelInfo `json:"models"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response does not parse: %v", err)
	}
	for _, tier := range []string{"fast", "balanced", "detailed"} {
		if body.Models[tier].Name == "" {
			t.Fatalf("catalog missing tier %q: %s", tier, w.Body.String())
		}
	}
}
