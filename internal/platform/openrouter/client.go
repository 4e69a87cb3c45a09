package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/repos"
	"github.com/studyforge/studyforge-backend/internal/types"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"

	temperature = 0.7
	topP        = 0.9
)

// Client is the gateway to the OpenRouter chat-completions API. One call
// per generation, no retries.
type Client interface {
	// GenerateText performs one completion and returns the raw text body.
	GenerateText(ctx context.Context, prompt string, tier Tier, maxTokens int) (string, error)

	// GenerateMCQs performs one completion and parses the body as a
	// QuestionSet. Malformed output is absorbed: the returned set has no
	// questions, ParseError set and the raw text preserved. Only
	// transport/API failures return an error.
	GenerateMCQs(ctx context.Context, prompt string, tier Tier, maxTokens int) (*types.QuestionSet, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	// AppURL is sent as the HTTP-Referer header; OpenRouter uses it for
	// app attribution. Title goes out as X-Title.
	AppURL  string
	Title   string
	Timeout time.Duration
}

type client struct {
	api     *openai.Client
	log     *logger.Logger
	callLog repos.AICallLogRepo
	timeout time.Duration
}

func NewClient(cfg Config, baseLog *logger.Logger, callLog repos.AICallLogRepo) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = &http.Client{
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			referer: cfg.AppURL,
			title:   cfg.Title,
		},
	}

	return &client{
		api:     openai.NewClientWithConfig(apiCfg),
		log:     baseLog.With("service", "OpenRouterClient"),
		callLog: callLog,
		timeout: cfg.Timeout,
	}, nil
}

func (c *client) GenerateText(ctx context.Context, prompt string, tier Tier, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := tier.Model()
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	latency := time.Since(start)

	if err != nil {
		c.record(ctx, model, tier, latency, nil, true)
		c.log.Error("Completion call failed", "model", model, "error", err)
		return "", upstream(err)
	}
	if len(resp.Choices) == 0 {
		c.record(ctx, model, tier, latency, &resp.Usage, true)
		return "", &UpstreamError{Message: "response contained no choices"}
	}

	c.record(ctx, model, tier, latency, &resp.Usage, false)
	c.log.Debug("Completion call succeeded",
		"model", model,
		"latency_ms", latency.Milliseconds(),
		"completion_tokens", resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}

func (c *client) GenerateMCQs(ctx context.Context, prompt string, tier Tier, maxTokens int) (*types.QuestionSet, error) {
	text, err := c.GenerateText(ctx, prompt, tier, maxTokens)
	if err != nil {
		return nil, err
	}
	set := ParseQuestionSet(text)
	if set.ParseError {
		c.log.Warn("MCQ response was not valid JSON, returning empty set", "model", tier.Model())
	}
	return set, nil
}

// ParseQuestionSet defensively parses model output into a QuestionSet.
// The prompt asks for a JSON object but the model may wrap it in fences
// or prose, or return garbage. Parse failure is absorbed into the
// ParseError/RawResponse fields.
func ParseQuestionSet(text string) *types.QuestionSet {
	candidate := extractJSONObject(text)
	if candidate != "" {
		var set types.QuestionSet
		if err := json.Unmarshal([]byte(candidate), &set); err == nil {
			if set.Questions == nil {
				set.Questions = []types.Question{}
			}
			return &set
		}
	}
	return &types.QuestionSet{
		Questions:   []types.Question{},
		ParseError:  true,
		RawResponse: text,
	}
}

// extractJSONObject slices the outermost {...} out of the text, looking
// inside a markdown code fence first. Returns "" when no object exists.
func extractJSONObject(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		rest = strings.TrimPrefix(rest, "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = rest[:j]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func (c *client) record(ctx context.Context, model string, tier Tier, latency time.Duration, usage *openai.Usage, failed bool) {
	if c.callLog == nil {
		return
	}
	entry := &types.AICallLog{
		ID:        uuid.New(),
		Model:     model,
		Tier:      string(tier),
		LatencyMS: latency.Milliseconds(),
		Failed:    failed,
		CreatedAt: time.Now().UTC(),
	}
	if usage != nil {
		entry.PromptTokens = usage.PromptTokens
		entry.CompletionTokens = usage.CompletionTokens
	}
	// Best effort; context may already be cancelled.
	if err := c.callLog.Create(context.WithoutCancel(ctx), nil, entry); err != nil {
		c.log.Warn("Failed to record AI call", "error", err)
	}
}

// upstream normalizes go-openai errors into UpstreamError. The message
// comes from the provider; the bearer key is never part of it.
func upstream(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{Status: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return &UpstreamError{Message: err.Error()}
}

// headerTransport adds the OpenRouter attribution headers to every
// outbound request.
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}
