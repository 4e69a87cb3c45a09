package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/platform/openrouter"
	"github.com/studyforge/studyforge-backend/internal/repos"
	"github.com/studyforge/studyforge-backend/internal/types"
)

// Tier and token budget per content kind.
const (
	notesMaxTokens  = 3000
	slidesMaxTokens = 2500
	mcqMaxTokens    = 3000
)

type GenerationService interface {
	// Generate runs the requested LLM calls, assembles the record and
	// persists it. Either every requested kind succeeds and the record is
	// stored, or nothing is stored at all.
	Generate(ctx context.Context, req types.GenerationRequest) (*types.Topic, error)
}

type generationService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repos.TopicRepo
	llm       openrouter.Client
}

func NewGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicRepo repos.TopicRepo,
	llm openrouter.Client,
) GenerationService {
	return &generationService{
		db:        db,
		log:       baseLog.With("service", "GenerationService"),
		topicRepo: topicRepo,
		llm:       llm,
	}
}

func (s *generationService) Generate(ctx context.Context, req types.GenerationRequest) (*types.Topic, error) {
	req.ApplyDefaults()

	wantNotes := req.ContentType == types.ContentTypeNotes || req.ContentType == types.ContentTypeAll
	wantSlides := req.ContentType == types.ContentTypeSlides || req.ContentType == types.ContentTypeAll
	wantMCQs := req.ContentType == types.ContentTypeMCQs || req.ContentType == types.ContentTypeAll

	s.log.Info("Generating content",
		"topic", req.Topic,
		"subject", req.Subject,
		"content_type", req.ContentType,
		"difficulty", req.Difficulty)

	// The three calls are independent; for "all" they are in flight
	// simultaneously. Any failure cancels the siblings and nothing is
	// persisted.
	var content types.GeneratedContent
	g, gctx := errgroup.WithContext(ctx)

	if wantNotes {
		g.Go(func() error {
			prompt := NotesPrompt(req.Topic, req.Subject, req.Difficulty, req.CustomInstructions)
			text, err := s.llm.GenerateText(gctx, prompt, openrouter.TierDetailed, notesMaxTokens)
			if err != nil {
				return fmt.Errorf("generate notes: %w", err)
			}
			content.Notes = text
			return nil
		})
	}
	if wantSlides {
		g.Go(func() error {
			prompt := SlidesPrompt(req.Topic, req.Subject, req.Difficulty, req.SlideCount)
			text, err := s.llm.GenerateText(gctx, prompt, openrouter.TierBalanced, slidesMaxTokens)
			if err != nil {
				return fmt.Errorf("generate slides: %w", err)
			}
			content.Slides = text
			return nil
		})
	}
	if wantMCQs {
		g.Go(func() error {
			prompt := MCQPrompt(req.Topic, req.Subject, req.Difficulty, req.MCQCount)
			set, err := s.llm.GenerateMCQs(gctx, prompt, openrouter.TierDetailed, mcqMaxTokens)
			if err != nil {
				return fmt.Errorf("generate mcqs: %w", err)
			}
			content.MCQs = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("Generation failed, discarding partial results", "topic", req.Topic, "error", err)
		return nil, err
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal generated content: %w", err)
	}

	topic := &types.Topic{
		ID:               uuid.New(),
		Title:            req.Topic,
		Subject:          req.Subject,
		Difficulty:       req.Difficulty,
		ContentType:      req.ContentType,
		GeneratedContent: payload,
		CreatedAt:        time.Now().UTC(),
	}
	if _, err := s.topicRepo.Create(ctx, nil, topic); err != nil {
		return nil, fmt.Errorf("persist topic: %w", err)
	}

	s.log.Info("Generation complete", "topic_id", topic.ID, "topic", req.Topic)
	return topic, nil
}
