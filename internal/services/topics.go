package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/repos"
	"github.com/studyforge/studyforge-backend/internal/types"
)

// TopicStats summarizes the stored records for the stats endpoint.
type TopicStats struct {
	TotalTopics   int64            `json:"total_topics"`
	ByDifficulty  map[string]int64 `json:"difficulty_distribution"`
	ByContentType map[string]int64 `json:"content_type_distribution"`
}

type TopicService interface {
	List(ctx context.Context, limit int) ([]*types.Topic, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*TopicStats, error)
}

type topicService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repos.TopicRepo
}

func NewTopicService(db *gorm.DB, baseLog *logger.Logger, topicRepo repos.TopicRepo) TopicService {
	return &topicService{
		db:        db,
		log:       baseLog.With("service", "TopicService"),
		topicRepo: topicRepo,
	}
}

func (s *topicService) List(ctx context.Context, limit int) ([]*types.Topic, error) {
	return s.topicRepo.List(ctx, nil, limit)
}

func (s *topicService) Get(ctx context.Context, id uuid.UUID) (*types.Topic, error) {
	return s.topicRepo.GetByID(ctx, nil, id)
}

func (s *topicService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.topicRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return types.ErrTopicNotFound
	}
	s.log.Info("Deleted topic", "topic_id", id)
	return nil
}

func (s *topicService) Stats(ctx context.Context) (*TopicStats, error) {
	byDifficulty, err := s.topicRepo.CountByField(ctx, nil, "difficulty")
	if err != nil {
		return nil, err
	}
	byContentType, err := s.topicRepo.CountByField(ctx, nil, "content_type")
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byDifficulty {
		total += n
	}
	return &TopicStats{
		TotalTopics:   total,
		ByDifficulty:  byDifficulty,
		ByContentType: byContentType,
	}, nil
}
