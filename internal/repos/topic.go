package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/types"
)

type TopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) (*types.Topic, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Topic, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Topic, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	CountByField(ctx context.Context, tx *gorm.DB, field string) (map[string]int64, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (r *topicRepo) Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(topic).Error; err != nil {
		return nil, err
	}
	return topic, nil
}

func (r *topicRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var topic types.Topic
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrTopicNotFound
		}
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}

	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes one record. Deleting a missing id is not an error; the
// caller distinguishes via the returned bool.
func (r *topicRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Topic{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountByField groups record counts by a column. Only used for the stats
// endpoint; field is restricted to known columns by the caller.
func (r *topicRepo) CountByField(ctx context.Context, tx *gorm.DB, field string) (map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	type row struct {
		Value string
		N     int64
	}
	var rows []row
	if err := transaction.WithContext(ctx).
		Model(&types.Topic{}).
		Select(field+" AS value, COUNT(*) AS n").
		Group(field).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Value] = rw.N
	}
	return out, nil
}
