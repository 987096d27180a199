package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trivia-arena/internal/domain"
)

// GormQuestionRepository 是 QuestionRepository 接口的 GORM 实现
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewGormQuestionRepository 创建 GormQuestionRepository 实例
func NewGormQuestionRepository(db *gorm.DB) *GormQuestionRepository {
	if db == nil {
		panic("database connection cannot be nil for GormQuestionRepository")
	}
	return &GormQuestionRepository{db: db}
}

// FindRandom 实现随机抽题。
// 题库规模在万级以内，ORDER BY RAND() 足够；更大的题库需要换成
// 随机主键区间采样。
func (r *GormQuestionRepository) FindRandom(ctx context.Context, limit int) ([]domain.Question, error) {
	if limit <= 0 {
		limit = 10
	}
	var questions []domain.Question
	err := r.db.WithContext(ctx).
		Order("RAND()").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find %d random questions: %w", limit, err)
	}
	return questions, nil
}

// FindRandomByTopic 实现在主题内随机抽题
func (r *GormQuestionRepository) FindRandomByTopic(ctx context.Context, topic string, limit int) ([]domain.Question, error) {
	if limit <= 0 {
		limit = 10
	}
	var questions []domain.Question
	err := r.db.WithContext(ctx).
		Where("topic = ?", topic).
		Order("RAND()").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find %d random questions for topic '%s': %w", limit, topic, err)
	}
	return questions, nil
}

// Save 实现保存题目（创建或更新）
func (r *GormQuestionRepository) Save(ctx context.Context, question *domain.Question) error {
	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		return fmt.Errorf("gorm: save question (id: %d): %w", question.ID, err)
	}
	return nil
}
