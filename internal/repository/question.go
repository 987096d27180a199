package repository

import (
	"context"

	"trivia-arena/internal/domain"
)

// QuestionRepository 定义了题库的存储和抽取操作。
type QuestionRepository interface {
	// FindRandom 随机抽取 limit 道题目。
	// 题库不足时返回实际数量；题库为空时返回空切片而不是错误。
	FindRandom(ctx context.Context, limit int) ([]domain.Question, error)

	// FindRandomByTopic 在指定主题内随机抽取 limit 道题目。
	FindRandomByTopic(ctx context.Context, topic string, limit int) ([]domain.Question, error)

	// Save 保存一道题目 (创建或更新)。
	Save(ctx context.Context, question *domain.Question) error
}
