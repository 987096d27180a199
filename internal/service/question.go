package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/repository"
)

// QuestionService 负责题库的维护和查询。
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionService 创建 QuestionService 实例。
func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	if questionRepo == nil {
		panic("QuestionRepository cannot be nil for QuestionService")
	}
	return &QuestionService{questionRepo: questionRepo}
}

// CreateQuestion 校验并保存一道题目。
func (s *QuestionService) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question.Text == "" || question.CorrectAnswer == "" || question.WrongAnswer1 == "" {
		return ErrInvalidQuestion
	}
	if question.Topic == "" {
		return ErrInvalidQuestion
	}
	if err := s.questionRepo.Save(ctx, question); err != nil {
		logrus.WithField("topic", question.Topic).WithError(err).Error("Failed to save question")
		return ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"question_id": question.ID, "topic": question.Topic}).Info("Question created")
	return nil
}

// SampleQuestions 随机抽取一批题目，可按主题过滤 (topic 为空时全库抽取)。
// 用于题库预览和练习模式。
func (s *QuestionService) SampleQuestions(ctx context.Context, topic string, limit int) ([]domain.Question, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var (
		questions []domain.Question
		err       error
	)
	if topic == "" {
		questions, err = s.questionRepo.FindRandom(ctx, limit)
	} else {
		questions, err = s.questionRepo.FindRandomByTopic(ctx, topic, limit)
	}
	if err != nil {
		logrus.WithField("topic", topic).WithError(err).Error("Failed to sample questions")
		return nil, ErrInternalServer
	}
	return questions, nil
}
