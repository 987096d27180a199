package http

import (
	"net/http"
	"strconv"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// QuestionHandler 封装了题库维护的 HTTP 处理逻辑
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler 创建 QuestionHandler 实例
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// CreateQuestionRequest 定义新建题目请求的结构体。
// 字段名沿用客户端的西语命名。
type CreateQuestionRequest struct {
	Text          string `json:"pregunta" binding:"required"`
	CorrectAnswer string `json:"respuesta_correcta" binding:"required"`
	WrongAnswer1  string `json:"respuesta_incorrecta1" binding:"required"`
	WrongAnswer2  string `json:"respuesta_incorrecta2"`
	WrongAnswer3  string `json:"respuesta_incorrecta3"`
	Topic         string `json:"tematica" binding:"required"`
	Difficulty    string `json:"dificultad" binding:"required"`
}

// Create 处理新建题目的请求
func (h *QuestionHandler) Create(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateQuestion: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	question := &domain.Question{
		Text:          req.Text,
		CorrectAnswer: req.CorrectAnswer,
		WrongAnswer1:  req.WrongAnswer1,
		WrongAnswer2:  req.WrongAnswer2,
		WrongAnswer3:  req.WrongAnswer3,
		Topic:         req.Topic,
		Difficulty:    req.Difficulty,
	}
	if err := h.questionService.CreateQuestion(c.Request.Context(), question); err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("question_id", question.ID).Info("Handler.CreateQuestion: Question created")
	SuccessResponse(c, http.StatusOK, gin.H{
		"message":     "Question created successfully",
		"question_id": question.ID,
	})
}

// Sample 随机抽取一批题目 (可按主题过滤)，用于预览和练习模式
func (h *QuestionHandler) Sample(c *gin.Context) {
	topic := c.Query("tematica")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	questions, err := h.questionService.SampleQuestions(c.Request.Context(), topic, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"preguntas": questions})
}
