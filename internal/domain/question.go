package domain

import "time"

// Question 表示一道选择题：一个正确答案加最多三个错误答案。
// 比赛期间只读；题目的乱序展示和计时由客户端负责。
type Question struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Text           string `gorm:"type:text;not null" json:"pregunta"`
	CorrectAnswer  string `gorm:"type:text;not null" json:"respuesta_correcta"`
	WrongAnswer1   string `gorm:"type:text;not null" json:"respuesta_incorrecta1"`
	WrongAnswer2   string `gorm:"type:text" json:"respuesta_incorrecta2"`
	WrongAnswer3   string `gorm:"type:text" json:"respuesta_incorrecta3"`
	Topic          string `gorm:"type:varchar(100);index;not null" json:"tematica"`
	Difficulty     string `gorm:"type:varchar(50);not null" json:"dificultad"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}
