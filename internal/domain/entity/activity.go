// Package entity 定义领域实体
package entity

import (
	"encoding/json"
	"time"
)

// ActivityKind 活动题型
type ActivityKind string

const (
	ActivityKindMultipleChoice ActivityKind = "multiple_choice"
	ActivityKindFreeText       ActivityKind = "free_text"
)

// ActivityOption 选择题选项
type ActivityOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Activity 讲座活动（测验题）实体
type Activity struct {
	ID            string           `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LectureID     string           `json:"lecture_id" gorm:"type:uuid;index;not null"`
	SeqNum        int              `json:"seq_num" gorm:"not null"`
	QuestionText  string           `json:"question_text" gorm:"type:text;not null"`
	Kind          ActivityKind     `json:"kind" gorm:"type:varchar(50);default:'multiple_choice'"`
	Options       []ActivityOption `json:"options,omitempty" gorm:"type:jsonb;serializer:json"`
	CorrectAnswer string           `json:"correct_answer,omitempty" gorm:"type:text"`
	CreatedAt     time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Activity) TableName() string {
	return "activities"
}

// NewActivity 创建新活动
func NewActivity(lectureID string, seqNum int, questionText string, kind ActivityKind) *Activity {
	now := time.Now()
	return &Activity{
		LectureID:    lectureID,
		SeqNum:       seqNum,
		QuestionText: questionText,
		Kind:         kind,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasCorrectOption 检查选择题是否至少有一个正确选项
func (a *Activity) HasCorrectOption() bool {
	for _, opt := range a.Options {
		if opt.Correct {
			return true
		}
	}
	return false
}

// AnswerShapeJSON 序列化答案结构（用于任务载荷）
func (a *Activity) AnswerShapeJSON() (json.RawMessage, error) {
	switch a.Kind {
	case ActivityKindMultipleChoice:
		return json.Marshal(a.Options)
	default:
		return json.Marshal(a.CorrectAnswer)
	}
}
