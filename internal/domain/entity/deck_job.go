// Package entity 定义领域实体
package entity

import (
	"encoding/json"
	"time"
)

// JobStatus 任务状态
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// DeckJob 异步幻灯片构建任务
type DeckJob struct {
	ID           string          `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LectureID    string          `json:"lecture_id" gorm:"type:uuid;index;not null"`
	Strategy     string          `json:"strategy" gorm:"type:varchar(50);not null"`
	InputConfig  json.RawMessage `json:"input_config,omitempty" gorm:"type:jsonb"`
	Status       JobStatus       `json:"status" gorm:"type:varchar(50);default:'pending';index"`
	OutputResult json.RawMessage `json:"output_result,omitempty" gorm:"type:jsonb"`
	SlideCount   int             `json:"slide_count" gorm:"default:0"`
	ErrorMessage string          `json:"error_message,omitempty" gorm:"type:text"`
	DurationMs   int             `json:"duration_ms,omitempty"`
	RetryCount   int             `json:"retry_count" gorm:"default:0"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// TableName 指定表名
func (DeckJob) TableName() string {
	return "deck_jobs"
}

// NewDeckJob 创建新任务
func NewDeckJob(lectureID, strategy string, inputConfig json.RawMessage) *DeckJob {
	return &DeckJob{
		LectureID:   lectureID,
		Strategy:    strategy,
		InputConfig: inputConfig,
		Status:      JobStatusPending,
		RetryCount:  0,
		CreatedAt:   time.Now(),
	}
}

// Start 开始执行任务
func (j *DeckJob) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
}

// Complete 完成任务
func (j *DeckJob) Complete(result json.RawMessage, slideCount int) {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.OutputResult = result
	j.SlideCount = slideCount
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}

// Fail 任务失败
func (j *DeckJob) Fail(errMsg string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = errMsg
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}

// Retry 重试任务
func (j *DeckJob) Retry() {
	j.RetryCount++
	j.Status = JobStatusPending
	j.StartedAt = nil
	j.CompletedAt = nil
	j.ErrorMessage = ""
}

// CanRetry 检查是否可以重试
func (j *DeckJob) CanRetry(maxRetries int) bool {
	return j.RetryCount < maxRetries && j.Status == JobStatusFailed
}
