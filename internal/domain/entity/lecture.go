// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// LectureStatus 讲座状态
type LectureStatus string

const (
	LectureStatusDraft     LectureStatus = "draft"
	LectureStatusPublished LectureStatus = "published"
)

// Lecture 讲座实体
type Lecture struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Content     string         `json:"content,omitempty" gorm:"type:text"`
	ImageURLs   pq.StringArray `json:"image_urls,omitempty" gorm:"type:text[]"`
	WordCount   int            `json:"word_count" gorm:"default:0"`
	Status      LectureStatus  `json:"status" gorm:"type:varchar(50);default:'draft';index"`
	Version     int            `json:"version" gorm:"default:1"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
}

// TableName 指定表名
func (Lecture) TableName() string {
	return "lectures"
}

// NewLecture 创建新讲座
func NewLecture(title, description string) *Lecture {
	now := time.Now()
	return &Lecture{
		Title:       title,
		Description: description,
		Status:      LectureStatusDraft,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetContent 设置讲座正文
func (l *Lecture) SetContent(content string) {
	l.Content = content
	l.WordCount = len(strings.Fields(content))
	l.UpdatedAt = time.Now()
}

// Publish 发布讲座
func (l *Lecture) Publish() {
	now := time.Now()
	l.Status = LectureStatusPublished
	l.PublishedAt = &now
	l.UpdatedAt = now
}

// Unpublish 撤回发布
func (l *Lecture) Unpublish() {
	l.Status = LectureStatusDraft
	l.PublishedAt = nil
	l.UpdatedAt = time.Now()
}

// IsPublished 检查讲座是否已发布
func (l *Lecture) IsPublished() bool {
	return l.Status == LectureStatusPublished
}

// AddImageURL 追加图片地址
func (l *Lecture) AddImageURL(url string) {
	l.ImageURLs = append(l.ImageURLs, url)
	l.UpdatedAt = time.Now()
}

// IncrementVersion 增加版本号
func (l *Lecture) IncrementVersion() {
	l.Version++
	l.UpdatedAt = time.Now()
}
