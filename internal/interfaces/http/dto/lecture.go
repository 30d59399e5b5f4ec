// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"lecture-deck-api/internal/domain/entity"
)

// CreateLectureRequest 创建讲座请求
type CreateLectureRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

// UpdateLectureRequest 更新讲座请求，空字段保持不变
type UpdateLectureRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
}

// LectureResponse 讲座响应
type LectureResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	ImageURLs   []string   `json:"image_urls,omitempty"`
	WordCount   int        `json:"word_count"`
	Status      string     `json:"status"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// LectureListResponse 讲座列表响应
type LectureListResponse struct {
	Lectures []*LectureResponse `json:"lectures"`
}

// ToLectureResponse 将领域实体转换为响应 DTO
func ToLectureResponse(l *entity.Lecture) *LectureResponse {
	if l == nil {
		return nil
	}
	return &LectureResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Content:     l.Content,
		ImageURLs:   l.ImageURLs,
		WordCount:   l.WordCount,
		Status:      string(l.Status),
		Version:     l.Version,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
		PublishedAt: l.PublishedAt,
	}
}

// ToLectureListResponse 将实体列表转换为列表响应
func ToLectureListResponse(lectures []*entity.Lecture) *LectureListResponse {
	resp := &LectureListResponse{
		Lectures: make([]*LectureResponse, 0, len(lectures)),
	}
	for _, l := range lectures {
		resp.Lectures = append(resp.Lectures, ToLectureResponse(l))
	}
	return resp
}
