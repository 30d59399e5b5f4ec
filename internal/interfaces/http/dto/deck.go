// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"lecture-deck-api/internal/application/segmentation"
	"lecture-deck-api/internal/domain/entity"
)

// SlideResponse 幻灯片响应
type SlideResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Title       string `json:"title,omitempty"`
	Body        string `json:"body,omitempty"`
	ImageRef    string `json:"image_ref,omitempty"`
	ActivityRef string `json:"activity_ref,omitempty"`
}

// DeckResponse 幻灯片序列响应
type DeckResponse struct {
	LectureID string           `json:"lecture_id"`
	Strategy  string           `json:"strategy"`
	Slides    []*SlideResponse `json:"slides"`
}

// ToDeckResponse 将切分结果转换为响应 DTO
func ToDeckResponse(lectureID string, strategy segmentation.Strategy, slides []segmentation.Slide) *DeckResponse {
	resp := &DeckResponse{
		LectureID: lectureID,
		Strategy:  strategy.String(),
		Slides:    make([]*SlideResponse, 0, len(slides)),
	}
	for _, s := range slides {
		resp.Slides = append(resp.Slides, &SlideResponse{
			ID:          s.ID,
			Kind:        string(s.Kind),
			Title:       s.Title,
			Body:        s.Body,
			ImageRef:    s.ImageRef,
			ActivityRef: s.ActivityRef,
		})
	}
	return resp
}

// BindSegmentationConfig 从查询参数绑定切分配置覆盖，
// 未提供任何参数时返回 nil（使用服务端默认配置）
func BindSegmentationConfig(c *gin.Context) *segmentation.Config {
	maxWords := parseIntWithDefault(c.Query("max_words"), 0)
	minSlides := parseIntWithDefault(c.Query("min_slides"), 0)
	maxSlides := parseIntWithDefault(c.Query("max_slides"), 0)

	if maxWords == 0 && minSlides == 0 && maxSlides == 0 {
		return nil
	}
	return &segmentation.Config{
		MaxWordsPerSlide: maxWords,
		MinSlides:        minSlides,
		MaxSlides:        maxSlides,
	}
}

// CreateDeckJobRequest 创建构建任务请求
type CreateDeckJobRequest struct {
	Strategy string               `json:"strategy" binding:"omitempty,oneof=smart manual custom simple"`
	Config   *segmentation.Config `json:"config,omitempty"`
}

// DeckJobResponse 构建任务响应
type DeckJobResponse struct {
	ID           string          `json:"id"`
	LectureID    string          `json:"lecture_id"`
	Strategy     string          `json:"strategy"`
	Status       string          `json:"status"`
	Result       json.RawMessage `json:"result,omitempty"`
	SlideCount   int             `json:"slide_count"`
	ErrorMessage string          `json:"error_message,omitempty"`
	DurationMs   int             `json:"duration_ms,omitempty"`
	RetryCount   int             `json:"retry_count"`
	CreatedAt    time.Time       `json:"created_at"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// DeckJobListResponse 构建任务列表响应
type DeckJobListResponse struct {
	Jobs []*DeckJobResponse `json:"jobs"`
}

// ToDeckJobResponse 将领域实体转换为响应 DTO
func ToDeckJobResponse(j *entity.DeckJob) *DeckJobResponse {
	if j == nil {
		return nil
	}
	return &DeckJobResponse{
		ID:           j.ID,
		LectureID:    j.LectureID,
		Strategy:     j.Strategy,
		Status:       string(j.Status),
		Result:       j.OutputResult,
		SlideCount:   j.SlideCount,
		ErrorMessage: j.ErrorMessage,
		DurationMs:   j.DurationMs,
		RetryCount:   j.RetryCount,
		CreatedAt:    j.CreatedAt,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
	}
}

// ToDeckJobListResponse 将实体列表转换为列表响应
func ToDeckJobListResponse(jobs []*entity.DeckJob) *DeckJobListResponse {
	resp := &DeckJobListResponse{
		Jobs: make([]*DeckJobResponse, 0, len(jobs)),
	}
	for _, j := range jobs {
		resp.Jobs = append(resp.Jobs, ToDeckJobResponse(j))
	}
	return resp
}

// UploadImageResponse 图片上传响应
type UploadImageResponse struct {
	URL       string `json:"url"`
	LectureID string `json:"lecture_id,omitempty"`
}
