// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"lecture-deck-api/internal/domain/entity"
)

// ActivityOptionDTO 选择题选项
type ActivityOptionDTO struct {
	Text    string `json:"text" binding:"required"`
	Correct bool   `json:"correct"`
}

// CreateActivityRequest 创建活动请求
type CreateActivityRequest struct {
	QuestionText  string              `json:"question_text" binding:"required"`
	Kind          string              `json:"kind" binding:"omitempty,oneof=multiple_choice free_text"`
	Options       []ActivityOptionDTO `json:"options,omitempty"`
	CorrectAnswer string              `json:"correct_answer,omitempty"`
}

// UpdateActivityRequest 更新活动请求
type UpdateActivityRequest struct {
	QuestionText  string              `json:"question_text" binding:"required"`
	Kind          string              `json:"kind" binding:"omitempty,oneof=multiple_choice free_text"`
	Options       []ActivityOptionDTO `json:"options,omitempty"`
	CorrectAnswer string              `json:"correct_answer,omitempty"`
}

// ReorderActivitiesRequest 活动重排请求
type ReorderActivitiesRequest struct {
	ActivityIDs []string `json:"activity_ids" binding:"required,min=1"`
}

// ActivityResponse 活动响应
type ActivityResponse struct {
	ID            string              `json:"id"`
	LectureID     string              `json:"lecture_id"`
	SeqNum        int                 `json:"seq_num"`
	QuestionText  string              `json:"question_text"`
	Kind          string              `json:"kind"`
	Options       []ActivityOptionDTO `json:"options,omitempty"`
	CorrectAnswer string              `json:"correct_answer,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ActivityListResponse 活动列表响应
type ActivityListResponse struct {
	Activities []*ActivityResponse `json:"activities"`
}

// ToEntityOptions 将选项 DTO 转换为实体选项
func ToEntityOptions(options []ActivityOptionDTO) []entity.ActivityOption {
	if len(options) == 0 {
		return nil
	}
	out := make([]entity.ActivityOption, 0, len(options))
	for _, o := range options {
		out = append(out, entity.ActivityOption{Text: o.Text, Correct: o.Correct})
	}
	return out
}

// ToActivityResponse 将领域实体转换为响应 DTO
func ToActivityResponse(a *entity.Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	resp := &ActivityResponse{
		ID:            a.ID,
		LectureID:     a.LectureID,
		SeqNum:        a.SeqNum,
		QuestionText:  a.QuestionText,
		Kind:          string(a.Kind),
		CorrectAnswer: a.CorrectAnswer,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	for _, o := range a.Options {
		resp.Options = append(resp.Options, ActivityOptionDTO{Text: o.Text, Correct: o.Correct})
	}
	return resp
}

// ToActivityListResponse 将实体列表转换为列表响应
func ToActivityListResponse(activities []*entity.Activity) *ActivityListResponse {
	resp := &ActivityListResponse{
		Activities: make([]*ActivityResponse, 0, len(activities)),
	}
	for _, a := range activities {
		resp.Activities = append(resp.Activities, ToActivityResponse(a))
	}
	return resp
}
