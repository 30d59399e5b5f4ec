package handler

import (
	"github.com/gin-gonic/gin"

	"lecture-deck-api/internal/application/lecture"
	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/interfaces/http/dto"
	"lecture-deck-api/pkg/errors"
	"lecture-deck-api/pkg/logger"
)

// ActivityHandler 活动处理器
type ActivityHandler struct {
	lectureSvc *lecture.Service
}

// NewActivityHandler 创建活动处理器
func NewActivityHandler(lectureSvc *lecture.Service) *ActivityHandler {
	return &ActivityHandler{
		lectureSvc: lectureSvc,
	}
}

// CreateActivity 创建活动
// @Summary 创建活动
// @Description 在讲座末尾追加一个互动活动（选择题或开放问答）
// @Tags Activities
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Param request body dto.CreateActivityRequest true "创建活动请求"
// @Success 201 {object} dto.Response[dto.ActivityResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/activities [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	a, err := h.lectureSvc.CreateActivity(ctx, lectureID, lecture.ActivityInput{
		QuestionText:  req.QuestionText,
		Kind:          entity.ActivityKind(req.Kind),
		Options:       dto.ToEntityOptions(req.Options),
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to create activity", err)
		dto.InternalError(c, "failed to create activity")
		return
	}

	dto.Created(c, dto.ToActivityResponse(a))
}

// ListActivities 获取活动列表
// @Summary 获取活动列表
// @Description 按顺序号获取讲座的全部活动
// @Tags Activities
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Success 200 {object} dto.Response[dto.ActivityListResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	activities, err := h.lectureSvc.ListActivities(ctx, lectureID)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to list activities", err)
		dto.InternalError(c, "failed to list activities")
		return
	}

	dto.Success(c, dto.ToActivityListResponse(activities))
}

// GetActivity 获取活动详情
// @Summary 获取活动详情
// @Description 获取指定活动的完整信息
// @Tags Activities
// @Accept json
// @Produce json
// @Param aid path string true "活动 ID"
// @Success 200 {object} dto.Response[dto.ActivityResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/activities/{aid} [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	ctx := c.Request.Context()
	activityID := dto.BindActivityID(c)

	a, err := h.lectureSvc.GetActivity(ctx, activityID)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to get activity", err)
		dto.InternalError(c, "failed to get activity")
		return
	}

	dto.Success(c, dto.ToActivityResponse(a))
}

// UpdateActivity 更新活动
// @Summary 更新活动
// @Description 更新活动的题干、类型、选项或参考答案
// @Tags Activities
// @Accept json
// @Produce json
// @Param aid path string true "活动 ID"
// @Param request body dto.UpdateActivityRequest true "更新活动请求"
// @Success 200 {object} dto.Response[dto.ActivityResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/activities/{aid} [put]
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	ctx := c.Request.Context()
	activityID := dto.BindActivityID(c)

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	a, err := h.lectureSvc.UpdateActivity(ctx, activityID, lecture.ActivityInput{
		QuestionText:  req.QuestionText,
		Kind:          entity.ActivityKind(req.Kind),
		Options:       dto.ToEntityOptions(req.Options),
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to update activity", err)
		dto.InternalError(c, "failed to update activity")
		return
	}

	dto.Success(c, dto.ToActivityResponse(a))
}

// DeleteActivity 删除活动
// @Summary 删除活动
// @Description 删除指定活动并清理幻灯片缓存
// @Tags Activities
// @Accept json
// @Produce json
// @Param aid path string true "活动 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/activities/{aid} [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	ctx := c.Request.Context()
	activityID := dto.BindActivityID(c)

	if err := h.lectureSvc.DeleteActivity(ctx, activityID); err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to delete activity", err)
		dto.InternalError(c, "failed to delete activity")
		return
	}

	dto.NoContent(c)
}

// ReorderActivities 活动重排
// @Summary 活动重排
// @Description 按请求给出的 ID 顺序重新分配讲座活动的顺序号
// @Tags Activities
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Param request body dto.ReorderActivitiesRequest true "活动重排请求"
// @Success 200 {object} dto.Response[dto.ActivityListResponse]
// @Failure 400 {object} dto.ErrorResponse "ID 列表与讲座活动不一致"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/activities/reorder [post]
func (h *ActivityHandler) ReorderActivities(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	var req dto.ReorderActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.lectureSvc.ReorderActivities(ctx, lectureID, req.ActivityIDs); err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to reorder activities", err)
		dto.InternalError(c, "failed to reorder activities")
		return
	}

	activities, err := h.lectureSvc.ListActivities(ctx, lectureID)
	if err != nil {
		logger.Error(ctx, "failed to list activities after reorder", err)
		dto.InternalError(c, "failed to list activities")
		return
	}

	dto.Success(c, dto.ToActivityListResponse(activities))
}
