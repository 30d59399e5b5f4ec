package handler

import (
	"github.com/gin-gonic/gin"

	"lecture-deck-api/internal/application/lecture"
	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/domain/repository"
	"lecture-deck-api/internal/interfaces/http/dto"
	"lecture-deck-api/pkg/errors"
	"lecture-deck-api/pkg/logger"
)

// LectureHandler 讲座处理器
type LectureHandler struct {
	lectureSvc *lecture.Service
}

// NewLectureHandler 创建讲座处理器
func NewLectureHandler(lectureSvc *lecture.Service) *LectureHandler {
	return &LectureHandler{
		lectureSvc: lectureSvc,
	}
}

// respondAppError 统一输出业务错误
func respondAppError(c *gin.Context, appErr *errors.AppError) {
	c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
		Code:    appErr.HTTPStatus,
		Message: appErr.Message,
		TraceID: c.GetString("trace_id"),
	})
}

// CreateLecture 创建讲座
// @Summary 创建讲座
// @Description 创建一个新的讲座，正文可以在创建时提供，也可以之后更新
// @Tags Lectures
// @Accept json
// @Produce json
// @Param request body dto.CreateLectureRequest true "创建讲座请求"
// @Success 201 {object} dto.Response[dto.LectureResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures [post]
func (h *LectureHandler) CreateLecture(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	l, err := h.lectureSvc.Create(ctx, lecture.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to create lecture", err)
		dto.InternalError(c, "failed to create lecture")
		return
	}

	dto.Created(c, dto.ToLectureResponse(l))
}

// GetLecture 获取讲座详情
// @Summary 获取讲座详情
// @Description 获取指定讲座的完整信息，包括正文
// @Tags Lectures
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Success 200 {object} dto.Response[dto.LectureResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid} [get]
func (h *LectureHandler) GetLecture(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	l, err := h.lectureSvc.Get(ctx, lectureID)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to get lecture", err)
		dto.InternalError(c, "failed to get lecture")
		return
	}

	dto.Success(c, dto.ToLectureResponse(l))
}

// ListLectures 获取讲座列表
// @Summary 获取讲座列表
// @Description 分页获取讲座列表，支持按状态过滤和标题搜索
// @Tags Lectures
// @Accept json
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param status query string false "状态过滤" Enums(draft, published)
// @Param search query string false "标题搜索"
// @Success 200 {object} dto.Response[dto.LectureListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures [get]
func (h *LectureHandler) ListLectures(c *gin.Context) {
	ctx := c.Request.Context()
	page := dto.BindPage(c)

	filter := &repository.LectureFilter{
		Status: entity.LectureStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	result, err := h.lectureSvc.List(ctx, filter, repository.Pagination{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		logger.Error(ctx, "failed to list lectures", err)
		dto.InternalError(c, "failed to list lectures")
		return
	}

	resp := dto.ToLectureListResponse(result.Items)
	dto.SuccessWithPage(c, resp, dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// UpdateLecture 更新讲座
// @Summary 更新讲座
// @Description 更新讲座标题、描述或正文；正文变更会提升内容版本。已发布的讲座不允许修改正文
// @Tags Lectures
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Param request body dto.UpdateLectureRequest true "更新讲座请求"
// @Success 200 {object} dto.Response[dto.LectureResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "讲座已发布"
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid} [put]
func (h *LectureHandler) UpdateLecture(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	var req dto.UpdateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	l, err := h.lectureSvc.Update(ctx, lectureID, lecture.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to update lecture", err)
		dto.InternalError(c, "failed to update lecture")
		return
	}

	dto.Success(c, dto.ToLectureResponse(l))
}

// DeleteLecture 删除讲座
// @Summary 删除讲座
// @Description 删除讲座及其全部活动，同时清理幻灯片缓存
// @Tags Lectures
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid} [delete]
func (h *LectureHandler) DeleteLecture(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	if err := h.lectureSvc.Delete(ctx, lectureID); err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to delete lecture", err)
		dto.InternalError(c, "failed to delete lecture")
		return
	}

	dto.NoContent(c)
}

// PublishLecture 发布讲座
// @Summary 发布讲座
// @Description 将讲座置为已发布状态
// @Tags Lectures
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Success 200 {object} dto.Response[dto.LectureResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/publish [post]
func (h *LectureHandler) PublishLecture(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	l, err := h.lectureSvc.Publish(ctx, lectureID)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to publish lecture", err)
		dto.InternalError(c, "failed to publish lecture")
		return
	}

	dto.Success(c, dto.ToLectureResponse(l))
}

// UnpublishLecture 撤回发布
// @Summary 撤回发布
// @Description 将讲座退回草稿状态
// @Tags Lectures
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Success 200 {object} dto.Response[dto.LectureResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/unpublish [post]
func (h *LectureHandler) UnpublishLecture(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	l, err := h.lectureSvc.Unpublish(ctx, lectureID)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to unpublish lecture", err)
		dto.InternalError(c, "failed to unpublish lecture")
		return
	}

	dto.Success(c, dto.ToLectureResponse(l))
}
