package handler

import (
	"github.com/gin-gonic/gin"

	"lecture-deck-api/internal/application/deck"
	"lecture-deck-api/internal/application/segmentation"
	"lecture-deck-api/internal/domain/repository"
	"lecture-deck-api/internal/interfaces/http/dto"
	"lecture-deck-api/pkg/errors"
	"lecture-deck-api/pkg/logger"
)

// DeckHandler 幻灯片处理器
type DeckHandler struct {
	deckSvc *deck.Service
}

// NewDeckHandler 创建幻灯片处理器
func NewDeckHandler(deckSvc *deck.Service) *DeckHandler {
	return &DeckHandler{
		deckSvc: deckSvc,
	}
}

// GetSlides 获取幻灯片
// @Summary 获取幻灯片
// @Description 将讲座正文切分为幻灯片并返回；结果按内容版本和切分配置缓存
// @Tags Decks
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Param strategy query string false "切分策略" Enums(smart, manual, custom, simple) default(smart)
// @Param max_words query int false "单张幻灯片最大词数"
// @Param min_slides query int false "最少幻灯片数"
// @Param max_slides query int false "最多幻灯片数"
// @Success 200 {object} dto.Response[dto.DeckResponse]
// @Failure 400 {object} dto.ErrorResponse "未知的切分策略"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/slides [get]
func (h *DeckHandler) GetSlides(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	strategy, err := segmentation.ParseStrategy(c.Query("strategy"))
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}
	override := dto.BindSegmentationConfig(c)

	slides, err := h.deckSvc.GetSlides(ctx, lectureID, strategy, override)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to build slides", err)
		dto.InternalError(c, "failed to build slides")
		return
	}

	dto.Success(c, dto.ToDeckResponse(lectureID, strategy, slides))
}

// CreateDeckJob 创建异步构建任务
// @Summary 创建异步构建任务
// @Description 提交一个异步的幻灯片构建任务，任务完成后结果写入任务记录并预热缓存
// @Tags Decks
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Param request body dto.CreateDeckJobRequest true "创建构建任务请求"
// @Success 202 {object} dto.Response[dto.DeckJobResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/decks [post]
func (h *DeckHandler) CreateDeckJob(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)

	var req dto.CreateDeckJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	strategy, err := segmentation.ParseStrategy(req.Strategy)
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	job, err := h.deckSvc.EnqueueBuild(ctx, lectureID, strategy, req.Config)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to enqueue deck build", err)
		dto.InternalError(c, "failed to enqueue deck build")
		return
	}

	dto.Accepted(c, dto.ToDeckJobResponse(job))
}

// ListDeckJobs 获取构建任务列表
// @Summary 获取构建任务列表
// @Description 分页获取讲座的幻灯片构建任务，按创建时间倒序
// @Tags Decks
// @Accept json
// @Produce json
// @Param lid path string true "讲座 ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.Response[dto.DeckJobListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/lectures/{lid}/decks [get]
func (h *DeckHandler) ListDeckJobs(c *gin.Context) {
	ctx := c.Request.Context()
	lectureID := dto.BindLectureID(c)
	page := dto.BindPage(c)

	result, err := h.deckSvc.ListJobs(ctx, lectureID, repository.Pagination{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		logger.Error(ctx, "failed to list deck jobs", err)
		dto.InternalError(c, "failed to list deck jobs")
		return
	}

	resp := dto.ToDeckJobListResponse(result.Items)
	dto.SuccessWithPage(c, resp, dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// GetDeckJob 获取构建任务详情
// @Summary 获取构建任务详情
// @Description 获取指定构建任务的状态和结果
// @Tags Decks
// @Accept json
// @Produce json
// @Param jid path string true "任务 ID"
// @Success 200 {object} dto.Response[dto.DeckJobResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/jobs/{jid} [get]
func (h *DeckHandler) GetDeckJob(c *gin.Context) {
	ctx := c.Request.Context()
	jobID := dto.BindJobID(c)

	job, err := h.deckSvc.GetJob(ctx, jobID)
	if err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to get deck job", err)
		dto.InternalError(c, "failed to get deck job")
		return
	}

	dto.Success(c, dto.ToDeckJobResponse(job))
}

// CancelDeckJob 取消构建任务
// @Summary 取消构建任务
// @Description 取消一个尚未开始执行的构建任务
// @Tags Decks
// @Accept json
// @Produce json
// @Param jid path string true "任务 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "任务已开始执行"
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/jobs/{jid} [delete]
func (h *DeckHandler) CancelDeckJob(c *gin.Context) {
	ctx := c.Request.Context()
	jobID := dto.BindJobID(c)

	if err := h.deckSvc.CancelJob(ctx, jobID); err != nil {
		if errors.IsAppError(err) {
			respondAppError(c, errors.AsAppError(err))
			return
		}
		logger.Error(ctx, "failed to cancel deck job", err)
		dto.InternalError(c, "failed to cancel deck job")
		return
	}

	dto.NoContent(c)
}
