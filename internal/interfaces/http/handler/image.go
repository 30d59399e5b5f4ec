package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"lecture-deck-api/internal/application/lecture"
	"lecture-deck-api/internal/infrastructure/imagehost"
	"lecture-deck-api/internal/interfaces/http/dto"
	"lecture-deck-api/pkg/errors"
	"lecture-deck-api/pkg/logger"
)

// ImageHandler 图片上传处理器
type ImageHandler struct {
	uploader   *imagehost.Client
	lectureSvc *lecture.Service
}

// NewImageHandler 创建图片上传处理器
func NewImageHandler(uploader *imagehost.Client, lectureSvc *lecture.Service) *ImageHandler {
	return &ImageHandler{
		uploader:   uploader,
		lectureSvc: lectureSvc,
	}
}

// UploadImage 上传图片
// @Summary 上传图片
// @Description 将图片转发至外部图床并返回公开地址；提供 lecture_id 时会把地址登记到讲座
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件"
// @Param lecture_id formData string false "关联讲座 ID"
// @Success 201 {object} dto.Response[dto.UploadImageResponse]
// @Failure 400 {object} dto.ErrorResponse "文件缺失或超出大小限制"
// @Failure 503 {object} dto.ErrorResponse "图床服务不可用"
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/images [post]
func (h *ImageHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.BadRequest(c, "missing file field")
		return
	}

	if fileHeader.Size > h.uploader.MaxSize() {
		respondAppError(c, errors.New(errors.CodeUploadFailed,
			fmt.Sprintf("file exceeds size limit of %d bytes", h.uploader.MaxSize())))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error(ctx, "failed to open uploaded file", err)
		dto.InternalError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(ctx, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		logger.Error(ctx, "failed to upload image", err)
		respondAppError(c, errors.Wrap(err, errors.CodeImageHostError, "image host upload failed"))
		return
	}

	lectureID := c.PostForm("lecture_id")
	if lectureID != "" {
		if err := h.lectureSvc.AppendImage(ctx, lectureID, url); err != nil {
			if errors.IsAppError(err) {
				respondAppError(c, errors.AsAppError(err))
				return
			}
			logger.Error(ctx, "failed to attach image to lecture", err)
			dto.InternalError(c, "failed to attach image to lecture")
			return
		}
	}

	dto.Created(c, &dto.UploadImageResponse{
		URL:       url,
		LectureID: lectureID,
	})
}
