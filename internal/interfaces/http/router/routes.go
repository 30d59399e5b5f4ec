// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"lecture-deck-api/internal/interfaces/http/handler"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	lectureHandler *handler.LectureHandler,
	activityHandler *handler.ActivityHandler,
	deckHandler *handler.DeckHandler,
	imageHandler *handler.ImageHandler,
) {
	// 讲座管理
	lectures := v1.Group("/lectures")
	{
		lectures.GET("", lectureHandler.ListLectures)
		lectures.POST("", lectureHandler.CreateLecture)
		lectures.GET("/:lid", lectureHandler.GetLecture)
		lectures.PUT("/:lid", lectureHandler.UpdateLecture)
		lectures.DELETE("/:lid", lectureHandler.DeleteLecture)
		lectures.POST("/:lid/publish", lectureHandler.PublishLecture)
		lectures.POST("/:lid/unpublish", lectureHandler.UnpublishLecture)

		// 讲座下的活动
		lectures.GET("/:lid/activities", activityHandler.ListActivities)
		lectures.POST("/:lid/activities", activityHandler.CreateActivity)
		lectures.POST("/:lid/activities/reorder", activityHandler.ReorderActivities)

		// 幻灯片与构建任务
		lectures.GET("/:lid/slides", deckHandler.GetSlides)
		lectures.GET("/:lid/decks", deckHandler.ListDeckJobs)
		lectures.POST("/:lid/decks", deckHandler.CreateDeckJob)
	}

	// 活动管理
	activities := v1.Group("/activities")
	{
		activities.GET("/:aid", activityHandler.GetActivity)
		activities.PUT("/:aid", activityHandler.UpdateActivity)
		activities.DELETE("/:aid", activityHandler.DeleteActivity)
	}

	// 构建任务管理
	jobs := v1.Group("/jobs")
	{
		jobs.GET("/:jid", deckHandler.GetDeckJob)
		jobs.DELETE("/:jid", deckHandler.CancelDeckJob)
	}

	// 图片上传
	images := v1.Group("/images")
	{
		images.POST("", imageHandler.UploadImage)
	}
}
