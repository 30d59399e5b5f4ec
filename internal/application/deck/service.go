// Package deck 编排幻灯片构建：同步切分、结果缓存与异步任务
package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"lecture-deck-api/internal/application/segmentation"
	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/domain/repository"
	"lecture-deck-api/internal/infrastructure/messaging"
	"lecture-deck-api/internal/infrastructure/persistence/redis"
	apperrors "lecture-deck-api/pkg/errors"
	"lecture-deck-api/pkg/logger"
	"lecture-deck-api/pkg/metrics"
)

// Service 幻灯片构建服务
type Service struct {
	lectures   repository.LectureRepository
	activities repository.ActivityRepository
	jobs       repository.DeckJobRepository
	cache      *redis.Cache
	producer   *messaging.Producer
	engine     *segmentation.Engine
	deckTTL    time.Duration
}

// NewService 创建幻灯片构建服务
func NewService(
	lectures repository.LectureRepository,
	activities repository.ActivityRepository,
	jobs repository.DeckJobRepository,
	cache *redis.Cache,
	producer *messaging.Producer,
	engine *segmentation.Engine,
	deckTTL time.Duration,
) *Service {
	if deckTTL <= 0 {
		deckTTL = 10 * time.Minute
	}
	return &Service{
		lectures:   lectures,
		activities: activities,
		jobs:       jobs,
		cache:      cache,
		producer:   producer,
		engine:     engine,
		deckTTL:    deckTTL,
	}
}

// GetSlides 同步切分讲座内容，结果按讲座版本与配置缓存，
// singleflight 防止缓存击穿
func (s *Service) GetSlides(ctx context.Context, lectureID string, strategy segmentation.Strategy, override *segmentation.Config) ([]segmentation.Slide, error) {
	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load lecture")
	}
	if lecture == nil {
		return nil, apperrors.New(apperrors.CodeLectureNotFound, "lecture not found")
	}

	key := deckCacheKey(lecture, strategy, override)

	loaded := false
	data, err := s.cache.GetOrLoadSafe(ctx, key, s.deckTTL, func() (interface{}, error) {
		loaded = true
		return s.buildSlides(ctx, lecture, strategy, override)
	})
	if err != nil {
		return nil, err
	}

	if loaded {
		metrics.DeckCacheHits.WithLabelValues("miss").Inc()
	} else {
		metrics.DeckCacheHits.WithLabelValues("hit").Inc()
	}

	var slides []segmentation.Slide
	if err := json.Unmarshal(data, &slides); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to decode cached deck")
	}
	return slides, nil
}

func (s *Service) buildSlides(ctx context.Context, lecture *entity.Lecture, strategy segmentation.Strategy, override *segmentation.Config) ([]segmentation.Slide, error) {
	activities, err := s.activities.ListByLecture(ctx, lecture.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load activities")
	}

	slides, err := s.engine.Build(ctx, lecture, activities, strategy, override)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSegmentationFailed, "segmentation failed")
	}
	return slides, nil
}

// EnqueueBuild 创建构建任务并投递到消息流
func (s *Service) EnqueueBuild(ctx context.Context, lectureID string, strategy segmentation.Strategy, override *segmentation.Config) (*entity.DeckJob, error) {
	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load lecture")
	}
	if lecture == nil {
		return nil, apperrors.New(apperrors.CodeLectureNotFound, "lecture not found")
	}

	var rawConfig json.RawMessage
	if override != nil {
		rawConfig, err = json.Marshal(override)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid segmentation config")
		}
	}

	job := entity.NewDeckJob(lectureID, strategy.String(), rawConfig)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create deck job")
	}

	msg := &messaging.DeckBuildMessage{
		JobID:          job.ID,
		LectureID:      lectureID,
		ContentVersion: lecture.Version,
		Strategy:       strategy.String(),
		Config:         rawConfig,
	}
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		msg.RequestID = reqID
	}

	if _, err := s.producer.PublishDeckBuild(ctx, msg); err != nil {
		// 投递失败的任务直接置为失败，避免悬挂在 pending
		if setErr := s.jobs.SetResult(ctx, job.ID, nil, 0, "enqueue failed: "+err.Error()); setErr != nil {
			logger.FromContext(ctx).Error("failed to mark job failed", "error", setErr, "job_id", job.ID)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to enqueue deck build")
	}

	return job, nil
}

// GetJob 查询构建任务
func (s *Service) GetJob(ctx context.Context, jobID string) (*entity.DeckJob, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load job")
	}
	if job == nil {
		return nil, apperrors.New(apperrors.CodeJobNotFound, "job not found")
	}
	return job, nil
}

// CancelJob 取消尚未执行的构建任务
func (s *Service) CancelJob(ctx context.Context, jobID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load job")
	}
	if job == nil {
		return apperrors.New(apperrors.CodeJobNotFound, "job not found")
	}
	if err := s.jobs.Cancel(ctx, jobID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeConflict, "job is not cancellable")
	}
	return nil
}

// ListJobs 查询讲座的构建任务列表
func (s *Service) ListJobs(ctx context.Context, lectureID string, pagination repository.Pagination) (*repository.PagedResult[*entity.DeckJob], error) {
	result, err := s.jobs.ListByLecture(ctx, lectureID, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list jobs")
	}
	return result, nil
}

// InvalidateDeck 使讲座的全部幻灯片缓存失效
func (s *Service) InvalidateDeck(ctx context.Context, lectureID string) {
	if err := s.cache.InvalidateLecture(ctx, lectureID); err != nil {
		logger.FromContext(ctx).Warn("failed to invalidate deck cache", "error", err, "lecture_id", lectureID)
	}
}

// HandleBuildMessage 消费构建消息（工作进程注册的处理器）
//
// 返回错误表示可重试的基础设施故障；业务性失败（讲座被删除、
// 切分失败）记录在任务上并确认消息，不触发重试。
func (s *Service) HandleBuildMessage(ctx context.Context, msg *messaging.Message) error {
	log := logger.FromContext(ctx)

	var payload messaging.DeckBuildMessage
	if err := msg.UnmarshalPayload(&payload); err != nil {
		log.Error("invalid deck build payload", "error", err, "message_id", msg.ID)
		return nil
	}

	job, err := s.jobs.GetByID(ctx, payload.JobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}
	if job == nil {
		log.Warn("deck job not found", "job_id", payload.JobID)
		return nil
	}
	if job.Status == entity.JobStatusCancelled {
		log.Info("deck job cancelled, skipping", "job_id", job.ID)
		return nil
	}

	strategy, err := segmentation.ParseStrategy(payload.Strategy)
	if err != nil {
		return s.failJob(ctx, job.ID, err.Error())
	}

	var override *segmentation.Config
	if len(payload.Config) > 0 {
		var cfg segmentation.Config
		if err := json.Unmarshal(payload.Config, &cfg); err != nil {
			return s.failJob(ctx, job.ID, "invalid config: "+err.Error())
		}
		override = &cfg
	}

	if err := s.jobs.MarkRunning(ctx, job.ID); err != nil {
		return fmt.Errorf("mark job running: %w", err)
	}

	lecture, err := s.lectures.GetByID(ctx, payload.LectureID)
	if err != nil {
		return fmt.Errorf("load lecture: %w", err)
	}
	if lecture == nil {
		return s.failJob(ctx, job.ID, "lecture no longer exists")
	}

	activities, err := s.activities.ListByLecture(ctx, lecture.ID)
	if err != nil {
		return fmt.Errorf("load activities: %w", err)
	}

	slides, err := s.engine.Build(ctx, lecture, activities, strategy, override)
	if err != nil {
		return s.failJob(ctx, job.ID, "segmentation failed: "+err.Error())
	}

	result, err := json.Marshal(slides)
	if err != nil {
		return s.failJob(ctx, job.ID, "encode result: "+err.Error())
	}

	if err := s.jobs.SetResult(ctx, job.ID, result, len(slides), ""); err != nil {
		return fmt.Errorf("store job result: %w", err)
	}

	// 预热幻灯片缓存，失败不影响任务结果
	key := deckCacheKey(lecture, strategy, override)
	if err := s.cache.Set(ctx, key, slides, s.deckTTL); err != nil {
		log.Warn("failed to warm deck cache", "error", err, "lecture_id", lecture.ID)
	}

	log.Info("deck build completed",
		"job_id", job.ID,
		"lecture_id", lecture.ID,
		"slide_count", len(slides),
	)
	return nil
}

func (s *Service) failJob(ctx context.Context, jobID, reason string) error {
	if err := s.jobs.SetResult(ctx, jobID, nil, 0, reason); err != nil {
		return fmt.Errorf("mark job failed: %w", err)
	}
	return nil
}

// deckCacheKey 缓存键：讲座 ID + 内容版本 + 策略 + 配置哈希
func deckCacheKey(l *entity.Lecture, strategy segmentation.Strategy, cfg *segmentation.Config) string {
	return fmt.Sprintf("deck:%s:v%d:%s:%s", l.ID, l.Version, strategy, configHash(cfg))
}

func configHash(cfg *segmentation.Config) string {
	if cfg == nil {
		return "default"
	}
	data, _ := json.Marshal(cfg)
	h := fnv.New32a()
	h.Write(data)
	return fmt.Sprintf("%08x", h.Sum32())
}
