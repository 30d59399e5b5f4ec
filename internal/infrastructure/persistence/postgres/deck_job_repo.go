package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/domain/repository"
)

// DeckJobRepository 幻灯片构建任务仓储实现
type DeckJobRepository struct {
	client *Client
}

// NewDeckJobRepository 创建任务仓储
func NewDeckJobRepository(client *Client) *DeckJobRepository {
	return &DeckJobRepository{client: client}
}

// Create 创建任务
func (r *DeckJobRepository) Create(ctx context.Context, job *entity.DeckJob) error {
	ctx, span := tracer.Start(ctx, "postgres.DeckJobRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(job).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create deck job: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取任务
func (r *DeckJobRepository) GetByID(ctx context.Context, id string) (*entity.DeckJob, error) {
	ctx, span := tracer.Start(ctx, "postgres.DeckJobRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var job entity.DeckJob
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get deck job: %w", err)
	}
	return &job, nil
}

// Update 更新任务
func (r *DeckJobRepository) Update(ctx context.Context, job *entity.DeckJob) error {
	ctx, span := tracer.Start(ctx, "postgres.DeckJobRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(job).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update deck job: %w", err)
	}
	return nil
}

// ListByLecture 获取讲座的任务列表
func (r *DeckJobRepository) ListByLecture(ctx context.Context, lectureID string, pagination repository.Pagination) (*repository.PagedResult[*entity.DeckJob], error) {
	ctx, span := tracer.Start(ctx, "postgres.DeckJobRepository.ListByLecture")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.DeckJob{}).Where("lecture_id = ?", lectureID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count deck jobs: %w", err)
	}

	var jobs []*entity.DeckJob
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&jobs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list deck jobs: %w", err)
	}

	return repository.NewPagedResult(jobs, total, pagination), nil
}

// MarkRunning 标记任务开始执行
func (r *DeckJobRepository) MarkRunning(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.DeckJobRepository.MarkRunning")
	defer span.End()

	db := getDB(ctx, r.client.db)
	now := time.Now()
	if err := db.Model(&entity.DeckJob{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     entity.JobStatusRunning,
		"started_at": &now,
	}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to mark deck job running: %w", err)
	}
	return nil
}

// SetResult 写入任务结果（成功或失败）
func (r *DeckJobRepository) SetResult(ctx context.Context, id string, result json.RawMessage, slideCount int, errMsg string) error {
	ctx, span := tracer.Start(ctx, "postgres.DeckJobRepository.SetResult")
	defer span.End()

	now := time.Now()
	updates := map[string]interface{}{
		"completed_at": &now,
	}
	if errMsg != "" {
		updates["status"] = entity.JobStatusFailed
		updates["error_message"] = errMsg
	} else {
		updates["status"] = entity.JobStatusCompleted
		updates["output_result"] = result
		updates["slide_count"] = slideCount
	}

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.DeckJob{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set deck job result: %w", err)
	}
	return nil
}

// Cancel 取消任务（仅限未开始的任务）
func (r *DeckJobRepository) Cancel(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.DeckJobRepository.Cancel")
	defer span.End()

	db := getDB(ctx, r.client.db)
	res := db.Model(&entity.DeckJob{}).
		Where("id = ? AND status = ?", id, entity.JobStatusPending).
		Update("status", entity.JobStatusCancelled)
	if res.Error != nil {
		span.RecordError(res.Error)
		return fmt.Errorf("failed to cancel deck job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deck job %s is not cancellable", id)
	}
	return nil
}
