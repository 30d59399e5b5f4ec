// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"encoding/json"

	"lecture-deck-api/internal/domain/entity"
)

// DeckJobRepository 幻灯片构建任务仓储接口
type DeckJobRepository interface {
	// Create 创建任务
	Create(ctx context.Context, job *entity.DeckJob) error

	// GetByID 根据 ID 获取任务
	GetByID(ctx context.Context, id string) (*entity.DeckJob, error)

	// Update 更新任务
	Update(ctx context.Context, job *entity.DeckJob) error

	// ListByLecture 获取讲座的任务列表
	ListByLecture(ctx context.Context, lectureID string, pagination Pagination) (*PagedResult[*entity.DeckJob], error)

	// MarkRunning 标记任务开始执行
	MarkRunning(ctx context.Context, id string) error

	// SetResult 写入任务结果（成功或失败）
	SetResult(ctx context.Context, id string, result json.RawMessage, slideCount int, errMsg string) error

	// Cancel 取消任务
	Cancel(ctx context.Context, id string) error
}
