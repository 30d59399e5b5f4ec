// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"lecture-deck-api/internal/domain/entity"
)

// ActivityRepository 活动仓储接口
type ActivityRepository interface {
	// Create 创建活动
	Create(ctx context.Context, activity *entity.Activity) error

	// GetByID 根据 ID 获取活动
	GetByID(ctx context.Context, id string) (*entity.Activity, error)

	// Update 更新活动
	Update(ctx context.Context, activity *entity.Activity) error

	// Delete 删除活动
	Delete(ctx context.Context, id string) error

	// ListByLecture 获取讲座活动列表（按序号排序）
	ListByLecture(ctx context.Context, lectureID string) ([]*entity.Activity, error)

	// DeleteByLecture 删除讲座的全部活动
	DeleteByLecture(ctx context.Context, lectureID string) error

	// GetNextSeqNum 获取下一个序号
	GetNextSeqNum(ctx context.Context, lectureID string) (int, error)

	// Reorder 按给定顺序重排活动
	Reorder(ctx context.Context, lectureID string, orderedIDs []string) error
}
