// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"lecture-deck-api/internal/domain/entity"
)

// LectureFilter 讲座过滤条件
type LectureFilter struct {
	Status entity.LectureStatus
	Search string
}

// LectureRepository 讲座仓储接口
type LectureRepository interface {
	// Create 创建讲座
	Create(ctx context.Context, lecture *entity.Lecture) error

	// GetByID 根据 ID 获取讲座
	GetByID(ctx context.Context, id string) (*entity.Lecture, error)

	// Update 更新讲座
	Update(ctx context.Context, lecture *entity.Lecture) error

	// Delete 删除讲座
	Delete(ctx context.Context, id string) error

	// List 获取讲座列表（按状态过滤）
	List(ctx context.Context, filter *LectureFilter, pagination Pagination) (*PagedResult[*entity.Lecture], error)

	// UpdateStatus 更新讲座状态
	UpdateStatus(ctx context.Context, id string, status entity.LectureStatus) error

	// AppendImageURL 追加图片地址
	AppendImageURL(ctx context.Context, id, url string) error
}
