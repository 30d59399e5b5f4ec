// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/domain/repository"
)

// LectureRepository 讲座仓储实现
type LectureRepository struct {
	client *Client
}

// NewLectureRepository 创建讲座仓储
func NewLectureRepository(client *Client) *LectureRepository {
	return &LectureRepository{client: client}
}

// Create 创建讲座
func (r *LectureRepository) Create(ctx context.Context, lecture *entity.Lecture) error {
	ctx, span := tracer.Start(ctx, "postgres.LectureRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(lecture).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create lecture: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取讲座
func (r *LectureRepository) GetByID(ctx context.Context, id string) (*entity.Lecture, error) {
	ctx, span := tracer.Start(ctx, "postgres.LectureRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var lecture entity.Lecture
	if err := db.First(&lecture, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get lecture: %w", err)
	}
	return &lecture, nil
}

// Update 更新讲座
func (r *LectureRepository) Update(ctx context.Context, lecture *entity.Lecture) error {
	ctx, span := tracer.Start(ctx, "postgres.LectureRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(lecture).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update lecture: %w", err)
	}
	return nil
}

// Delete 删除讲座
func (r *LectureRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.LectureRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Lecture{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete lecture: %w", err)
	}
	return nil
}

// List 获取讲座列表
func (r *LectureRepository) List(ctx context.Context, filter *repository.LectureFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Lecture], error) {
	ctx, span := tracer.Start(ctx, "postgres.LectureRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Lecture{})

	// 应用过滤条件
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
		}
	}

	// 获取总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count lectures: %w", err)
	}

	// 获取列表
	var lectures []*entity.Lecture
	if err := query.Order("updated_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&lectures).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}

	return repository.NewPagedResult(lectures, total, pagination), nil
}

// UpdateStatus 更新讲座状态
func (r *LectureRepository) UpdateStatus(ctx context.Context, id string, status entity.LectureStatus) error {
	ctx, span := tracer.Start(ctx, "postgres.LectureRepository.UpdateStatus")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Lecture{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update lecture status: %w", err)
	}
	return nil
}

// AppendImageURL 追加图片地址
func (r *LectureRepository) AppendImageURL(ctx context.Context, id, url string) error {
	ctx, span := tracer.Start(ctx, "postgres.LectureRepository.AppendImageURL")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Lecture{}).Where("id = ?", id).
		Update("image_urls", gorm.Expr("array_append(image_urls, ?)", url)).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to append image url: %w", err)
	}
	return nil
}
