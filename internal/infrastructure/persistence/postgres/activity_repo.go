package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lecture-deck-api/internal/domain/entity"
)

// ActivityRepository 活动仓储实现
type ActivityRepository struct {
	client *Client
}

// NewActivityRepository 创建活动仓储
func NewActivityRepository(client *Client) *ActivityRepository {
	return &ActivityRepository{client: client}
}

// Create 创建活动
func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(activity).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取活动
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var activity entity.Activity
	if err := db.First(&activity, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

// Update 更新活动
func (r *ActivityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(activity).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

// Delete 删除活动
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Activity{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// ListByLecture 获取讲座活动列表（按序号排序）
func (r *ActivityRepository) ListByLecture(ctx context.Context, lectureID string) ([]*entity.Activity, error) {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.ListByLecture")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var activities []*entity.Activity
	if err := db.Where("lecture_id = ?", lectureID).
		Order("seq_num ASC").
		Find(&activities).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// DeleteByLecture 删除讲座的全部活动
func (r *ActivityRepository) DeleteByLecture(ctx context.Context, lectureID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.DeleteByLecture")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Activity{}, "lecture_id = ?", lectureID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	return nil
}

// GetNextSeqNum 获取下一个序号
func (r *ActivityRepository) GetNextSeqNum(ctx context.Context, lectureID string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.GetNextSeqNum")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var maxSeq int
	if err := db.Model(&entity.Activity{}).
		Where("lecture_id = ?", lectureID).
		Select("COALESCE(MAX(seq_num), 0)").
		Scan(&maxSeq).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get next seq num: %w", err)
	}
	return maxSeq + 1, nil
}

// Reorder 按给定顺序重排活动
func (r *ActivityRepository) Reorder(ctx context.Context, lectureID string, orderedIDs []string) error {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.Reorder")
	defer span.End()

	db := getDB(ctx, r.client.db)
	for i, id := range orderedIDs {
		if err := db.Model(&entity.Activity{}).
			Where("id = ? AND lecture_id = ?", id, lectureID).
			Update("seq_num", i+1).Error; err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to reorder activity %s: %w", id, err)
		}
	}
	return nil
}
