// Package lecture 实现讲座与活动的管理用例
package lecture

import (
	"context"

	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/domain/repository"
	apperrors "lecture-deck-api/pkg/errors"
)

// DeckInvalidator 幻灯片缓存失效能力
type DeckInvalidator interface {
	InvalidateDeck(ctx context.Context, lectureID string)
}

// Service 讲座管理服务
type Service struct {
	lectures   repository.LectureRepository
	activities repository.ActivityRepository
	tx         repository.Transactor
	decks      DeckInvalidator
}

// NewService 创建讲座管理服务
func NewService(
	lectures repository.LectureRepository,
	activities repository.ActivityRepository,
	tx repository.Transactor,
	decks DeckInvalidator,
) *Service {
	return &Service{
		lectures:   lectures,
		activities: activities,
		tx:         tx,
		decks:      decks,
	}
}

// CreateInput 创建讲座参数
type CreateInput struct {
	Title       string
	Description string
	Content     string
}

// Create 创建讲座
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Lecture, error) {
	lecture := entity.NewLecture(in.Title, in.Description)
	if in.Content != "" {
		lecture.SetContent(in.Content)
	}

	if err := s.lectures.Create(ctx, lecture); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create lecture")
	}
	return lecture, nil
}

// Get 获取讲座
func (s *Service) Get(ctx context.Context, id string) (*entity.Lecture, error) {
	lecture, err := s.lectures.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load lecture")
	}
	if lecture == nil {
		return nil, apperrors.New(apperrors.CodeLectureNotFound, "lecture not found")
	}
	return lecture, nil
}

// List 获取讲座列表
func (s *Service) List(ctx context.Context, filter *repository.LectureFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Lecture], error) {
	result, err := s.lectures.List(ctx, filter, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list lectures")
	}
	return result, nil
}

// UpdateInput 更新讲座参数，nil 字段保持不变
type UpdateInput struct {
	Title       *string
	Description *string
	Content     *string
}

// Update 更新讲座；正文变更会提升版本号并使幻灯片缓存失效。
// 已发布的讲座不允许修改正文，需先撤回发布。
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.Lecture, error) {
	lecture, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Content != nil && lecture.IsPublished() {
		return nil, apperrors.New(apperrors.CodeLecturePublished, "cannot edit content of a published lecture")
	}

	if in.Title != nil {
		lecture.Title = *in.Title
	}
	if in.Description != nil {
		lecture.Description = *in.Description
	}
	if in.Content != nil {
		lecture.SetContent(*in.Content)
		lecture.IncrementVersion()
	}

	if err := s.lectures.Update(ctx, lecture); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update lecture")
	}

	s.decks.InvalidateDeck(ctx, id)
	return lecture, nil
}

// Delete 删除讲座及其全部活动（事务内）
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.activities.DeleteByLecture(ctx, id); err != nil {
			return err
		}
		return s.lectures.Delete(ctx, id)
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete lecture")
	}

	s.decks.InvalidateDeck(ctx, id)
	return nil
}

// Publish 发布讲座
func (s *Service) Publish(ctx context.Context, id string) (*entity.Lecture, error) {
	return s.setPublished(ctx, id, true)
}

// Unpublish 撤回发布
func (s *Service) Unpublish(ctx context.Context, id string) (*entity.Lecture, error) {
	return s.setPublished(ctx, id, false)
}

func (s *Service) setPublished(ctx context.Context, id string, published bool) (*entity.Lecture, error) {
	lecture, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if published {
		lecture.Publish()
	} else {
		lecture.Unpublish()
	}

	if err := s.lectures.Update(ctx, lecture); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update lecture status")
	}
	return lecture, nil
}

// AppendImage 记录讲座引用的图片地址
func (s *Service) AppendImage(ctx context.Context, id, url string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.lectures.AppendImageURL(ctx, id, url); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to append image url")
	}
	return nil
}

// ActivityInput 创建/更新活动参数
type ActivityInput struct {
	QuestionText  string
	Kind          entity.ActivityKind
	Options       []entity.ActivityOption
	CorrectAnswer string
}

// CreateActivity 在讲座末尾追加活动
func (s *Service) CreateActivity(ctx context.Context, lectureID string, in ActivityInput) (*entity.Activity, error) {
	if _, err := s.Get(ctx, lectureID); err != nil {
		return nil, err
	}

	seq, err := s.activities.GetNextSeqNum(ctx, lectureID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to allocate seq num")
	}

	activity := entity.NewActivity(lectureID, seq, in.QuestionText, in.Kind)
	activity.Options = in.Options
	activity.CorrectAnswer = in.CorrectAnswer

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create activity")
	}

	s.decks.InvalidateDeck(ctx, lectureID)
	return activity, nil
}

// GetActivity 获取活动
func (s *Service) GetActivity(ctx context.Context, id string) (*entity.Activity, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load activity")
	}
	if activity == nil {
		return nil, apperrors.New(apperrors.CodeActivityNotFound, "activity not found")
	}
	return activity, nil
}

// ListActivities 获取讲座活动列表
func (s *Service) ListActivities(ctx context.Context, lectureID string) ([]*entity.Activity, error) {
	if _, err := s.Get(ctx, lectureID); err != nil {
		return nil, err
	}
	activities, err := s.activities.ListByLecture(ctx, lectureID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list activities")
	}
	return activities, nil
}

// UpdateActivity 更新活动
func (s *Service) UpdateActivity(ctx context.Context, id string, in ActivityInput) (*entity.Activity, error) {
	activity, err := s.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	activity.QuestionText = in.QuestionText
	activity.Kind = in.Kind
	activity.Options = in.Options
	activity.CorrectAnswer = in.CorrectAnswer

	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update activity")
	}

	s.decks.InvalidateDeck(ctx, activity.LectureID)
	return activity, nil
}

// DeleteActivity 删除活动
func (s *Service) DeleteActivity(ctx context.Context, id string) error {
	activity, err := s.GetActivity(ctx, id)
	if err != nil {
		return err
	}

	if err := s.activities.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete activity")
	}

	s.decks.InvalidateDeck(ctx, activity.LectureID)
	return nil
}

// ReorderActivities 按给定 ID 顺序重排讲座活动（事务内）
func (s *Service) ReorderActivities(ctx context.Context, lectureID string, orderedIDs []string) error {
	if _, err := s.Get(ctx, lectureID); err != nil {
		return err
	}

	existing, err := s.activities.ListByLecture(ctx, lectureID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list activities")
	}
	if len(orderedIDs) != len(existing) {
		return apperrors.New(apperrors.CodeInvalidParam, "reorder must include every activity exactly once")
	}
	known := make(map[string]bool, len(existing))
	for _, a := range existing {
		known[a.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return apperrors.New(apperrors.CodeInvalidParam, "unknown activity id: "+id)
		}
		delete(known, id)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.activities.Reorder(ctx, lectureID, orderedIDs)
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to reorder activities")
	}

	s.decks.InvalidateDeck(ctx, lectureID)
	return nil
}
