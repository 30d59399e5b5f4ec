package lecture

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/domain/repository"
	apperrors "lecture-deck-api/pkg/errors"
)

type fakeLectureRepo struct {
	lectures map[string]*entity.Lecture
	nextID   int
}

func newFakeLectureRepo() *fakeLectureRepo {
	return &fakeLectureRepo{lectures: make(map[string]*entity.Lecture)}
}

func (r *fakeLectureRepo) Create(_ context.Context, l *entity.Lecture) error {
	r.nextID++
	l.ID = fmt.Sprintf("lec-%d", r.nextID)
	r.lectures[l.ID] = l
	return nil
}

func (r *fakeLectureRepo) GetByID(_ context.Context, id string) (*entity.Lecture, error) {
	return r.lectures[id], nil
}

func (r *fakeLectureRepo) Update(_ context.Context, l *entity.Lecture) error {
	if _, ok := r.lectures[l.ID]; !ok {
		return fmt.Errorf("lecture %s missing", l.ID)
	}
	r.lectures[l.ID] = l
	return nil
}

func (r *fakeLectureRepo) Delete(_ context.Context, id string) error {
	delete(r.lectures, id)
	return nil
}

func (r *fakeLectureRepo) List(_ context.Context, _ *repository.LectureFilter, p repository.Pagination) (*repository.PagedResult[*entity.Lecture], error) {
	items := make([]*entity.Lecture, 0, len(r.lectures))
	for _, l := range r.lectures {
		items = append(items, l)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return repository.NewPagedResult(items, int64(len(items)), p), nil
}

func (r *fakeLectureRepo) UpdateStatus(_ context.Context, id string, status entity.LectureStatus) error {
	if l, ok := r.lectures[id]; ok {
		l.Status = status
	}
	return nil
}

func (r *fakeLectureRepo) AppendImageURL(_ context.Context, id, url string) error {
	if l, ok := r.lectures[id]; ok {
		l.AddImageURL(url)
	}
	return nil
}

type fakeActivityRepo struct {
	activities map[string]*entity.Activity
	nextID     int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[string]*entity.Activity)}
}

func (r *fakeActivityRepo) Create(_ context.Context, a *entity.Activity) error {
	r.nextID++
	a.ID = fmt.Sprintf("act-%d", r.nextID)
	r.activities[a.ID] = a
	return nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id string) (*entity.Activity, error) {
	return r.activities[id], nil
}

func (r *fakeActivityRepo) Update(_ context.Context, a *entity.Activity) error {
	r.activities[a.ID] = a
	return nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, id string) error {
	delete(r.activities, id)
	return nil
}

func (r *fakeActivityRepo) ListByLecture(_ context.Context, lectureID string) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for _, a := range r.activities {
		if a.LectureID == lectureID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeqNum < out[j].SeqNum })
	return out, nil
}

func (r *fakeActivityRepo) DeleteByLecture(_ context.Context, lectureID string) error {
	for id, a := range r.activities {
		if a.LectureID == lectureID {
			delete(r.activities, id)
		}
	}
	return nil
}

func (r *fakeActivityRepo) GetNextSeqNum(_ context.Context, lectureID string) (int, error) {
	max := 0
	for _, a := range r.activities {
		if a.LectureID == lectureID && a.SeqNum > max {
			max = a.SeqNum
		}
	}
	return max + 1, nil
}

func (r *fakeActivityRepo) Reorder(_ context.Context, lectureID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		if a, ok := r.activities[id]; ok && a.LectureID == lectureID {
			a.SeqNum = i + 1
		}
	}
	return nil
}

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingInvalidator struct {
	invalidated []string
}

func (r *recordingInvalidator) InvalidateDeck(_ context.Context, lectureID string) {
	r.invalidated = append(r.invalidated, lectureID)
}

func newTestService() (*Service, *fakeLectureRepo, *fakeActivityRepo, *recordingInvalidator) {
	lectures := newFakeLectureRepo()
	activities := newFakeActivityRepo()
	inv := &recordingInvalidator{}
	return NewService(lectures, activities, fakeTx{}, inv), lectures, activities, inv
}

func TestUpdateContentBumpsVersionAndInvalidates(t *testing.T) {
	svc, _, _, inv := newTestService()
	ctx := context.Background()

	l, err := svc.Create(ctx, CreateInput{Title: "Photosynthesis", Content: "<p>one two</p>"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Version != 1 {
		t.Fatalf("Version = %d, want 1", l.Version)
	}

	content := "<p>one two three</p>"
	updated, err := svc.Update(ctx, l.ID, UpdateInput{Content: &content})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("Version = %d, want 2", updated.Version)
	}
	if updated.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", updated.WordCount)
	}
	if len(inv.invalidated) != 1 || inv.invalidated[0] != l.ID {
		t.Errorf("invalidated = %v, want [%s]", inv.invalidated, l.ID)
	}
}

func TestUpdateTitleOnlyKeepsVersion(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	l, _ := svc.Create(ctx, CreateInput{Title: "Old", Content: "<p>x</p>"})

	title := "New"
	updated, err := svc.Update(ctx, l.ID, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "New" {
		t.Errorf("Title = %q, want New", updated.Title)
	}
	if updated.Version != 1 {
		t.Errorf("Version = %d, want 1", updated.Version)
	}
}

func TestUpdateContentOfPublishedLectureRejected(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	l, _ := svc.Create(ctx, CreateInput{Title: "T", Content: "<p>x</p>"})
	if _, err := svc.Publish(ctx, l.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	content := "<p>y</p>"
	_, err := svc.Update(ctx, l.ID, UpdateInput{Content: &content})
	if err == nil {
		t.Fatal("Update on published lecture succeeded, want error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeLecturePublished {
		t.Errorf("error = %v, want code %s", err, apperrors.CodeLecturePublished)
	}

	// 标题仍然可以更新
	title := "T2"
	if _, err := svc.Update(ctx, l.ID, UpdateInput{Title: &title}); err != nil {
		t.Errorf("title update on published lecture: %v", err)
	}
}

func TestGetMissingLectureReturnsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "lec-404")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeLectureNotFound {
		t.Fatalf("error = %v, want code %s", err, apperrors.CodeLectureNotFound)
	}
}

func TestDeleteRemovesActivities(t *testing.T) {
	svc, lectures, activities, _ := newTestService()
	ctx := context.Background()

	l, _ := svc.Create(ctx, CreateInput{Title: "T"})
	if _, err := svc.CreateActivity(ctx, l.ID, ActivityInput{QuestionText: "Q1", Kind: entity.ActivityKindMultipleChoice}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	if err := svc.Delete(ctx, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(lectures.lectures) != 0 {
		t.Errorf("lectures remaining = %d, want 0", len(lectures.lectures))
	}
	if len(activities.activities) != 0 {
		t.Errorf("activities remaining = %d, want 0", len(activities.activities))
	}
}

func TestCreateActivityAssignsSequentialSeqNums(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	l, _ := svc.Create(ctx, CreateInput{Title: "T"})
	for i := 1; i <= 3; i++ {
		a, err := svc.CreateActivity(ctx, l.ID, ActivityInput{QuestionText: fmt.Sprintf("Q%d", i), Kind: entity.ActivityKindFreeText})
		if err != nil {
			t.Fatalf("CreateActivity %d: %v", i, err)
		}
		if a.SeqNum != i {
			t.Errorf("SeqNum = %d, want %d", a.SeqNum, i)
		}
	}
}

func TestReorderActivities(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	l, _ := svc.Create(ctx, CreateInput{Title: "T"})
	var ids []string
	for i := 1; i <= 3; i++ {
		a, _ := svc.CreateActivity(ctx, l.ID, ActivityInput{QuestionText: fmt.Sprintf("Q%d", i), Kind: entity.ActivityKindFreeText})
		ids = append(ids, a.ID)
	}

	reordered := []string{ids[2], ids[0], ids[1]}
	if err := svc.ReorderActivities(ctx, l.ID, reordered); err != nil {
		t.Fatalf("ReorderActivities: %v", err)
	}

	listed, err := svc.ListActivities(ctx, l.ID)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	for i, a := range listed {
		if a.ID != reordered[i] {
			t.Errorf("position %d = %s, want %s", i, a.ID, reordered[i])
		}
	}
}

func TestReorderActivitiesRejectsPartialList(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	l, _ := svc.Create(ctx, CreateInput{Title: "T"})
	a1, _ := svc.CreateActivity(ctx, l.ID, ActivityInput{QuestionText: "Q1", Kind: entity.ActivityKindFreeText})
	if _, err := svc.CreateActivity(ctx, l.ID, ActivityInput{QuestionText: "Q2", Kind: entity.ActivityKindFreeText}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	err := svc.ReorderActivities(ctx, l.ID, []string{a1.ID})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidParam {
		t.Fatalf("error = %v, want code %s", err, apperrors.CodeInvalidParam)
	}

	err = svc.ReorderActivities(ctx, l.ID, []string{a1.ID, "act-999"})
	appErr = apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidParam {
		t.Fatalf("error = %v, want code %s", err, apperrors.CodeInvalidParam)
	}
}

func TestPublishUnpublishRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	l, _ := svc.Create(ctx, CreateInput{Title: "T"})

	published, err := svc.Publish(ctx, l.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !published.IsPublished() || published.PublishedAt == nil {
		t.Errorf("lecture not published: status=%s publishedAt=%v", published.Status, published.PublishedAt)
	}

	draft, err := svc.Unpublish(ctx, l.ID)
	if err != nil {
		t.Fatalf("Unpublish: %v", err)
	}
	if draft.IsPublished() || draft.PublishedAt != nil {
		t.Errorf("lecture still published: status=%s", draft.Status)
	}
}
