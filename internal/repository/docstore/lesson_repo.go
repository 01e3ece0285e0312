package docstore

import (
	"context"
	"time"

	ds "go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/internal/domain"
)

const lessonsCollection = "lessons"

type lessonRepository struct {
	store ds.Store
}

func NewLessonRepository(store ds.Store) domain.LessonRepository {
	return &lessonRepository{store: store}
}

func lessonsPath(skillID string) string {
	return ds.Join(skillsCollection, skillID, lessonsCollection)
}

func lessonPath(skillID, lessonID string) string {
	return ds.Join(skillsCollection, skillID, lessonsCollection, lessonID)
}

func (r *lessonRepository) ListBySkill(ctx context.Context, skillID string) ([]domain.Lesson, error) {
	docs, err := r.store.Query(ctx, lessonsPath(skillID), ds.Query{OrderBy: "order"})
	if err != nil {
		return nil, err
	}
	lessons := make([]domain.Lesson, 0, len(docs))
	for _, doc := range docs {
		lessons = append(lessons, *decodeLesson(doc))
	}
	return lessons, nil
}

func (r *lessonRepository) Get(ctx context.Context, skillID, lessonID string) (*domain.Lesson, error) {
	doc, err := r.store.Get(ctx, lessonPath(skillID, lessonID))
	if err != nil {
		return nil, err
	}
	return decodeLesson(doc), nil
}

func (r *lessonRepository) Create(ctx context.Context, skillID string, lesson *domain.Lesson) error {
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = time.Now()
	}
	data := map[string]any{
		"title":       lesson.Title,
		"lesson_type": lesson.Type,
		"content":     lesson.Content,
		"order":       lesson.Order,
		"created_at":  encodeTime(lesson.CreatedAt),
	}
	id, err := r.store.Add(ctx, lessonsPath(skillID), data)
	if err != nil {
		return err
	}
	lesson.ID = id
	return nil
}

func (r *lessonRepository) Update(ctx context.Context, skillID, lessonID, title, lessonType, content string) error {
	return r.store.Update(ctx, lessonPath(skillID, lessonID), map[string]any{
		"title":       title,
		"lesson_type": lessonType,
		"content":     content,
		"updated_at":  encodeTime(time.Now()),
	})
}

func (r *lessonRepository) Delete(ctx context.Context, skillID, lessonID string) error {
	return r.store.Delete(ctx, lessonPath(skillID, lessonID))
}

func (r *lessonRepository) Count(ctx context.Context, skillID string) (int, error) {
	docs, err := r.store.Query(ctx, lessonsPath(skillID), ds.Query{})
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *lessonRepository) Last(ctx context.Context, skillID string) (*domain.Lesson, error) {
	return r.first(ctx, skillID, ds.Query{
		OrderBy: "order",
		Dir:     ds.Descending,
		Limit:   1,
	})
}

func (r *lessonRepository) NeighborBelow(ctx context.Context, skillID string, order int) (*domain.Lesson, error) {
	return r.first(ctx, skillID, ds.Query{
		Filters: []ds.Filter{ds.Where("order", ds.OpLess, order)},
		OrderBy: "order",
		Dir:     ds.Descending,
		Limit:   1,
	})
}

func (r *lessonRepository) NeighborAbove(ctx context.Context, skillID string, order int) (*domain.Lesson, error) {
	return r.first(ctx, skillID, ds.Query{
		Filters: []ds.Filter{ds.Where("order", ds.OpGreater, order)},
		OrderBy: "order",
		Dir:     ds.Ascending,
		Limit:   1,
	})
}

func (r *lessonRepository) first(ctx context.Context, skillID string, q ds.Query) (*domain.Lesson, error) {
	docs, err := r.store.Query(ctx, lessonsPath(skillID), q)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return decodeLesson(docs[0]), nil
}

// SwapOrder exchanges the two order values in one atomic batch so a
// failure can never leave both lessons on the same position.
func (r *lessonRepository) SwapOrder(ctx context.Context, skillID string, a, b domain.Lesson) error {
	batch := r.store.Batch()
	batch.Update(lessonPath(skillID, a.ID), map[string]any{"order": b.Order})
	batch.Update(lessonPath(skillID, b.ID), map[string]any{"order": a.Order})
	return batch.Commit(ctx)
}

func decodeLesson(doc ds.Doc) *domain.Lesson {
	return &domain.Lesson{
		ID:        doc.ID,
		Title:     str(doc.Data, "title"),
		Type:      str(doc.Data, "lesson_type"),
		Content:   str(doc.Data, "content"),
		Order:     intVal(doc.Data, "order"),
		CreatedAt: timeVal(doc.Data, "created_at"),
		UpdatedAt: timeVal(doc.Data, "updated_at"),
	}
}
