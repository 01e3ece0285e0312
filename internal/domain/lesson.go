package domain

import (
	"context"
	"time"
)

const (
	LessonTypeText  = "Text"
	LessonTypeVideo = "Video"
)

// Lesson belongs to exactly one skill. Order values are positive and
// unique within the skill but not necessarily contiguous; display order
// is always the ascending sort of Order, never slice position.
type Lesson struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"lesson_type"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

type LessonInput struct {
	Title   string `validate:"required"`
	Type    string `validate:"required,oneof=Text Video"`
	Content string
}

// ReorderResult reports whether a swap happened; Moved is false at the
// boundary ("cannot move further"), which is not an error.
type ReorderResult struct {
	Moved bool `json:"moved"`
}

type LessonRepository interface {
	ListBySkill(ctx context.Context, skillID string) ([]Lesson, error) // ascending by Order
	Get(ctx context.Context, skillID, lessonID string) (*Lesson, error)
	Create(ctx context.Context, skillID string, lesson *Lesson) error // assigns lesson.ID
	Update(ctx context.Context, skillID, lessonID, title, lessonType, content string) error
	Delete(ctx context.Context, skillID, lessonID string) error
	Count(ctx context.Context, skillID string) (int, error)
	Last(ctx context.Context, skillID string) (*Lesson, error)                           // highest Order, nil when empty
	NeighborBelow(ctx context.Context, skillID string, order int) (*Lesson, error)       // greatest Order < order, nil when none
	NeighborAbove(ctx context.Context, skillID string, order int) (*Lesson, error)       // least Order > order, nil when none
	SwapOrder(ctx context.Context, skillID string, a, b Lesson) error // single atomic batch write
}

type LessonUsecase interface {
	Append(ctx context.Context, actor Actor, skillID string, input LessonInput) (*Lesson, error)
	Edit(ctx context.Context, actor Actor, skillID, lessonID string, input LessonInput) error
	Delete(ctx context.Context, actor Actor, skillID, lessonID string) error
	Reorder(ctx context.Context, actor Actor, skillID, lessonID string, dir Direction) (ReorderResult, error)
}
