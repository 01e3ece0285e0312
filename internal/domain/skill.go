package domain

import (
	"context"
	"io"
	"time"
)

var SkillCategories = []string{
	"Handicrafts", "Fashion & Design", "Culinary Arts", "Arts & Crafts",
	"Digital Arts", "Beauty", "Other",
}

type Skill struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	AuthorID     string    `json:"author_id"`
	AuthorEmail  string    `json:"author_email,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	SearchTokens []string  `json:"search_tokens,omitempty"`
	IsPublished  bool      `json:"isPublished"`
	IsFeatured   bool      `json:"isFeatured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type SkillInput struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Category    string `validate:"required"`
	Publish     bool
	Image       io.Reader // optional cover image
}

// SkillFilter narrows the published-skill listing.
type SkillFilter struct {
	Category string
	Search   string // single contiguous token, matched against the stored token set
}

// SkillChanges is the partial update an edit writes. Author fields are
// deliberately absent: the author reference is immutable after creation.
type SkillChanges struct {
	Name         string
	Description  string
	Category     string
	SearchTokens []string
	IsPublished  bool
	ImageURL     *string // only when a new cover was uploaded
}

type SkillRepository interface {
	GetByID(ctx context.Context, id string) (*Skill, error)
	Create(ctx context.Context, skill *Skill) error // assigns skill.ID
	Update(ctx context.Context, id string, changes SkillChanges) error
	Delete(ctx context.Context, id string) error // cascades to the whole subtree
	SetPublished(ctx context.Context, id string, published bool) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	ListPublished(ctx context.Context, f SkillFilter) ([]Skill, error)             // newest first
	ListFeatured(ctx context.Context, featured bool, limit int) ([]Skill, error)   // published only, newest first
	ListByAuthor(ctx context.Context, authorID string, publishedOnly bool) ([]Skill, error) // newest first
	ListAll(ctx context.Context) ([]Skill, error) // newest first, admin view
}

type SkillUsecase interface {
	Create(ctx context.Context, actor Actor, input SkillInput) (*Skill, error)
	Update(ctx context.Context, actor Actor, skillID string, input SkillInput) (*Skill, error)
	Delete(ctx context.Context, actor Actor, skillID string) error
	Detail(ctx context.Context, actor Actor, skillID string) (*SkillDetail, error)
	Browse(ctx context.Context, actor Actor, f SkillFilter) ([]Skill, error)
	Home(ctx context.Context, actor Actor) (*HomeFeed, error)
	MySkills(ctx context.Context, actor Actor) ([]SkillWithCounts, error)
	Player(ctx context.Context, actor Actor, skillID, lessonID string) (*CoursePlayer, error)
}
