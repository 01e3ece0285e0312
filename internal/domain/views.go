package domain

import "context"

// Composite views assembled for the presentation layer. All plain data;
// no formatting or markup is applied here.

type ReviewView struct {
	Review
	Author User `json:"user_profile"`
}

type ReplyView struct {
	DiscussionReply
	Author User `json:"user_profile"`
}

type PostView struct {
	DiscussionPost
	Author  User        `json:"user_profile"`
	Replies []ReplyView `json:"replies"`
}

// SkillDetail is the full course page: lessons ascending by order,
// reviews newest first, discussion posts and replies oldest first.
type SkillDetail struct {
	Skill       Skill         `json:"skill"`
	Author      User          `json:"author"`
	Lessons     []Lesson      `json:"lessons"`
	Summary     ReviewSummary `json:"review_summary"`
	Reviews     []ReviewView  `json:"reviews"`
	Discussions []PostView    `json:"discussions"`
}

type HomeFeed struct {
	Featured []Skill `json:"featured_skills"`
	Recent   []Skill `json:"recent_skills"`
}

type SkillWithCounts struct {
	Skill
	LessonCount int `json:"lesson_count"`
	ReviewCount int `json:"review_count"`
}

// CoursePlayer positions one lesson within the ordered list.
type CoursePlayer struct {
	Skill    Skill    `json:"skill"`
	Lessons  []Lesson `json:"all_lessons"`
	Active   Lesson   `json:"active_lesson"`
	Previous *Lesson  `json:"previous_lesson,omitempty"`
	Next     *Lesson  `json:"next_lesson,omitempty"`
}

type ProductDetail struct {
	Product Product `json:"product"`
	Author  User    `json:"author"`
}

type ProductListing struct {
	Product
	Author User `json:"author"`
}

// Storefront is a creator's public profile page.
type Storefront struct {
	Creator  User      `json:"creator"`
	Skills   []Skill   `json:"skills"`
	Products []Product `json:"products"`
}

// ActivityItem is one entry of a customer's profile feed.
type ActivityItem struct {
	Type   string `json:"type"` // currently always "review"
	Skill  Skill  `json:"skill"`
	Review Review `json:"review"`
}

type ActivityView struct {
	ProfileUser User           `json:"profile_user"`
	Items       []ActivityItem `json:"activity"`
}

// AdminCourse pairs a skill with its resolved author name for the
// moderation listing.
type AdminCourse struct {
	Skill
	AuthorName string `json:"author_name"`
}

type ProfileUsecase interface {
	Storefront(ctx context.Context, actor Actor, creatorID string) (*Storefront, error)
	Activity(ctx context.Context, actor Actor, userID string) (*ActivityView, error)
}

type AdminUsecase interface {
	ListUsers(ctx context.Context, actor Actor) ([]User, error)
	ListCourses(ctx context.Context, actor Actor) ([]AdminCourse, error)
	ToggleAdmin(ctx context.Context, actor Actor, userID string) (bool, error)
	ToggleDisabled(ctx context.Context, actor Actor, userID string) (bool, error)
	TogglePublished(ctx context.Context, actor Actor, skillID string) (bool, error)
	ToggleFeatured(ctx context.Context, actor Actor, skillID string) (bool, error)
}
