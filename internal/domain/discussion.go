package domain

import (
	"context"
	"time"
)

type DiscussionPost struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SkillID   string    `json:"skill_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// DiscussionReply is a child of exactly one post; deleting the post must
// delete its replies so none are orphaned.
type DiscussionReply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type DiscussionRepository interface {
	ListPosts(ctx context.Context, skillID string) ([]DiscussionPost, error)
	GetPost(ctx context.Context, skillID, postID string) (*DiscussionPost, error)
	CreatePost(ctx context.Context, skillID string, post *DiscussionPost) error // assigns post.ID
	// DeletePostTree removes the post and every reply beneath it.
	// Best-effort, idempotent: re-running after a partial failure
	// completes the cascade.
	DeletePostTree(ctx context.Context, skillID, postID string) error
	ListReplies(ctx context.Context, skillID, postID string) ([]DiscussionReply, error)
	CreateReply(ctx context.Context, skillID, postID string, reply *DiscussionReply) error
	DeleteReply(ctx context.Context, skillID, postID, replyID string) error
}

type DiscussionUsecase interface {
	CreatePost(ctx context.Context, actor Actor, skillID, content string) (*PostView, error)
	CreateReply(ctx context.Context, actor Actor, skillID, postID, content string) (*ReplyView, error)
	DeletePost(ctx context.Context, actor Actor, skillID, postID string) error
	DeleteReply(ctx context.Context, actor Actor, skillID, postID, replyID string) error
}
