package docstore

import (
	"context"
	"time"

	ds "go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/internal/domain"
)

const (
	discussionsCollection = "discussions"
	repliesCollection     = "replies"
)

type discussionRepository struct {
	store ds.Store
}

func NewDiscussionRepository(store ds.Store) domain.DiscussionRepository {
	return &discussionRepository{store: store}
}

func postsPath(skillID string) string {
	return ds.Join(skillsCollection, skillID, discussionsCollection)
}

func postPath(skillID, postID string) string {
	return ds.Join(skillsCollection, skillID, discussionsCollection, postID)
}

func repliesPath(skillID, postID string) string {
	return ds.Join(postPath(skillID, postID), repliesCollection)
}

func (r *discussionRepository) ListPosts(ctx context.Context, skillID string) ([]domain.DiscussionPost, error) {
	docs, err := r.store.Query(ctx, postsPath(skillID), ds.Query{OrderBy: "created_at"})
	if err != nil {
		return nil, err
	}
	posts := make([]domain.DiscussionPost, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, *decodePost(doc))
	}
	return posts, nil
}

func (r *discussionRepository) GetPost(ctx context.Context, skillID, postID string) (*domain.DiscussionPost, error) {
	doc, err := r.store.Get(ctx, postPath(skillID, postID))
	if err != nil {
		return nil, err
	}
	return decodePost(doc), nil
}

func (r *discussionRepository) CreatePost(ctx context.Context, skillID string, post *domain.DiscussionPost) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.SkillID = skillID
	data := map[string]any{
		"user_id":    post.UserID,
		"skill_id":   post.SkillID,
		"content":    post.Content,
		"created_at": encodeTime(post.CreatedAt),
	}
	id, err := r.store.Add(ctx, postsPath(skillID), data)
	if err != nil {
		return err
	}
	post.ID = id
	return nil
}

func (r *discussionRepository) DeletePostTree(ctx context.Context, skillID, postID string) error {
	return r.store.DeleteRecursive(ctx, postPath(skillID, postID))
}

func (r *discussionRepository) ListReplies(ctx context.Context, skillID, postID string) ([]domain.DiscussionReply, error) {
	docs, err := r.store.Query(ctx, repliesPath(skillID, postID), ds.Query{OrderBy: "created_at"})
	if err != nil {
		return nil, err
	}
	replies := make([]domain.DiscussionReply, 0, len(docs))
	for _, doc := range docs {
		replies = append(replies, *decodeReply(doc))
	}
	return replies, nil
}

func (r *discussionRepository) CreateReply(ctx context.Context, skillID, postID string, reply *domain.DiscussionReply) error {
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}
	reply.PostID = postID
	data := map[string]any{
		"user_id":    reply.UserID,
		"post_id":    reply.PostID,
		"content":    reply.Content,
		"created_at": encodeTime(reply.CreatedAt),
	}
	id, err := r.store.Add(ctx, repliesPath(skillID, postID), data)
	if err != nil {
		return err
	}
	reply.ID = id
	return nil
}

func (r *discussionRepository) DeleteReply(ctx context.Context, skillID, postID, replyID string) error {
	return r.store.Delete(ctx, ds.Join(repliesPath(skillID, postID), replyID))
}

func decodePost(doc ds.Doc) *domain.DiscussionPost {
	return &domain.DiscussionPost{
		ID:        doc.ID,
		UserID:    str(doc.Data, "user_id"),
		SkillID:   str(doc.Data, "skill_id"),
		Content:   str(doc.Data, "content"),
		CreatedAt: timeVal(doc.Data, "created_at"),
	}
}

func decodeReply(doc ds.Doc) *domain.DiscussionReply {
	return &domain.DiscussionReply{
		ID:        doc.ID,
		UserID:    str(doc.Data, "user_id"),
		PostID:    str(doc.Data, "post_id"),
		Content:   str(doc.Data, "content"),
		CreatedAt: timeVal(doc.Data, "created_at"),
	}
}
