package usecase

import (
	"context"
	"strings"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/pkg/apperror"
)

type discussionUsecase struct {
	skillRepo      domain.SkillRepository
	discussionRepo domain.DiscussionRepository
	userRepo       domain.UserRepository
}

func NewDiscussionUsecase(skillRepo domain.SkillRepository, discussionRepo domain.DiscussionRepository, userRepo domain.UserRepository) domain.DiscussionUsecase {
	return &discussionUsecase{
		skillRepo:      skillRepo,
		discussionRepo: discussionRepo,
		userRepo:       userRepo,
	}
}

func (u *discussionUsecase) viewable(ctx context.Context, actor domain.Actor, skillID string) (*domain.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if err := policy.Err(policy.CanViewContent(actor, skill.AuthorID, skill.IsPublished)); err != nil {
		return nil, err
	}
	return skill, nil
}

func (u *discussionUsecase) CreatePost(ctx context.Context, actor domain.Actor, skillID, content string) (*domain.PostView, error) {
	if _, err := u.viewable(ctx, actor, skillID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "Post content cannot be empty.")
	}

	post := &domain.DiscussionPost{
		UserID:  actor.ID,
		Content: content,
	}
	if err := u.discussionRepo.CreatePost(ctx, skillID, post); err != nil {
		return nil, err
	}

	return &domain.PostView{
		DiscussionPost: *post,
		Author:         u.author(ctx, actor.ID),
		Replies:        []domain.ReplyView{},
	}, nil
}

func (u *discussionUsecase) CreateReply(ctx context.Context, actor domain.Actor, skillID, postID, content string) (*domain.ReplyView, error) {
	if _, err := u.viewable(ctx, actor, skillID); err != nil {
		return nil, err
	}
	// A reply needs a live parent; replying under a deleted post would
	// recreate part of its subtree.
	if _, err := u.discussionRepo.GetPost(ctx, skillID, postID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "Reply content cannot be empty.")
	}

	reply := &domain.DiscussionReply{
		UserID:  actor.ID,
		Content: content,
	}
	if err := u.discussionRepo.CreateReply(ctx, skillID, postID, reply); err != nil {
		return nil, err
	}

	return &domain.ReplyView{
		DiscussionReply: *reply,
		Author:          u.author(ctx, actor.ID),
	}, nil
}

func (u *discussionUsecase) DeletePost(ctx context.Context, actor domain.Actor, skillID, postID string) error {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}
	post, err := u.discussionRepo.GetPost(ctx, skillID, postID)
	if err != nil {
		return err
	}
	if err := policy.Err(policy.CanDeleteDiscussion(actor, post.UserID, skill.AuthorID)); err != nil {
		return err
	}
	return u.discussionRepo.DeletePostTree(ctx, skillID, postID)
}

func (u *discussionUsecase) DeleteReply(ctx context.Context, actor domain.Actor, skillID, postID, replyID string) error {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}
	replies, err := u.discussionRepo.ListReplies(ctx, skillID, postID)
	if err != nil {
		return err
	}
	var reply *domain.DiscussionReply
	for i := range replies {
		if replies[i].ID == replyID {
			reply = &replies[i]
			break
		}
	}
	if reply == nil {
		return apperror.NotFound("Reply not found.")
	}
	if err := policy.Err(policy.CanDeleteDiscussion(actor, reply.UserID, skill.AuthorID)); err != nil {
		return err
	}
	return u.discussionRepo.DeleteReply(ctx, skillID, postID, replyID)
}

func (u *discussionUsecase) author(ctx context.Context, userID string) domain.User {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{ID: userID, DisplayName: "Unknown User"}
	}
	return *user
}
