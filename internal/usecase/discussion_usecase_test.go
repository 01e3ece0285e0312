package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/usecase"
	"go-skillhub-backend/pkg/apperror"
)

func TestDiscussionCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	customer := e.addUser(t, "u1", domain.RoleCustomer, false)
	skill := e.addSkill(t, creator.ID, "Macrame", true)
	uc := usecase.NewDiscussionUsecase(e.skills, e.discussions, e.users)

	t.Run("Should create a post with its author resolved", func(t *testing.T) {
		post, err := uc.CreatePost(ctx, customer, skill.ID, "  how do I start?  ")
		require.NoError(t, err)
		assert.Equal(t, "how do I start?", post.Content)
		assert.Equal(t, "name-u1", post.Author.DisplayName)
		assert.Empty(t, post.Replies)
	})

	t.Run("Should reject empty content", func(t *testing.T) {
		_, err := uc.CreatePost(ctx, customer, skill.ID, "   ")
		assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))
	})

	t.Run("Should reply under an existing post", func(t *testing.T) {
		post, err := uc.CreatePost(ctx, customer, skill.ID, "question")
		require.NoError(t, err)

		reply, err := uc.CreateReply(ctx, creator, skill.ID, post.ID, "answer")
		require.NoError(t, err)
		assert.Equal(t, post.ID, reply.PostID)
		assert.Equal(t, "name-c1", reply.Author.DisplayName)
	})

	t.Run("Should refuse replying to a missing post", func(t *testing.T) {
		_, err := uc.CreateReply(ctx, creator, skill.ID, "ghost", "answer")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestDiscussionDelete(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	poster := e.addUser(t, "u1", domain.RoleCustomer, false)
	replier := e.addUser(t, "u2", domain.RoleCustomer, false)
	bystander := e.addUser(t, "u3", domain.RoleCustomer, false)
	admin := e.addUser(t, "a1", domain.RoleCustomer, true)
	skill := e.addSkill(t, creator.ID, "Macrame", true)
	uc := usecase.NewDiscussionUsecase(e.skills, e.discussions, e.users)

	newThread := func(t *testing.T) (*domain.PostView, *domain.ReplyView) {
		t.Helper()
		post, err := uc.CreatePost(ctx, poster, skill.ID, "question")
		require.NoError(t, err)
		reply, err := uc.CreateReply(ctx, replier, skill.ID, post.ID, "answer")
		require.NoError(t, err)
		return post, reply
	}

	t.Run("Should delete the post and every reply beneath it", func(t *testing.T) {
		post, _ := newThread(t)
		require.NoError(t, uc.DeletePost(ctx, poster, skill.ID, post.ID))

		_, err := e.discussions.GetPost(ctx, skill.ID, post.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

		replies, err := e.discussions.ListReplies(ctx, skill.ID, post.ID)
		require.NoError(t, err)
		assert.Empty(t, replies)
	})

	t.Run("Should let the skill author and admins moderate posts", func(t *testing.T) {
		post, _ := newThread(t)
		require.NoError(t, uc.DeletePost(ctx, creator, skill.ID, post.ID))

		post, _ = newThread(t)
		require.NoError(t, uc.DeletePost(ctx, admin, skill.ID, post.ID))
	})

	t.Run("Should deny unrelated members", func(t *testing.T) {
		post, reply := newThread(t)
		err := uc.DeletePost(ctx, bystander, skill.ID, post.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))

		err = uc.DeleteReply(ctx, bystander, skill.ID, post.ID, reply.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
	})

	t.Run("Should let the reply author remove their own reply only", func(t *testing.T) {
		post, reply := newThread(t)
		require.NoError(t, uc.DeleteReply(ctx, replier, skill.ID, post.ID, reply.ID))

		// The parent post survives.
		_, err := e.discussions.GetPost(ctx, skill.ID, post.ID)
		assert.NoError(t, err)
	})

	t.Run("Should fail deleting a reply that does not exist", func(t *testing.T) {
		post, _ := newThread(t)
		err := uc.DeleteReply(ctx, poster, skill.ID, post.ID, "ghost")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}
