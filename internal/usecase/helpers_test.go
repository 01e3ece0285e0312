package usecase_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"go-skillhub-backend/internal/docstore/memory"
	"go-skillhub-backend/internal/domain"
	repo "go-skillhub-backend/internal/repository/docstore"
	"go-skillhub-backend/pkg/auth"
	"go-skillhub-backend/pkg/blob"
)

// fakeBlob records uploads and destroys instead of talking to storage.
type fakeBlob struct {
	uploads   int
	destroyed []string
}

func (f *fakeBlob) Upload(_ context.Context, _ io.Reader, folder string, _ blob.Transform) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://cdn.test/%s/obj%d.jpg", folder, f.uploads), nil
}

func (f *fakeBlob) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

// fakeVerifier asserts a fixed identity for any token.
type fakeVerifier struct {
	identity auth.Identity
	err      error
}

func (f fakeVerifier) VerifyToken(_ context.Context, _ string) (auth.Identity, error) {
	return f.identity, f.err
}

// env wires real repositories over the in-memory store, so usecase
// tests exercise the same query and batch semantics production uses.
type env struct {
	store       *memory.Store
	users       domain.UserRepository
	skills      domain.SkillRepository
	lessons     domain.LessonRepository
	reviews     domain.ReviewRepository
	discussions domain.DiscussionRepository
	products    domain.ProductRepository
	blobs       *fakeBlob
	validate    *validator.Validate
}

func newEnv() *env {
	store := memory.New()
	return &env{
		store:       store,
		users:       repo.NewUserRepository(store),
		skills:      repo.NewSkillRepository(store),
		lessons:     repo.NewLessonRepository(store),
		reviews:     repo.NewReviewRepository(store),
		discussions: repo.NewDiscussionRepository(store),
		products:    repo.NewProductRepository(store),
		blobs:       &fakeBlob{},
		validate:    validator.New(),
	}
}

func (e *env) addUser(t *testing.T, id, role string, isAdmin bool) domain.Actor {
	t.Helper()
	user := &domain.User{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "name-" + id,
		Role:        role,
		IsAdmin:     isAdmin,
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return domain.ActorFor(user)
}

func (e *env) addSkill(t *testing.T, authorID, name string, published bool) *domain.Skill {
	t.Helper()
	skill := &domain.Skill{
		Name:        name,
		Description: "about " + name,
		Category:    "Handicrafts",
		AuthorID:    authorID,
		IsPublished: published,
	}
	require.NoError(t, e.skills.Create(context.Background(), skill))
	return skill
}

func (e *env) addLesson(t *testing.T, skillID, title string, order int) *domain.Lesson {
	t.Helper()
	lesson := &domain.Lesson{
		Title: title,
		Type:  domain.LessonTypeText,
		Order: order,
	}
	require.NoError(t, e.lessons.Create(context.Background(), skillID, lesson))
	return lesson
}

func (e *env) addReview(t *testing.T, skillID, userID string, rating int) *domain.Review {
	t.Helper()
	review := &domain.Review{
		UserID: userID,
		Rating: rating,
		Text:   "review text",
	}
	require.NoError(t, e.reviews.Create(context.Background(), skillID, review))
	return review
}
