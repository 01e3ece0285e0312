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

func lessonTitles(t *testing.T, e *env, skillID string) []string {
	t.Helper()
	lessons, err := e.lessons.ListBySkill(context.Background(), skillID)
	require.NoError(t, err)
	titles := make([]string, 0, len(lessons))
	for _, l := range lessons {
		titles = append(titles, l.Title)
	}
	return titles
}

func TestLessonAppend(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	skill := e.addSkill(t, creator.ID, "Macrame", true)
	uc := usecase.NewLessonUsecase(e.skills, e.lessons, e.validate)

	t.Run("Should start numbering at 1", func(t *testing.T) {
		lesson, err := uc.Append(ctx, creator, skill.ID, domain.LessonInput{Title: "A", Type: domain.LessonTypeText})
		require.NoError(t, err)
		assert.Equal(t, 1, lesson.Order)
	})

	t.Run("Should append one past the highest order", func(t *testing.T) {
		lesson, err := uc.Append(ctx, creator, skill.ID, domain.LessonInput{Title: "B", Type: domain.LessonTypeVideo})
		require.NoError(t, err)
		assert.Equal(t, 2, lesson.Order)
	})

	t.Run("Should fill no gaps after a delete", func(t *testing.T) {
		lessons, err := e.lessons.ListBySkill(ctx, skill.ID)
		require.NoError(t, err)
		require.NoError(t, uc.Delete(ctx, creator, skill.ID, lessons[0].ID))

		lesson, err := uc.Append(ctx, creator, skill.ID, domain.LessonInput{Title: "C", Type: domain.LessonTypeText})
		require.NoError(t, err)
		assert.Equal(t, 3, lesson.Order)
	})

	t.Run("Should reject an unknown lesson type", func(t *testing.T) {
		_, err := uc.Append(ctx, creator, skill.ID, domain.LessonInput{Title: "D", Type: "Audio"})
		assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))
	})

	t.Run("Should deny non-owners", func(t *testing.T) {
		other := e.addUser(t, "c2", domain.RoleCreator, false)
		_, err := uc.Append(ctx, other, skill.ID, domain.LessonInput{Title: "E", Type: domain.LessonTypeText})
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
	})
}

func TestLessonReorder(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	skill := e.addSkill(t, creator.ID, "Macrame", true)
	a := e.addLesson(t, skill.ID, "A", 1)
	b := e.addLesson(t, skill.ID, "B", 2)
	e.addLesson(t, skill.ID, "C", 3)
	uc := usecase.NewLessonUsecase(e.skills, e.lessons, e.validate)

	t.Run("Should swap order values with the neighbor above", func(t *testing.T) {
		res, err := uc.Reorder(ctx, creator, skill.ID, b.ID, domain.DirectionUp)
		require.NoError(t, err)
		assert.True(t, res.Moved)
		assert.Equal(t, []string{"B", "A", "C"}, lessonTitles(t, e, skill.ID))

		movedA, err := e.lessons.Get(ctx, skill.ID, a.ID)
		require.NoError(t, err)
		movedB, err := e.lessons.Get(ctx, skill.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, movedA.Order)
		assert.Equal(t, 1, movedB.Order)
	})

	t.Run("Should be undone by the inverse move", func(t *testing.T) {
		res, err := uc.Reorder(ctx, creator, skill.ID, b.ID, domain.DirectionDown)
		require.NoError(t, err)
		assert.True(t, res.Moved)
		assert.Equal(t, []string{"A", "B", "C"}, lessonTitles(t, e, skill.ID))
	})

	t.Run("Should report Moved false at the top boundary", func(t *testing.T) {
		res, err := uc.Reorder(ctx, creator, skill.ID, a.ID, domain.DirectionUp)
		require.NoError(t, err)
		assert.False(t, res.Moved)
		assert.Equal(t, []string{"A", "B", "C"}, lessonTitles(t, e, skill.ID))
	})

	t.Run("Should work across non-contiguous order values", func(t *testing.T) {
		gapped := e.addLesson(t, skill.ID, "Z", 10)
		res, err := uc.Reorder(ctx, creator, skill.ID, gapped.ID, domain.DirectionUp)
		require.NoError(t, err)
		assert.True(t, res.Moved)
		assert.Equal(t, []string{"A", "B", "Z", "C"}, lessonTitles(t, e, skill.ID))
	})

	t.Run("Should reject an invalid direction", func(t *testing.T) {
		_, err := uc.Reorder(ctx, creator, skill.ID, a.ID, "sideways")
		assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))
	})

	t.Run("Should fail for a missing lesson", func(t *testing.T) {
		_, err := uc.Reorder(ctx, creator, skill.ID, "ghost", domain.DirectionUp)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}
