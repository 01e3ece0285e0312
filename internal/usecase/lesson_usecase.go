package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/pkg/apperror"
)

type lessonUsecase struct {
	skillRepo  domain.SkillRepository
	lessonRepo domain.LessonRepository
	validate   *validator.Validate
}

func NewLessonUsecase(skillRepo domain.SkillRepository, lessonRepo domain.LessonRepository, validate *validator.Validate) domain.LessonUsecase {
	return &lessonUsecase{
		skillRepo:  skillRepo,
		lessonRepo: lessonRepo,
		validate:   validate,
	}
}

func (u *lessonUsecase) owned(ctx context.Context, actor domain.Actor, skillID string) error {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}
	return policy.Err(policy.CanEditContent(actor, skill.AuthorID))
}

// Append adds the lesson at the end of the list: one past the current
// highest order, or 1 for the first lesson.
func (u *lessonUsecase) Append(ctx context.Context, actor domain.Actor, skillID string, input domain.LessonInput) (*domain.Lesson, error) {
	if err := u.owned(ctx, actor, skillID); err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	last, err := u.lessonRepo.Last(ctx, skillID)
	if err != nil {
		return nil, err
	}
	order := 1
	if last != nil {
		order = last.Order + 1
	}

	lesson := &domain.Lesson{
		Title:   input.Title,
		Type:    input.Type,
		Content: input.Content,
		Order:   order,
	}
	if err := u.lessonRepo.Create(ctx, skillID, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Edit rewrites title, type and content. Order never changes here;
// Reorder is the only operation that touches it.
func (u *lessonUsecase) Edit(ctx context.Context, actor domain.Actor, skillID, lessonID string, input domain.LessonInput) error {
	if err := u.owned(ctx, actor, skillID); err != nil {
		return err
	}
	if err := validateStruct(u.validate, input); err != nil {
		return err
	}
	return u.lessonRepo.Update(ctx, skillID, lessonID, input.Title, input.Type, input.Content)
}

// Delete removes the lesson without renumbering the survivors: order
// values stay unique and sorted, just no longer contiguous.
func (u *lessonUsecase) Delete(ctx context.Context, actor domain.Actor, skillID, lessonID string) error {
	if err := u.owned(ctx, actor, skillID); err != nil {
		return err
	}
	if _, err := u.lessonRepo.Get(ctx, skillID, lessonID); err != nil {
		return err
	}
	return u.lessonRepo.Delete(ctx, skillID, lessonID)
}

// Reorder swaps the lesson's order value with its neighbor in the given
// direction. At the boundary there is no neighbor and the call reports
// Moved false rather than failing.
func (u *lessonUsecase) Reorder(ctx context.Context, actor domain.Actor, skillID, lessonID string, dir domain.Direction) (domain.ReorderResult, error) {
	if err := u.owned(ctx, actor, skillID); err != nil {
		return domain.ReorderResult{}, err
	}

	lesson, err := u.lessonRepo.Get(ctx, skillID, lessonID)
	if err != nil {
		return domain.ReorderResult{}, err
	}

	var neighbor *domain.Lesson
	switch dir {
	case domain.DirectionUp:
		neighbor, err = u.lessonRepo.NeighborBelow(ctx, skillID, lesson.Order)
	case domain.DirectionDown:
		neighbor, err = u.lessonRepo.NeighborAbove(ctx, skillID, lesson.Order)
	default:
		return domain.ReorderResult{}, apperror.ValidationFailed("direction", "Invalid direction.")
	}
	if err != nil {
		return domain.ReorderResult{}, err
	}
	if neighbor == nil {
		return domain.ReorderResult{Moved: false}, nil
	}

	if err := u.lessonRepo.SwapOrder(ctx, skillID, *lesson, *neighbor); err != nil {
		return domain.ReorderResult{}, err
	}
	return domain.ReorderResult{Moved: true}, nil
}
