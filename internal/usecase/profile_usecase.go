package usecase

import (
	"context"
	"sort"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/internal/resolver"
	"go-skillhub-backend/pkg/apperror"
	"go-skillhub-backend/pkg/logger"
)

type profileUsecase struct {
	userRepo          domain.UserRepository
	skillRepo         domain.SkillRepository
	productRepo       domain.ProductRepository
	reviewRepo        domain.ReviewRepository
	activityFeedLimit int
}

func NewProfileUsecase(
	userRepo domain.UserRepository,
	skillRepo domain.SkillRepository,
	productRepo domain.ProductRepository,
	reviewRepo domain.ReviewRepository,
	activityFeedLimit int,
) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo:          userRepo,
		skillRepo:         skillRepo,
		productRepo:       productRepo,
		reviewRepo:        reviewRepo,
		activityFeedLimit: activityFeedLimit,
	}
}

// Storefront is a creator's public page: their published skills and
// products only, whatever the viewer's privileges.
func (u *profileUsecase) Storefront(ctx context.Context, actor domain.Actor, creatorID string) (*domain.Storefront, error) {
	if err := policy.Err(policy.RequireMember(actor)); err != nil {
		return nil, err
	}
	creator, err := u.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	skills, err := u.skillRepo.ListByAuthor(ctx, creatorID, true)
	if err != nil {
		return nil, err
	}
	products, err := u.productRepo.ListByAuthor(ctx, creatorID, true)
	if err != nil {
		return nil, err
	}

	return &domain.Storefront{
		Creator:  *creator,
		Skills:   skills,
		Products: products,
	}, nil
}

// Activity builds a user's recent-review feed. The ordered query spans
// every skill's review collection and needs a store-side index; when the
// store reports the index missing the feed degrades to an unordered
// fetch sorted here, instead of failing the page.
func (u *profileUsecase) Activity(ctx context.Context, actor domain.Actor, userID string) (*domain.ActivityView, error) {
	if err := policy.Err(policy.RequireMember(actor)); err != nil {
		return nil, err
	}
	profileUser, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := u.reviewRepo.ListByUser(ctx, userID, u.activityFeedLimit, true)
	if apperror.IsKind(err, apperror.KindIndexUnavailable) {
		logger.Log.Warn("review index unavailable, using unordered fallback", "user_id", userID)
		reviews, err = u.reviewRepo.ListByUser(ctx, userID, 0, false)
		if err != nil {
			return nil, err
		}
		sortReviewsNewestFirst(reviews)
		if len(reviews) > u.activityFeedLimit {
			reviews = reviews[:u.activityFeedLimit]
		}
	} else if err != nil {
		return nil, err
	}

	skills := resolver.New(u.skillFetcher())
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.SkillID)
	}
	skills.ResolveMany(ctx, ids)

	items := make([]domain.ActivityItem, 0, len(reviews))
	for _, r := range reviews {
		skill, ok := skills.Resolve(ctx, r.SkillID)
		if !ok {
			// The reviewed skill was deleted; its review carries no
			// context anymore.
			continue
		}
		items = append(items, domain.ActivityItem{
			Type:   "review",
			Skill:  skill,
			Review: r,
		})
	}

	return &domain.ActivityView{
		ProfileUser: *profileUser,
		Items:       items,
	}, nil
}

func (u *profileUsecase) skillFetcher() resolver.FetchFunc[domain.Skill] {
	return func(ctx context.Context, id string) (domain.Skill, bool, error) {
		s, err := u.skillRepo.GetByID(ctx, id)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				return domain.Skill{}, false, nil
			}
			return domain.Skill{}, false, err
		}
		return *s, true, nil
	}
}

// sortReviewsNewestFirst orders client-side; reviews without a
// timestamp sink to the end, treated as oldest.
func sortReviewsNewestFirst(reviews []domain.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}
