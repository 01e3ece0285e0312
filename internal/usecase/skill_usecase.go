package usecase

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/internal/resolver"
	"go-skillhub-backend/internal/search"
	"go-skillhub-backend/pkg/apperror"
	"go-skillhub-backend/pkg/blob"
	"go-skillhub-backend/pkg/logger"
)

const skillCoversFolder = "skills"

type skillUsecase struct {
	skillRepo      domain.SkillRepository
	lessonRepo     domain.LessonRepository
	reviewRepo     domain.ReviewRepository
	discussionRepo domain.DiscussionRepository
	userRepo       domain.UserRepository
	blobs          blob.Storage
	validate       *validator.Validate
	homeFeedLimit  int
}

func NewSkillUsecase(
	skillRepo domain.SkillRepository,
	lessonRepo domain.LessonRepository,
	reviewRepo domain.ReviewRepository,
	discussionRepo domain.DiscussionRepository,
	userRepo domain.UserRepository,
	blobs blob.Storage,
	validate *validator.Validate,
	homeFeedLimit int,
) domain.SkillUsecase {
	return &skillUsecase{
		skillRepo:      skillRepo,
		lessonRepo:     lessonRepo,
		reviewRepo:     reviewRepo,
		discussionRepo: discussionRepo,
		userRepo:       userRepo,
		blobs:          blobs,
		validate:       validate,
		homeFeedLimit:  homeFeedLimit,
	}
}

func (u *skillUsecase) Create(ctx context.Context, actor domain.Actor, input domain.SkillInput) (*domain.Skill, error) {
	if err := policy.Err(policy.CanCreateContent(actor)); err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	author, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	skill := &domain.Skill{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		AuthorID:     actor.ID,
		AuthorEmail:  author.Email,
		SearchTokens: search.Tokens(input.Name + " " + input.Description),
		IsPublished:  input.Publish,
	}

	if input.Image != nil {
		url, err := u.blobs.Upload(ctx, input.Image, skillCoversFolder, coverTransform())
		if err != nil {
			return nil, err
		}
		skill.ImageURL = url
	}

	if err := u.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	logger.Log.Info("skill created", "skill_id", skill.ID, "author_id", actor.ID)
	return skill, nil
}

func (u *skillUsecase) Update(ctx context.Context, actor domain.Actor, skillID string, input domain.SkillInput) (*domain.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if err := policy.Err(policy.CanEditContent(actor, skill.AuthorID)); err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	changes := domain.SkillChanges{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		SearchTokens: search.Tokens(input.Name + " " + input.Description),
		IsPublished:  input.Publish,
	}

	if input.Image != nil {
		if publicID := blob.PublicIDFromURL(skill.ImageURL); publicID != "" {
			if err := u.blobs.Destroy(ctx, publicID); err != nil {
				logger.Log.Warn("failed to remove old cover image", "skill_id", skillID, "error", err)
			}
		}
		url, err := u.blobs.Upload(ctx, input.Image, skillCoversFolder, coverTransform())
		if err != nil {
			return nil, err
		}
		changes.ImageURL = &url
	}

	if err := u.skillRepo.Update(ctx, skillID, changes); err != nil {
		return nil, err
	}
	return u.skillRepo.GetByID(ctx, skillID)
}

// Delete removes the skill and everything beneath it: lessons, reviews,
// discussions and replies go with the parent.
func (u *skillUsecase) Delete(ctx context.Context, actor domain.Actor, skillID string) error {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}
	if err := policy.Err(policy.CanEditContent(actor, skill.AuthorID)); err != nil {
		return err
	}

	if publicID := blob.PublicIDFromURL(skill.ImageURL); publicID != "" {
		if err := u.blobs.Destroy(ctx, publicID); err != nil {
			logger.Log.Warn("failed to remove cover image", "skill_id", skillID, "error", err)
		}
	}
	if err := u.skillRepo.Delete(ctx, skillID); err != nil {
		return err
	}
	logger.Log.Info("skill deleted", "skill_id", skillID, "actor_id", actor.ID)
	return nil
}

// Detail assembles the full course page. All author references across
// reviews, posts and replies resolve through one request-scoped cache,
// so a user appearing many times costs a single lookup.
func (u *skillUsecase) Detail(ctx context.Context, actor domain.Actor, skillID string) (*domain.SkillDetail, error) {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if err := policy.Err(policy.CanViewContent(actor, skill.AuthorID, skill.IsPublished)); err != nil {
		return nil, err
	}

	lessons, err := u.lessonRepo.ListBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	reviews, err := u.reviewRepo.ListBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	posts, err := u.discussionRepo.ListPosts(ctx, skillID)
	if err != nil {
		return nil, err
	}
	replies := make(map[string][]domain.DiscussionReply, len(posts))
	for _, post := range posts {
		rs, err := u.discussionRepo.ListReplies(ctx, skillID, post.ID)
		if err != nil {
			return nil, err
		}
		replies[post.ID] = rs
	}

	users := resolver.New(userFetcher(u.userRepo))
	ids := []string{skill.AuthorID}
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}
	for _, p := range posts {
		ids = append(ids, p.UserID)
		for _, r := range replies[p.ID] {
			ids = append(ids, r.UserID)
		}
	}
	users.ResolveMany(ctx, ids)

	reviewViews := make([]domain.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		reviewViews = append(reviewViews, domain.ReviewView{
			Review: r,
			Author: userOrUnknown(ctx, users, r.UserID),
		})
	}

	postViews := make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		replyViews := make([]domain.ReplyView, 0, len(replies[p.ID]))
		for _, r := range replies[p.ID] {
			replyViews = append(replyViews, domain.ReplyView{
				DiscussionReply: r,
				Author:          userOrUnknown(ctx, users, r.UserID),
			})
		}
		postViews = append(postViews, domain.PostView{
			DiscussionPost: p,
			Author:         userOrUnknown(ctx, users, p.UserID),
			Replies:        replyViews,
		})
	}

	return &domain.SkillDetail{
		Skill:       *skill,
		Author:      userOrUnknown(ctx, users, skill.AuthorID),
		Lessons:     lessons,
		Summary:     summarize(reviews),
		Reviews:     reviewViews,
		Discussions: postViews,
	}, nil
}

func (u *skillUsecase) Browse(ctx context.Context, actor domain.Actor, f domain.SkillFilter) ([]domain.Skill, error) {
	if err := policy.Err(policy.RequireMember(actor)); err != nil {
		return nil, err
	}
	return u.skillRepo.ListPublished(ctx, f)
}

func (u *skillUsecase) Home(ctx context.Context, actor domain.Actor) (*domain.HomeFeed, error) {
	if err := policy.Err(policy.RequireMember(actor)); err != nil {
		return nil, err
	}
	featured, err := u.skillRepo.ListFeatured(ctx, true, u.homeFeedLimit)
	if err != nil {
		return nil, err
	}
	recent, err := u.skillRepo.ListFeatured(ctx, false, u.homeFeedLimit)
	if err != nil {
		return nil, err
	}
	return &domain.HomeFeed{Featured: featured, Recent: recent}, nil
}

func (u *skillUsecase) MySkills(ctx context.Context, actor domain.Actor) ([]domain.SkillWithCounts, error) {
	if err := policy.Err(policy.CanCreateContent(actor)); err != nil {
		return nil, err
	}
	skills, err := u.skillRepo.ListByAuthor(ctx, actor.ID, false)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SkillWithCounts, 0, len(skills))
	for _, skill := range skills {
		lessons, err := u.lessonRepo.Count(ctx, skill.ID)
		if err != nil {
			return nil, err
		}
		reviews, err := u.reviewRepo.Count(ctx, skill.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SkillWithCounts{
			Skill:       skill,
			LessonCount: lessons,
			ReviewCount: reviews,
		})
	}
	return out, nil
}

// Player positions one lesson inside the ordered list. An empty lesson
// id selects the first lesson.
func (u *skillUsecase) Player(ctx context.Context, actor domain.Actor, skillID, lessonID string) (*domain.CoursePlayer, error) {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if err := policy.Err(policy.CanViewContent(actor, skill.AuthorID, skill.IsPublished)); err != nil {
		return nil, err
	}

	lessons, err := u.lessonRepo.ListBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, apperror.NotFound("This course has no lessons yet.")
	}

	active := 0
	if lessonID != "" {
		active = -1
		for i, l := range lessons {
			if l.ID == lessonID {
				active = i
				break
			}
		}
		if active < 0 {
			return nil, apperror.NotFound("Lesson not found.")
		}
	}

	player := &domain.CoursePlayer{
		Skill:   *skill,
		Lessons: lessons,
		Active:  lessons[active],
	}
	if active > 0 {
		player.Previous = &lessons[active-1]
	}
	if active < len(lessons)-1 {
		player.Next = &lessons[active+1]
	}
	return player, nil
}

// summarize averages ratings to one decimal; zero reviews average to 0.
func summarize(reviews []domain.Review) domain.ReviewSummary {
	if len(reviews) == 0 {
		return domain.ReviewSummary{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return domain.ReviewSummary{
		Count:   len(reviews),
		Average: math.Round(avg*10) / 10,
	}
}

func coverTransform() blob.Transform {
	return blob.Transform{Width: 1000, Height: 750, Crop: blob.CropLimit}
}
