package docstore

import (
	"context"
	"strings"
	"time"

	ds "go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/internal/domain"
)

const skillsCollection = "skills"

type skillRepository struct {
	store ds.Store
}

func NewSkillRepository(store ds.Store) domain.SkillRepository {
	return &skillRepository{store: store}
}

func skillPath(id string) string {
	return ds.Join(skillsCollection, id)
}

func (r *skillRepository) GetByID(ctx context.Context, id string) (*domain.Skill, error) {
	doc, err := r.store.Get(ctx, skillPath(id))
	if err != nil {
		return nil, err
	}
	return decodeSkill(doc), nil
}

func (r *skillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = time.Now()
	}
	data := map[string]any{
		"name":          skill.Name,
		"description":   skill.Description,
		"category":      skill.Category,
		"author_id":     skill.AuthorID,
		"author_email":  skill.AuthorEmail,
		"image_url":     skill.ImageURL,
		"search_tokens": skill.SearchTokens,
		"isPublished":   skill.IsPublished,
		"isFeatured":    skill.IsFeatured,
		"created_at":    encodeTime(skill.CreatedAt),
	}
	id, err := r.store.Add(ctx, skillsCollection, data)
	if err != nil {
		return err
	}
	skill.ID = id
	return nil
}

func (r *skillRepository) Update(ctx context.Context, id string, changes domain.SkillChanges) error {
	partial := map[string]any{
		"name":          changes.Name,
		"description":   changes.Description,
		"category":      changes.Category,
		"search_tokens": changes.SearchTokens,
		"isPublished":   changes.IsPublished,
		"updated_at":    encodeTime(time.Now()),
	}
	if changes.ImageURL != nil {
		partial["image_url"] = *changes.ImageURL
	}
	return r.store.Update(ctx, skillPath(id), partial)
}

func (r *skillRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteRecursive(ctx, skillPath(id))
}

func (r *skillRepository) SetPublished(ctx context.Context, id string, published bool) error {
	return r.store.Update(ctx, skillPath(id), map[string]any{"isPublished": published})
}

func (r *skillRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	return r.store.Update(ctx, skillPath(id), map[string]any{"isFeatured": featured})
}

func (r *skillRepository) ListPublished(ctx context.Context, f domain.SkillFilter) ([]domain.Skill, error) {
	filters := []ds.Filter{ds.Where("isPublished", ds.OpEqual, true)}
	if f.Category != "" {
		filters = append(filters, ds.Where("category", ds.OpEqual, f.Category))
	}
	if f.Search != "" {
		filters = append(filters, ds.Where("search_tokens", ds.OpArrayContains, strings.ToLower(f.Search)))
	}
	return r.list(ctx, ds.Query{
		Filters: filters,
		OrderBy: "created_at",
		Dir:     ds.Descending,
	})
}

func (r *skillRepository) ListFeatured(ctx context.Context, featured bool, limit int) ([]domain.Skill, error) {
	return r.list(ctx, ds.Query{
		Filters: []ds.Filter{
			ds.Where("isPublished", ds.OpEqual, true),
			ds.Where("isFeatured", ds.OpEqual, featured),
		},
		OrderBy: "created_at",
		Dir:     ds.Descending,
		Limit:   limit,
	})
}

func (r *skillRepository) ListByAuthor(ctx context.Context, authorID string, publishedOnly bool) ([]domain.Skill, error) {
	filters := []ds.Filter{ds.Where("author_id", ds.OpEqual, authorID)}
	if publishedOnly {
		filters = append(filters, ds.Where("isPublished", ds.OpEqual, true))
	}
	return r.list(ctx, ds.Query{
		Filters: filters,
		OrderBy: "created_at",
		Dir:     ds.Descending,
	})
}

func (r *skillRepository) ListAll(ctx context.Context) ([]domain.Skill, error) {
	return r.list(ctx, ds.Query{OrderBy: "created_at", Dir: ds.Descending})
}

func (r *skillRepository) list(ctx context.Context, q ds.Query) ([]domain.Skill, error) {
	docs, err := r.store.Query(ctx, skillsCollection, q)
	if err != nil {
		return nil, err
	}
	skills := make([]domain.Skill, 0, len(docs))
	for _, doc := range docs {
		skills = append(skills, *decodeSkill(doc))
	}
	return skills, nil
}

func decodeSkill(doc ds.Doc) *domain.Skill {
	return &domain.Skill{
		ID:           doc.ID,
		Name:         str(doc.Data, "name"),
		Description:  str(doc.Data, "description"),
		Category:     str(doc.Data, "category"),
		AuthorID:     str(doc.Data, "author_id"),
		AuthorEmail:  str(doc.Data, "author_email"),
		ImageURL:     str(doc.Data, "image_url"),
		SearchTokens: strSlice(doc.Data, "search_tokens"),
		IsPublished:  boolVal(doc.Data, "isPublished"),
		IsFeatured:   boolVal(doc.Data, "isFeatured"),
		CreatedAt:    timeVal(doc.Data, "created_at"),
		UpdatedAt:    timeVal(doc.Data, "updated_at"),
	}
}
