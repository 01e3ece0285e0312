package docstore

import (
	"context"
	"time"

	ds "go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/internal/domain"
)

const productsCollection = "products"

type productRepository struct {
	store ds.Store
}

func NewProductRepository(store ds.Store) domain.ProductRepository {
	return &productRepository{store: store}
}

func productPath(id string) string {
	return ds.Join(productsCollection, id)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	doc, err := r.store.Get(ctx, productPath(id))
	if err != nil {
		return nil, err
	}
	return decodeProduct(doc), nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	data := map[string]any{
		"name":         product.Name,
		"description":  product.Description,
		"price":        product.Price,
		"category":     product.Category,
		"author_id":    product.AuthorID,
		"author_email": product.AuthorEmail,
		"image_url":    product.ImageURL,
		"isPublished":  product.IsPublished,
		"isFeatured":   product.IsFeatured,
		"created_at":   encodeTime(product.CreatedAt),
	}
	id, err := r.store.Add(ctx, productsCollection, data)
	if err != nil {
		return err
	}
	product.ID = id
	return nil
}

func (r *productRepository) Update(ctx context.Context, id string, changes domain.ProductChanges) error {
	partial := map[string]any{
		"name":        changes.Name,
		"description": changes.Description,
		"price":       changes.Price,
		"category":    changes.Category,
		"isPublished": changes.IsPublished,
		"updated_at":  encodeTime(time.Now()),
	}
	if changes.ImageURL != nil {
		partial["image_url"] = *changes.ImageURL
	}
	return r.store.Update(ctx, productPath(id), partial)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, productPath(id))
}

func (r *productRepository) ListPublished(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, ds.Query{
		Filters: []ds.Filter{ds.Where("isPublished", ds.OpEqual, true)},
		OrderBy: "created_at",
		Dir:     ds.Descending,
	})
}

func (r *productRepository) ListByAuthor(ctx context.Context, authorID string, publishedOnly bool) ([]domain.Product, error) {
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

func (r *productRepository) list(ctx context.Context, q ds.Query) ([]domain.Product, error) {
	docs, err := r.store.Query(ctx, productsCollection, q)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, *decodeProduct(doc))
	}
	return products, nil
}

func decodeProduct(doc ds.Doc) *domain.Product {
	return &domain.Product{
		ID:          doc.ID,
		Name:        str(doc.Data, "name"),
		Description: str(doc.Data, "description"),
		Price:       floatVal(doc.Data, "price"),
		Category:    str(doc.Data, "category"),
		AuthorID:    str(doc.Data, "author_id"),
		AuthorEmail: str(doc.Data, "author_email"),
		ImageURL:    str(doc.Data, "image_url"),
		IsPublished: boolVal(doc.Data, "isPublished"),
		IsFeatured:  boolVal(doc.Data, "isFeatured"),
		CreatedAt:   timeVal(doc.Data, "created_at"),
		UpdatedAt:   timeVal(doc.Data, "updated_at"),
	}
}
