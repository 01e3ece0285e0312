package domain

import (
	"context"
	"io"
	"time"
)

var ProductCategories = []string{
	"Apparel & Fashion", "Home Goods", "Jewelry & Accessories",
	"Art & Collectibles", "Beauty & Personal Care", "Craft Supplies",
	"Digital Products", "Other",
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	AuthorID    string    `json:"author_id"`
	AuthorEmail string    `json:"author_email,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsPublished bool      `json:"isPublished"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type ProductInput struct {
	Name        string  `validate:"required"`
	Description string  `validate:"required"`
	Price       float64 `validate:"min=0"`
	Category    string  `validate:"required"`
	Publish     bool
	Image       io.Reader // optional product image
}

type ProductChanges struct {
	Name        string
	Description string
	Price       float64
	Category    string
	IsPublished bool
	ImageURL    *string
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product *Product) error // assigns product.ID
	Update(ctx context.Context, id string, changes ProductChanges) error
	Delete(ctx context.Context, id string) error
	ListPublished(ctx context.Context) ([]Product, error)                                      // newest first
	ListByAuthor(ctx context.Context, authorID string, publishedOnly bool) ([]Product, error) // newest first
}

type ProductUsecase interface {
	Create(ctx context.Context, actor Actor, input ProductInput) (*Product, error)
	Update(ctx context.Context, actor Actor, productID string, input ProductInput) (*Product, error)
	Delete(ctx context.Context, actor Actor, productID string) error
	Detail(ctx context.Context, actor Actor, productID string) (*ProductDetail, error)
	Marketplace(ctx context.Context, actor Actor) ([]ProductListing, error)
}
