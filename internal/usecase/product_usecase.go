package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/internal/resolver"
	"go-skillhub-backend/pkg/blob"
	"go-skillhub-backend/pkg/logger"
)

const productImagesFolder = "products"

func productTransform() blob.Transform {
	return blob.Transform{Width: 1000, Height: 1000, Crop: blob.CropLimit}
}

type productUsecase struct {
	productRepo domain.ProductRepository
	userRepo    domain.UserRepository
	blobs       blob.Storage
	validate    *validator.Validate
}

func NewProductUsecase(productRepo domain.ProductRepository, userRepo domain.UserRepository, blobs blob.Storage, validate *validator.Validate) domain.ProductUsecase {
	return &productUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
		blobs:       blobs,
		validate:    validate,
	}
}

func (u *productUsecase) Create(ctx context.Context, actor domain.Actor, input domain.ProductInput) (*domain.Product, error) {
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

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		AuthorID:    actor.ID,
		AuthorEmail: author.Email,
		IsPublished: input.Publish,
	}

	if input.Image != nil {
		url, err := u.blobs.Upload(ctx, input.Image, productImagesFolder, productTransform())
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	logger.Log.Info("product created", "product_id", product.ID, "author_id", actor.ID)
	return product, nil
}

func (u *productUsecase) Update(ctx context.Context, actor domain.Actor, productID string, input domain.ProductInput) (*domain.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := policy.Err(policy.CanEditContent(actor, product.AuthorID)); err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	changes := domain.ProductChanges{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		IsPublished: input.Publish,
	}

	if input.Image != nil {
		if publicID := blob.PublicIDFromURL(product.ImageURL); publicID != "" {
			if err := u.blobs.Destroy(ctx, publicID); err != nil {
				logger.Log.Warn("failed to remove old product image", "product_id", productID, "error", err)
			}
		}
		url, err := u.blobs.Upload(ctx, input.Image, productImagesFolder, productTransform())
		if err != nil {
			return nil, err
		}
		changes.ImageURL = &url
	}

	if err := u.productRepo.Update(ctx, productID, changes); err != nil {
		return nil, err
	}
	return u.productRepo.GetByID(ctx, productID)
}

func (u *productUsecase) Delete(ctx context.Context, actor domain.Actor, productID string) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := policy.Err(policy.CanEditContent(actor, product.AuthorID)); err != nil {
		return err
	}

	if publicID := blob.PublicIDFromURL(product.ImageURL); publicID != "" {
		if err := u.blobs.Destroy(ctx, publicID); err != nil {
			logger.Log.Warn("failed to remove product image", "product_id", productID, "error", err)
		}
	}
	return u.productRepo.Delete(ctx, productID)
}

func (u *productUsecase) Detail(ctx context.Context, actor domain.Actor, productID string) (*domain.ProductDetail, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := policy.Err(policy.CanViewContent(actor, product.AuthorID, product.IsPublished)); err != nil {
		return nil, err
	}

	users := resolver.New(userFetcher(u.userRepo))
	return &domain.ProductDetail{
		Product: *product,
		Author:  userOrUnknown(ctx, users, product.AuthorID),
	}, nil
}

// Marketplace lists every published product with its author resolved;
// one seller with many products is looked up once.
func (u *productUsecase) Marketplace(ctx context.Context, actor domain.Actor) ([]domain.ProductListing, error) {
	if err := policy.Err(policy.RequireMember(actor)); err != nil {
		return nil, err
	}
	products, err := u.productRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	users := resolver.New(userFetcher(u.userRepo))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.AuthorID)
	}
	users.ResolveMany(ctx, ids)

	listings := make([]domain.ProductListing, 0, len(products))
	for _, p := range products {
		listings = append(listings, domain.ProductListing{
			Product: p,
			Author:  userOrUnknown(ctx, users, p.AuthorID),
		})
	}
	return listings, nil
}
