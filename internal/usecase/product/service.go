package product

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainProduct "storefront/internal/domain/product"
	domainUser "storefront/internal/domain/user"
	"storefront/internal/listing"
	"storefront/internal/logger"
	appErrors "storefront/pkg/errors"
	"storefront/pkg/utils"
)

type Service struct {
	productRepo domainProduct.Repository
	resPerPage  int
}

func NewService(productRepo domainProduct.Repository, resPerPage int) *Service {
	if resPerPage <= 0 {
		resPerPage = 4
	}
	return &Service{
		productRepo: productRepo,
		resPerPage:  resPerPage,
	}
}

// List translates raw query parameters into a listing request and runs it.
// Malformed filters are rejected here, at the boundary, rather than being
// silently dropped into a match-all query.
func (s *Service) List(ctx context.Context, query url.Values) (*ListResponse, error) {
	req, err := listing.ParseRequest(query, s.resPerPage)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	products, totalCount, filteredCount, err := s.productRepo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}

	return &ListResponse{
		ProductCount:          totalCount,
		FilteredProductsCount: filteredCount,
		ResPerPage:            s.resPerPage,
		Products:              responses,
	}, nil
}

func (s *Service) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainProduct.ErrProductNotFound) {
			return nil, appErrors.ErrProductNotFound
		}
		return nil, err
	}

	return ToProductResponse(p), nil
}

func (s *Service) GetAll(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses, nil
}

func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, req *CreateProductRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p := &domainProduct.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Seller:      req.Seller,
		Stock:       req.Stock,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	for _, img := range req.Images {
		p.Images = append(p.Images, domainProduct.Image{
			PublicID: img.PublicID,
			URL:      img.URL,
		})
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.String("event", "product_created"),
	)

	return ToProductResponse(p), nil
}

func (s *Service) Update(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainProduct.ErrProductNotFound) {
			return nil, appErrors.ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Seller != nil {
		p.Seller = *req.Seller
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return ToProductResponse(p), nil
}

func (s *Service) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, domainProduct.ErrProductNotFound) {
			return appErrors.ErrProductNotFound
		}
		return err
	}

	logger.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("event", "product_deleted"),
	)

	return nil
}

// UpsertReview writes or replaces the reviewer's rating for the product and
// recomputes the denormalized aggregates. The read-recompute-write sequence
// is not transactional; concurrent reviewers race and the last write wins.
func (s *Service) UpsertReview(ctx context.Context, reviewer *domainUser.User, req *CreateReviewRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domainProduct.ErrProductNotFound) {
			return nil, appErrors.ErrProductNotFound
		}
		return nil, err
	}

	review := &domainProduct.Review{
		ProductID: p.ID,
		UserID:    reviewer.ID,
		UserName:  reviewer.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.productRepo.UpsertReview(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshRatingStats(ctx, p.ID); err != nil {
		return nil, err
	}

	return s.Get(ctx, p.ID)
}

func (s *Service) GetReviews(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domainProduct.ErrProductNotFound) {
			return nil, appErrors.ErrProductNotFound
		}
		return nil, err
	}

	reviews, err := s.productRepo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, ToReviewResponse(r))
	}
	return responses, nil
}

func (s *Service) DeleteReview(ctx context.Context, productID, reviewID uuid.UUID) error {
	if err := s.productRepo.DeleteReview(ctx, productID, reviewID); err != nil {
		if errors.Is(err, domainProduct.ErrReviewNotFound) {
			return appErrors.ErrReviewNotFound
		}
		return err
	}

	return s.refreshRatingStats(ctx, productID)
}

func (s *Service) refreshRatingStats(ctx context.Context, productID uuid.UUID) error {
	reviews, err := s.productRepo.ListReviews(ctx, productID)
	if err != nil {
		return err
	}

	ratings := domainProduct.AverageRating(reviews)
	if err := s.productRepo.UpdateRatingStats(ctx, productID, ratings, len(reviews)); err != nil {
		return fmt.Errorf("failed to refresh rating stats: %w", err)
	}

	return nil
}
