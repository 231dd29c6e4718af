package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainProduct "storefront/internal/domain/product"
	"storefront/internal/infrastructure/database/postgres/models"
	"storefront/internal/listing"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List serves the product listing. totalCount is deliberately counted on
// the bare table before any keyword or field filter: the storefront shows
// "N products" for the whole catalog even while a filtered page is
// displayed. The filtered count is reported separately.
func (r *ProductRepository) List(ctx context.Context, req *listing.Request) ([]*domainProduct.Product, int64, int64, error) {
	var totalCount int64
	if err := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Count(&totalCount).Error; err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count products: %w", err)
	}

	q := r.db.DB.WithContext(ctx).Model(&models.ProductModel{})
	for _, cond := range req.Conditions() {
		q = q.Where(cond.Expr, cond.Args...)
	}

	var filteredCount int64
	if err := q.Count(&filteredCount).Error; err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count filtered products: %w", err)
	}

	var dbModels []models.ProductModel
	err := q.
		Limit(req.ResPerPage).
		Offset(req.Offset()).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*domainProduct.Product, 0, len(dbModels))
	for i := range dbModels {
		products = append(products, toProductEntity(&dbModels[i]))
	}

	return products, totalCount, filteredCount, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*domainProduct.Product, error) {
	var dbModel models.ProductModel
	err := r.db.DB.WithContext(ctx).
		Preload("Images").
		Preload("Reviews").
		Where("id = ?", productID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainProduct.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toProductEntity(&dbModel), nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domainProduct.Product, error) {
	var dbModels []models.ProductModel
	if err := r.db.DB.WithContext(ctx).
		Preload("Images").
		Order("created_at").
		Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list all products: %w", err)
	}

	products := make([]*domainProduct.Product, 0, len(dbModels))
	for i := range dbModels {
		products = append(products, toProductEntity(&dbModels[i]))
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domainProduct.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	dbModel := toProductModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domainProduct.Product) error {
	p.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"category":    p.Category,
			"seller":      p.Seller,
			"stock":       p.Stock,
			"updated_at":  p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProduct.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&models.ProductModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProduct.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, productID uuid.UUID, delta int) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProduct.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) ListReviews(ctx context.Context, productID uuid.UUID) ([]domainProduct.Review, error) {
	var dbModels []models.ReviewModel
	if err := r.db.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at").
		Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]domainProduct.Review, 0, len(dbModels))
	for i := range dbModels {
		reviews = append(reviews, toReviewEntity(&dbModels[i]))
	}
	return reviews, nil
}

func (r *ProductRepository) UpsertReview(ctx context.Context, review *domainProduct.Review) error {
	now := time.Now()
	dbModel := &models.ReviewModel{
		ID:        uuid.New(),
		ProductID: review.ProductID,
		UserID:    review.UserID,
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_name", "rating", "comment", "updated_at"}),
		}).
		Create(dbModel).Error
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}

	review.ID = dbModel.ID
	return nil
}

func (r *ProductRepository) DeleteReview(ctx context.Context, productID, reviewID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND product_id = ?", reviewID, productID).
		Delete(&models.ReviewModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProduct.ErrReviewNotFound
	}

	return nil
}

func (r *ProductRepository) UpdateRatingStats(ctx context.Context, productID uuid.UUID, ratings float64, numOfReviews int) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"ratings":        ratings,
			"num_of_reviews": numOfReviews,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update rating stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProduct.ErrProductNotFound
	}

	return nil
}

func toProductModel(p *domainProduct.Product) *models.ProductModel {
	m := &models.ProductModel{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Category:     p.Category,
		Seller:       p.Seller,
		Stock:        p.Stock,
		Ratings:      p.Ratings,
		NumOfReviews: p.NumOfReviews,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	for _, img := range p.Images {
		m.Images = append(m.Images, models.ProductImageModel{
			ID:        uuid.New(),
			ProductID: p.ID,
			PublicID:  img.PublicID,
			URL:       img.URL,
		})
	}

	return m
}

func toProductEntity(m *models.ProductModel) *domainProduct.Product {
	p := &domainProduct.Product{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Category:     m.Category,
		Seller:       m.Seller,
		Stock:        m.Stock,
		Ratings:      m.Ratings,
		NumOfReviews: m.NumOfReviews,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	for _, img := range m.Images {
		p.Images = append(p.Images, domainProduct.Image{
			PublicID: img.PublicID,
			URL:      img.URL,
		})
	}
	for i := range m.Reviews {
		p.Reviews = append(p.Reviews, toReviewEntity(&m.Reviews[i]))
	}

	return p
}

func toReviewEntity(m *models.ReviewModel) domainProduct.Review {
	return domainProduct.Review{
		ID:        m.ID,
		ProductID: m.ProductID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
