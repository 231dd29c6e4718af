package product

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/listing"
)

// Repository defines catalog persistence. List applies a parsed listing
// request; totalCount is the size of the whole catalog before any filter is
// applied (the listing UI shows it regardless of the active filters), while
// filteredCount reflects the keyword/field constraints.
type Repository interface {
	List(ctx context.Context, req *listing.Request) (products []*Product, totalCount int64, filteredCount int64, err error)
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, productID uuid.UUID) error
	UpdateStock(ctx context.Context, productID uuid.UUID, delta int) error

	ListReviews(ctx context.Context, productID uuid.UUID) ([]Review, error)
	// UpsertReview inserts the review or, when the user already reviewed the
	// product, replaces their rating and comment.
	UpsertReview(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, productID, reviewID uuid.UUID) error
	// UpdateRatingStats writes the denormalized aggregates back onto the
	// product row.
	UpdateRatingStats(ctx context.Context, productID uuid.UUID, ratings float64, numOfReviews int) error
}
