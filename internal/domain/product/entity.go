package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Ratings and NumOfReviews are denormalized
// aggregates recomputed whenever a review is written or removed.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Category    string
	Seller      string
	Stock       int
	Ratings     float64
	NumOfReviews int
	Images      []Image
	Reviews     []Review
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Image struct {
	PublicID string
	URL      string
}

// Review is one user's rating of one product. A user reviewing the same
// product again replaces their previous review.
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	UserName  string
	Rating    float64
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AverageRating computes the mean rating of the given reviews, 0 when there
// are none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}
