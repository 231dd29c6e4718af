package postgres

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	domainProduct "storefront/internal/domain/product"
	"storefront/internal/listing"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm with sqlmock: %v", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = sqlDB.Close()
	})

	return &DB{DB: gormDB}, mock
}

func TestProductRepositoryListCountsBeforeFiltering(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	// Catalog-wide count runs on the bare table, before any filter.
	mock.ExpectQuery(`^SELECT count\(\*\) FROM "products"$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	mock.ExpectQuery(`^SELECT count\(\*\) FROM "products" WHERE name ILIKE \$1 AND price >= \$2$`).
		WithArgs("%laptop%", 50.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	mock.ExpectQuery(`^SELECT \* FROM "products" WHERE name ILIKE \$1 AND price >= \$2 LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category"}).
			AddRow(uuid.New(), "Gaming Laptop", 1200.0, "Electronics").
			AddRow(uuid.New(), "Laptop Stand", 55.0, "Accessories"))

	query := url.Values{}
	query.Set("keyword", "laptop")
	query.Set("price[gte]", "50")
	query.Set("page", "2")

	req, err := listing.ParseRequest(query, 4)
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}

	products, totalCount, filteredCount, err := repo.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if totalCount != 25 {
		t.Fatalf("expected unfiltered count 25, got %d", totalCount)
	}
	if filteredCount != 6 {
		t.Fatalf("expected filtered count 6, got %d", filteredCount)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Gaming Laptop" {
		t.Fatalf("unexpected first product %q", products[0].Name)
	}
}

func TestProductRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`^SELECT \* FROM "products" WHERE id = \$1 ORDER BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domainProduct.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepositoryUpdateStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`^UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpdateStock(context.Background(), uuid.New(), -2); err != nil {
		t.Fatalf("UpdateStock returned error: %v", err)
	}
}

func TestProductRepositoryUpdateStockUnknownProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`^UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStock(context.Background(), uuid.New(), -2)
	if !errors.Is(err, domainProduct.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepositoryDeleteReviewNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`^DELETE FROM "reviews" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DeleteReview(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domainProduct.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}
