package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/medsupply/backend/internal/domain/catalog"
	"github.com/medsupply/backend/internal/domain/shared"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func productRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "sku", "name", "category", "unit_price", "stock_quantity", "reorder_level", "active"}).
		AddRow(id, "GLV-NTR-M", "Nitrile Exam Gloves", "gloves", decimal.NewFromFloat(12.50), int64(40), int64(10), true)
}

func TestNewGormProductRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product with sizes", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		sizeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(productRows(productID))
		mock.ExpectQuery(`SELECT \* FROM "product_sizes" WHERE "product_sizes"\."product_id" = \$1 ORDER BY position ASC`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "label", "unit_price", "position"}).
				AddRow(sizeID, productID, "Medium", decimal.NewFromFloat(12.50), 0))

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "GLV-NTR-M", product.SKU)
		assert.Len(t, product.Sizes, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("finds product by SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("GLV-NTR-M", 1).
			WillReturnRows(productRows(productID))
		mock.ExpectQuery(`SELECT \* FROM "product_sizes" WHERE "product_sizes"\."product_id" = \$1 ORDER BY position ASC`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "label", "unit_price", "position"}))

		product, err := repo.FindBySKU(context.Background(), "GLV-NTR-M")

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "GLV-NTR-M", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("MISSING", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindBySKU(context.Background(), "MISSING")

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	t.Run("finds multiple products by IDs", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id1 := uuid.New()
		id2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "sku", "name", "unit_price", "stock_quantity", "active"}).
			AddRow(id1, "GLV-NTR-M", "Nitrile Exam Gloves", decimal.NewFromFloat(12.50), int64(40), true).
			AddRow(id2, "MSK-SRG-50", "Surgical Masks 50ct", decimal.NewFromFloat(9.99), int64(120), true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2\)`).
			WithArgs(id1, id2).
			WillReturnRows(rows)

		products, err := repo.FindByIDs(context.Background(), []uuid.UUID{id1, id2})

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for empty IDs", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		products, err := repo.FindByIDs(context.Background(), []uuid.UUID{})

		assert.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_Count(t *testing.T) {
	t.Run("counts products", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies category filter", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE category = \$1`).
			WithArgs("gloves").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{
			Filters: map[string]interface{}{"category": "gloves"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindBelowReorderLevel(t *testing.T) {
	t.Run("finds active products below their threshold", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "sku", "name", "unit_price", "stock_quantity", "reorder_level", "active"}).
			AddRow(productID, "GLV-NTR-M", "Nitrile Exam Gloves", decimal.NewFromFloat(12.50), int64(4), int64(10), true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 AND reorder_level > 0 AND stock_quantity < reorder_level ORDER BY stock_quantity ASC`).
			WithArgs(true).
			WillReturnRows(rows)

		products, err := repo.FindBelowReorderLevel(context.Background())

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, int64(4), products[0].StockQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("deletes existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_AdjustStock(t *testing.T) {
	t.Run("applies delta and returns new stock", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`UPDATE products`).
			WithArgs(int64(-3), productID, int64(-3)).
			WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(int64(37)))

		newStock, err := repo.AdjustStock(context.Background(), productID, -3)

		assert.NoError(t, err)
		assert.Equal(t, int64(37), newStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a delta that would drive stock negative", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`UPDATE products`).
			WithArgs(int64(-50), productID, int64(-50)).
			WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		newStock, err := repo.AdjustStock(context.Background(), productID, -50)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.Zero(t, newStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`UPDATE products`).
			WithArgs(int64(5), productID, int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		newStock, err := repo.AdjustStock(context.Background(), productID, 5)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.Zero(t, newStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements ProductRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		var _ catalog.ProductRepository = repo
	})
}
