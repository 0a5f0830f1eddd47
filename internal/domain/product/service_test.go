package product

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func sampleCatalog() []Product {
	return []Product{
		{ID: 1, SKU: "GROC-001", Name: "Whole Milk 1L", Price: 349, StockQuantity: 48, Category: "Dairy"},
		{ID: 2, SKU: "GROC-002", Name: "Sourdough Bread", Price: 499, StockQuantity: 20, Category: "Bakery"},
		{ID: 3, SKU: "GROC-003", Name: "Bananas 1kg", Price: 189, StockQuantity: 60, Category: "Produce"},
		{ID: 4, SKU: "GROC-004", Name: "Ground Coffee 250g", Price: 899, StockQuantity: 8, Category: "Beverages"},
		{ID: 5, SKU: "GROC-005", Name: "Paper Towels 2pk", Price: 599, StockQuantity: 0, Category: "Household"},
		{ID: 6, SKU: "GROC-006", Name: "Butter 250g", Price: 429, StockQuantity: 5, Category: "Dairy"},
		{ID: 7, SKU: "MISC-001", Name: "Gift Bag", Price: 199, StockQuantity: 30, Category: ""},
	}
}

func TestCategoriesDistinctInFirstAppearanceOrder(t *testing.T) {
	got := Categories(sampleCatalog())

	// Dairy appears twice but is listed once; the empty category is dropped
	assert.Equal(t, []string{"Dairy", "Bakery", "Produce", "Beverages", "Household"}, got)
}

func TestCategoriesEmptyCatalog(t *testing.T) {
	assert.Empty(t, Categories(nil))
	assert.Empty(t, Categories([]Product{{Name: "Uncategorized", Category: ""}}))
}

func TestFilterNilReturnsEverything(t *testing.T) {
	products := sampleCatalog()
	assert.Len(t, Filter(products, nil), len(products))
}

func TestFilterByQueryMatchesNameOrSKU(t *testing.T) {
	products := sampleCatalog()

	byName := Filter(products, &CatalogFilter{Query: "milk"})
	assert.Len(t, byName, 1)
	assert.Equal(t, "Whole Milk 1L", byName[0].Name)

	bySKU := Filter(products, &CatalogFilter{Query: "misc"})
	assert.Len(t, bySKU, 1)
	assert.Equal(t, "Gift Bag", bySKU[0].Name)

	// Case-insensitive substring match
	mixed := Filter(products, &CatalogFilter{Query: "BRead"})
	assert.Len(t, mixed, 1)
}

func TestFilterByCategory(t *testing.T) {
	products := sampleCatalog()

	dairy := Filter(products, &CatalogFilter{Category: "Dairy"})
	assert.Len(t, dairy, 2)

	// "all" and empty both disable the predicate
	assert.Len(t, Filter(products, &CatalogFilter{Category: "all"}), len(products))
	assert.Len(t, Filter(products, &CatalogFilter{Category: ""}), len(products))

	assert.Empty(t, Filter(products, &CatalogFilter{Category: "Frozen"}))
}

func TestFilterByStockBucket(t *testing.T) {
	products := sampleCatalog()

	low := Filter(products, &CatalogFilter{StockBucket: StockBucketLow})
	assert.Len(t, low, 3) // coffee at 8, butter at 5, towels at 0

	out := Filter(products, &CatalogFilter{StockBucket: StockBucketOut})
	assert.Len(t, out, 1)
	assert.Equal(t, "Paper Towels 2pk", out[0].Name)

	assert.Len(t, Filter(products, &CatalogFilter{StockBucket: StockBucketAll}), len(products))
}

// TestFilterPredicatesAreConjunctive verifies that all three predicates
// must hold at once
func TestFilterPredicatesAreConjunctive(t *testing.T) {
	products := sampleCatalog()

	got := Filter(products, &CatalogFilter{
		Query:       "groc",
		Category:    "Dairy",
		StockBucket: StockBucketLow,
	})

	assert.Len(t, got, 1)
	assert.Equal(t, "Butter 250g", got[0].Name)
}

// TestFilterOutOfStockIndependentOfQuery verifies that the stock predicate
// still applies when the search text matches nothing about stock
func TestFilterOutOfStockIndependentOfQuery(t *testing.T) {
	products := sampleCatalog()

	got := Filter(products, &CatalogFilter{Query: "milk", StockBucket: StockBucketOut})
	assert.Empty(t, got)
}

func TestStockHelpers(t *testing.T) {
	assert.True(t, (&Product{StockQuantity: 0}).IsOutOfStock())
	assert.False(t, (&Product{StockQuantity: 1}).IsOutOfStock())

	assert.True(t, (&Product{StockQuantity: LowStockThreshold}).IsLowStock())
	assert.False(t, (&Product{StockQuantity: LowStockThreshold + 1}).IsLowStock())
}

func mockCatalogDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	db, mock := mockCatalogDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku"}).AddRow(1, "GROC-001"))

	svc := NewService(db, &config.Config{})

	_, err := svc.Create(&CreateProductRequest{SKU: "GROC-001", Name: "Whole Milk 1L", Price: 349, StockQuantity: 48}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSurfacesSKULookupFailure(t *testing.T) {
	db, mock := mockCatalogDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnError(fmt.Errorf("connection refused"))

	svc := NewService(db, &config.Config{})

	// A failed lookup must not be mistaken for a free SKU
	_, err := svc.Create(&CreateProductRequest{SKU: "GROC-009", Name: "Oat Milk 1L", Price: 349, StockQuantity: 10}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check for existing SKU")
	assert.NoError(t, mock.ExpectationsWereMet())
}
