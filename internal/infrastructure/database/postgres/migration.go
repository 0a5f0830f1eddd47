// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/product"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/shift"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&product.Product{},
		&product.StockMovement{},

		&sale.Sale{},
		&sale.SaleItem{},

		&shift.Shift{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_products_stock_quantity ON products(stock_quantity)",

		// Stock movement indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_product_created ON stock_movements(product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_reason ON stock_movements(reason)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_reference ON stock_movements(reference_id)",

		// Sale indexes
		"CREATE INDEX IF NOT EXISTS idx_sales_cashier_created ON sales(cashier_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_status ON sales(status)",

		// Sale item indexes
		"CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id)",
		"CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items(product_id)",

		// Shift indexes
		"CREATE INDEX IF NOT EXISTS idx_shifts_cashier_status ON shifts(cashier_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_shifts_started_at ON shifts(started_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedTestCashier(); err != nil {
		return fmt.Errorf("failed to seed test cashier: %w", err)
	}

	if err := m.seedSampleProducts(); err != nil {
		return fmt.Errorf("failed to seed sample products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			Email:       "admin@example.com",
			Password:    string(hashedPassword),
			DisplayName: "Store Manager",
			IsActive:    true,
			IsAdmin:     true,
		}

		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("✅ Created admin user: admin@example.com (password: admin123)")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
	}

	return nil
}

func (m *Migration) seedTestCashier() error {
	log.Println("👤 Seeding test cashier...")

	var existing user.User
	result := m.db.Where("email = ?", "cashier@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("cashier123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		testCashier := user.User{
			Email:       "cashier@example.com",
			Password:    string(hashedPassword),
			DisplayName: "Test Cashier",
			Phone:       "+15550100",
			IsActive:    true,
			IsAdmin:     false,
		}

		if err := m.db.Create(&testCashier).Error; err != nil {
			return err
		}

		log.Println("✅ Created test cashier: cashier@example.com (password: cashier123)")
	} else {
		log.Println("⏭️ Test cashier already exists")
	}

	return nil
}

// seedSampleProducts creates a small starter catalog for development
func (m *Migration) seedSampleProducts() error {
	log.Println("🛍️ Seeding sample products...")

	var productCount int64
	m.db.Model(&product.Product{}).Count(&productCount)

	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	sampleProducts := []product.Product{
		{
			SKU:           "GROC-001",
			Name:          "Whole Milk 1L",
			Price:         349, // $3.49
			StockQuantity: 48,
			Category:      "Dairy",
		},
		{
			SKU:           "GROC-002",
			Name:          "Sourdough Bread",
			Price:         499, // $4.99
			StockQuantity: 20,
			Category:      "Bakery",
		},
		{
			SKU:           "GROC-003",
			Name:          "Bananas 1kg",
			Price:         189, // $1.89
			StockQuantity: 60,
			Category:      "Produce",
		},
		{
			SKU:           "GROC-004",
			Name:          "Ground Coffee 250g",
			Price:         899, // $8.99
			StockQuantity: 8,
			Category:      "Beverages",
		},
		{
			SKU:           "GROC-005",
			Name:          "Paper Towels 2pk",
			Price:         599, // $5.99
			StockQuantity: 0,
			Category:      "Household",
		},
	}

	for _, prod := range sampleProducts {
		var existing product.Product
		result := m.db.Where("sku = ?", prod.SKU).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&prod).Error; err != nil {
				log.Printf("⚠️ Failed to create sample product %s: %v", prod.SKU, err)
			} else {
				log.Printf("✅ Created sample product: %s", prod.Name)
			}
		} else {
			log.Printf("⏭️ Product already exists: %s", prod.Name)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"shifts",
		"sale_items",
		"sales",
		"stock_movements",
		"products",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
