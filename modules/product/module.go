package product

import (
	"context"
	"fmt"
	"log"

	"github.com/example/produto-api/domain/product"
	cachemod "github.com/example/produto-api/modules/cache"
	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides product services as a mono module.
type Module struct {
	db          *gorm.DB
	repo        *product.Repository
	service     *Service
	cacheModule *cachemod.Module
	dbPath      string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new product module.
func NewModule(dbPath string) *Module {
	return &Module{dbPath: dbPath}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "product"
}

// SetCacheModule wires the optional cache module. Must be called before
// Start; the cache module must be registered ahead of this one so its
// cache exists by the time Start runs.
func (m *Module) SetCacheModule(c *cachemod.Module) {
	m.cacheModule = c
}

// Start opens the database, migrates the produto table and builds the
// product service.
func (m *Module) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	m.repo = product.NewRepository(db)
	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var c *cachemod.Cache
	if m.cacheModule != nil {
		c = m.cacheModule.Cache()
	}
	m.service = NewService(m.repo, c)

	log.Printf("[product] Module started (database: %s, cached: %t)", m.dbPath, c != nil)
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[product] Module stopped")
	return nil
}

// Service returns the product service.
func (m *Module) Service() *Service {
	return m.service
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}
