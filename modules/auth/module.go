package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	domain "github.com/example/produto-api/domain/user"
	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SeedConfig describes the optional admin user created at startup when no
// row with the configured login exists. Empty Login disables seeding.
type SeedConfig struct {
	Login string
	Senha string
	Nome  string
	Roles string
}

// Module provides authentication services as a mono module.
type Module struct {
	db      *gorm.DB
	service *Service
	dbPath  string
	tokens  TokenConfig
	seed    SeedConfig
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new auth Module.
func NewModule(dbPath string, tokens TokenConfig, seed SeedConfig) *Module {
	return &Module{
		dbPath: dbPath,
		tokens: tokens,
		seed:   seed,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "auth"
}

// Start opens the database, migrates the usuario table and builds the
// auth service.
func (m *Module) Start(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	repo := NewUserRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	hasher := NewPasswordHasher()
	m.service = NewService(repo, hasher, NewTokenManager(m.tokens))

	if m.seed.Login != "" {
		if err := m.seedAdmin(ctx, repo, hasher); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	log.Printf("[auth] Module started (database: %s)", m.dbPath)
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
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
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

	if err := sqlDB.Ping(); err != nil {
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

// Service returns the auth service.
func (m *Module) Service() *Service {
	return m.service
}

// seedAdmin ensures a user with the configured login exists, creating it
// with a hashed senha when absent.
func (m *Module) seedAdmin(ctx context.Context, repo *UserRepository, hasher *PasswordHasher) error {
	if _, err := repo.FindByLogin(ctx, m.seed.Login); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := hasher.Hash(m.seed.Senha)
	if err != nil {
		return err
	}

	roles := m.seed.Roles
	if roles == "" {
		roles = domain.AdminRole
	}

	u := &domain.User{
		Login: m.seed.Login,
		Senha: hash,
		Nome:  m.seed.Nome,
		Roles: roles,
	}
	if err := repo.Create(ctx, u); err != nil {
		return err
	}

	log.Printf("[auth] Seeded admin user %q (id=%d)", u.Login, u.ID)
	return nil
}
