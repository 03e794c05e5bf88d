package auth

import (
	"context"
	"errors"

	domain "github.com/example/produto-api/domain/user"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles usuario persistence using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByLogin finds a user by login.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	var u domain.User
	result := r.db.WithContext(ctx).First(&u, "login = ?", login)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	result := r.db.WithContext(ctx).First(&u, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

// Create inserts a user row. Only used by seeding; the HTTP surface has no
// registration endpoint.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// Migrate runs database migrations for the usuario table.
func (r *UserRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.User{})
}
