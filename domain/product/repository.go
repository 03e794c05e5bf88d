package product

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository provides database operations for products.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new product. The store assigns the id.
func (r *Repository) Create(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its ID. Returns (nil, nil) when the row
// does not exist.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var p Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// List retrieves all products ordered by ID.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Patch applies the given column/value pairs to the row with the given id.
// Columns absent from changes keep their stored value.
func (r *Repository) Patch(ctx context.Context, id uint, changes map[string]any) error {
	if err := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product by its ID. Returns false when no row matched.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&Product{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete product: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Migrate runs database migrations for the produto table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Product{})
}
