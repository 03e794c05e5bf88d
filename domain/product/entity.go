// Package product provides the domain entity and repository for products.
package product

// Product represents a row in the produto table.
type Product struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Descricao string  `gorm:"size:255;not null" json:"descricao"`
	Valor     float64 `gorm:"not null" json:"valor"`
	Marca     string  `gorm:"size:100;not null" json:"marca"`
}

// TableName returns the table name for the Product entity.
func (Product) TableName() string {
	return "produto"
}

// CreateProductRequest represents the request to create a product.
// Valor is a pointer so that an explicit zero is distinguishable from
// an absent field.
type CreateProductRequest struct {
	Descricao string   `json:"descricao"`
	Valor     *float64 `json:"valor"`
	Marca     string   `json:"marca"`
}

// Valid reports whether all mandatory creation fields were supplied.
func (r *CreateProductRequest) Valid() bool {
	return r.Descricao != "" && r.Marca != "" && r.Valor != nil
}

// UpdateProductRequest represents a partial update. Nil fields are left
// untouched on the stored row.
type UpdateProductRequest struct {
	Descricao *string  `json:"descricao,omitempty"`
	Valor     *float64 `json:"valor,omitempty"`
	Marca     *string  `json:"marca,omitempty"`
}

// Empty reports whether the request carries no fields at all.
func (r *UpdateProductRequest) Empty() bool {
	return r.Descricao == nil && r.Valor == nil && r.Marca == nil
}

// Changes returns the column/value pairs present in the request.
func (r *UpdateProductRequest) Changes() map[string]any {
	changes := make(map[string]any)
	if r.Descricao != nil {
		changes["descricao"] = *r.Descricao
	}
	if r.Valor != nil {
		changes["valor"] = *r.Valor
	}
	if r.Marca != nil {
		changes["marca"] = *r.Marca
	}
	return changes
}
