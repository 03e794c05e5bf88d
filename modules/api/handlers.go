package api

import (
	"errors"
	"strconv"

	domain "github.com/example/produto-api/domain/product"
	"github.com/example/produto-api/modules/auth"
	productmod "github.com/example/produto-api/modules/product"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	products *productmod.Service
	auth     auth.Port
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(products *productmod.Service, authPort auth.Port) *Handlers {
	return &Handlers{
		products: products,
		auth:     authPort,
	}
}

// parseID validates the :id route parameter as a positive integer.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// storeError maps a persistence failure to a 500 response with the
// fixed-prefix message format.
func storeError(c *fiber.Ctx, prefix string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
		Message: prefix + " - " + err.Error(),
	})
}

// ListProducts handles GET /api/produtos.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return storeError(c, "Erro ao recuperar produtos", err)
	}
	return c.Status(fiber.StatusOK).JSON(products)
}

// GetProduct handles GET /api/produtos/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{Message: "ID inválido"})
	}

	p, err := h.products.GetByID(c.UserContext(), id)
	if err != nil {
		return storeError(c, "Erro ao recuperar produto", err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{Message: "Produto não encontrado"})
	}
	return c.Status(fiber.StatusOK).JSON(p)
}

// CreateProduct handles POST /api/produtos.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var req domain.CreateProductRequest
	if err := c.BodyParser(&req); err != nil || !req.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "descricao, valor e marca são obrigatórios",
		})
	}

	p, err := h.products.Create(c.UserContext(), &req)
	if err != nil {
		return storeError(c, "Erro ao criar produto", err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateProduct handles PUT /api/produtos/:id. Only fields present in the
// body are patched; absent fields keep their stored value.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{Message: "ID inválido"})
	}

	var req domain.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil || req.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Nenhum campo para atualizar",
		})
	}

	p, err := h.products.Update(c.UserContext(), id, &req)
	if err != nil {
		return storeError(c, "Erro ao atualizar produto", err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{Message: "Produto não encontrado"})
	}
	return c.Status(fiber.StatusOK).JSON(p)
}

// DeleteProduct handles DELETE /api/produtos/:id.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{Message: "ID inválido"})
	}

	found, err := h.products.Delete(c.UserContext(), id)
	if err != nil {
		return storeError(c, "Erro ao remover produto", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{Message: "Produto não encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Login handles POST /api/seguranca/login. A wrong login or senha answers
// 200 with a fixed message rather than an error status; existing consumers
// depend on that shape.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	// An unparseable body behaves like empty credentials.
	_ = c.BodyParser(&req)

	u, token, err := h.auth.Login(c.UserContext(), req.Login, req.Senha)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusOK).JSON(MessageResponse{
				Message: "Login ou senha incorretos",
			})
		}
		return storeError(c, "Erro ao verificar login", err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		ID:    u.ID,
		Login: u.Login,
		Nome:  u.Nome,
		Roles: u.Roles,
		Token: token,
	})
}
