package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainuser "github.com/example/produto-api/domain/user"
	"github.com/example/produto-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// mockAuthPort implements auth.Port for testing.
type mockAuthPort struct {
	verifyTokenFunc    func(token string) (uint, error)
	authorizeAdminFunc func(ctx context.Context, userID uint) error
	loginFunc          func(ctx context.Context, login, senha string) (*domainuser.User, string, error)

	verifyCalls    int
	authorizeCalls int
}

func (m *mockAuthPort) VerifyToken(token string) (uint, error) {
	m.verifyCalls++
	if m.verifyTokenFunc != nil {
		return m.verifyTokenFunc(token)
	}
	return 0, errors.New("not implemented")
}

func (m *mockAuthPort) AuthorizeAdmin(ctx context.Context, userID uint) error {
	m.authorizeCalls++
	if m.authorizeAdminFunc != nil {
		return m.authorizeAdminFunc(ctx, userID)
	}
	return errors.New("not implemented")
}

func (m *mockAuthPort) Login(ctx context.Context, login, senha string) (*domainuser.User, string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, login, senha)
	}
	return nil, "", errors.New("not implemented")
}

func TestAuthRequired(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockAuth       *mockAuthPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Token de acesso requerida",
		},
		{
			name:           "header without credential",
			authHeader:     "Bearer",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Acesso negado",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid-token",
			mockAuth: &mockAuthPort{
				verifyTokenFunc: func(string) (uint, error) {
					return 0, auth.ErrInvalidToken
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Acesso negado",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			mockAuth: &mockAuthPort{
				verifyTokenFunc: func(string) (uint, error) {
					return 0, auth.ErrExpiredToken
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Acesso negado",
		},
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			mockAuth: &mockAuthPort{
				verifyTokenFunc: func(string) (uint, error) {
					return 42, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "authenticated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthRequired(tt.mockAuth))
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "authenticated"})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

// A missing header must terminate the request before any verification or
// downstream handler runs.
func TestAuthRequired_MissingHeaderHalts(t *testing.T) {
	mock := &mockAuthPort{}

	handlerRan := false
	app := fiber.New()
	app.Use(AuthRequired(mock))
	app.Get("/test", func(c *fiber.Ctx) error {
		handlerRan = true
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want 401", resp.StatusCode)
	}
	if mock.verifyCalls != 0 {
		t.Errorf("VerifyToken called %d times, want 0", mock.verifyCalls)
	}
	if handlerRan {
		t.Error("downstream handler ran despite missing header")
	}
}

func TestAuthRequired_StoresUserID(t *testing.T) {
	mock := &mockAuthPort{
		verifyTokenFunc: func(string) (uint, error) { return 77, nil },
	}

	var captured uint
	app := fiber.New()
	app.Use(AuthRequired(mock))
	app.Get("/test", func(c *fiber.Ctx) error {
		userID, ok := c.Locals(UserIDContextKey).(uint)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		captured = userID
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want 200", resp.StatusCode)
	}
	if captured != 77 {
		t.Errorf("user id in locals = %v, want 77", captured)
	}
}

func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name           string
		authorizeErr   error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "admin user",
			authorizeErr:   nil,
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:           "unknown user",
			authorizeErr:   auth.ErrUserUnknown,
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Acesso não autorizado",
		},
		{
			name:           "missing admin role",
			authorizeErr:   auth.ErrAdminRequired,
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Role de ADMIN requerida",
		},
		{
			name:           "store failure",
			authorizeErr:   errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Erro ao verificar roles de usuário - connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAuthPort{
				verifyTokenFunc: func(string) (uint, error) { return 1, nil },
				authorizeAdminFunc: func(context.Context, uint) error {
					return tt.authorizeErr
				},
			}

			app := fiber.New()
			app.Use(AuthRequired(mock), AdminRequired(mock))
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "ok"})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer valid-token")

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

// The role check must not run when authentication already failed.
func TestAdminRequired_NotReachedWithoutAuth(t *testing.T) {
	mock := &mockAuthPort{}

	app := fiber.New()
	app.Use(AuthRequired(mock), AdminRequired(mock))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want 401", resp.StatusCode)
	}
	if mock.authorizeCalls != 0 {
		t.Errorf("AuthorizeAdmin called %d times, want 0", mock.authorizeCalls)
	}
}
