package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	apimod "github.com/example/produto-api/modules/api"
	authmod "github.com/example/produto-api/modules/auth"
	cachemod "github.com/example/produto-api/modules/cache"
	productmod "github.com/example/produto-api/modules/product"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration from environment
	dbPath := getEnv("DB_PATH", "./produto_api.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	staticDir := getEnv("STATIC_DIR", "./app/public")
	redisAddr := getEnv("REDIS_ADDR", "") // empty disables the read cache
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)

	tokens := authmod.DefaultTokenConfig()
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		tokens.SecretKey = secret
	}

	seed := authmod.SeedConfig{
		Login: getEnv("SEED_ADMIN_LOGIN", ""),
		Senha: getEnv("SEED_ADMIN_SENHA", ""),
		Nome:  getEnv("SEED_ADMIN_NOME", "Administrador"),
		Roles: getEnv("SEED_ADMIN_ROLES", "ADMIN;USER"),
	}

	log.Println("=== Produto API ===")
	log.Printf("Database: %s", dbPath)
	log.Printf("HTTP Port: %d", httpPort)
	if redisAddr != "" {
		log.Printf("Redis: %s (TTL: %s)", redisAddr, cacheTTL)
	}

	// Create modules
	authModule := authmod.NewModule(dbPath, tokens, seed)
	productModule := productmod.NewModule(dbPath)
	apiModule := apimod.NewModule(httpPort, staticDir)

	// Wire dependencies before start; modules start in registration order,
	// so every dependency is running by the time its consumer starts.
	apiModule.SetAuthModule(authModule)
	apiModule.SetProductModule(productModule)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	if redisAddr != "" {
		cacheModule := cachemod.NewModule(redisAddr, "produto:", cacheTTL)
		productModule.SetCacheModule(cacheModule)
		app.Register(cacheModule)
	}
	app.Register(authModule)
	app.Register(productModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	printStartupInfo(httpPort)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("API available at http://localhost:%d", port)
	log.Println("")
	log.Println("  POST   /api/seguranca/login - Login (returns session token)")
	log.Println("  GET    /api/produtos        - List products (token)")
	log.Println("  GET    /api/produtos/:id    - Get product (token)")
	log.Println("  POST   /api/produtos        - Create product (ADMIN)")
	log.Println("  PUT    /api/produtos/:id    - Update product (ADMIN)")
	log.Println("  DELETE /api/produtos/:id    - Delete product (ADMIN)")
	log.Println("  GET    /health              - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
