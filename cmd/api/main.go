package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/config"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/analytics"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/auth"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/deal"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/impersonation"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/order"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/product"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/supplier"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/user"
	"github.com/MachePOS/mache-supplier-portal-sub000/internal/ratelimit"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Rate limit store ────────────────────────────────────
	window := time.Duration(cfg.ExchangeRateWindow) * time.Second
	var limiter ratelimit.Store
	if cfg.RedisURL != "" {
		redisStore, err := ratelimit.NewRedisStore(cfg.RedisURL, cfg.ExchangeRateLimit, window)
		if err != nil {
			log.Fatal(err)
		}
		defer redisStore.Close()
		limiter = redisStore
	} else {
		memStore := ratelimit.NewMemoryStore(cfg.ExchangeRateLimit, window)
		defer memStore.Close()
		limiter = memStore
	}

	// ── Phase 1: Identity & Suppliers ───────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userService, userRepo, []byte(cfg.JWTSecret))
	cookieCodec := impersonation.NewCookieCodec([]byte(cfg.JWTSecret), cfg.IsProduction())

	// ── Router ──────────────────────────────────────────────
	// chi requires every middleware before the first route.
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(auth.Middleware(authService, cookieCodec.Decode))

	user.NewHandler(userService).RegisterRoutes(router)
	auth.NewHandler(authService).RegisterRoutes(router)

	supplierRepo := supplier.NewPostgresRepository(db)
	supplierService := supplier.NewService(supplierRepo)
	supplier.NewHandler(supplierService).RegisterRoutes(router)

	resolve := func(r *http.Request) (uuid.UUID, error) {
		return supplierService.ResolveSupplierID(r.Context())
	}

	// ── Phase 2: Catalog & Import/Export ────────────────────
	productRepo := product.NewPostgresRepository(db)
	categoryRepo := product.NewPostgresCategoryRepository(db)
	productService := product.NewService(productRepo, categoryRepo)
	product.NewHandler(productService, resolve).RegisterRoutes(router)

	// ── Phase 3: Orders & Deals ─────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService, resolve).RegisterRoutes(router)

	dealRepo := deal.NewPostgresRepository(db)
	dealService := deal.NewService(dealRepo)
	deal.NewHandler(dealService, resolve).RegisterRoutes(router)

	// ── Phase 4: Impersonation handoff ──────────────────────
	impRepo := impersonation.NewPostgresRepository(db)
	impService := impersonation.NewService(impRepo)
	impersonation.NewHandler(impService, limiter, cookieCodec).RegisterRoutes(router)

	// ── Phase 5: Analytics ──────────────────────────────────
	analyticsRepo := analytics.NewPostgresRepository(db)
	analyticsService := analytics.NewService(analyticsRepo)
	analytics.NewHandler(analyticsService, resolve).RegisterRoutes(router)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	fmt.Printf("Supplier portal API starting on :%s\n", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
