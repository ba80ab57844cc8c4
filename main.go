package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/camden-git/personsbackend/config"
	"github.com/camden-git/personsbackend/database"
	"github.com/camden-git/personsbackend/handlers"
	"github.com/camden-git/personsbackend/metrics"
	"github.com/camden-git/personsbackend/repository"
)

// openRepository builds the store backend selected in the configuration.
// The returned func releases backend resources.
func openRepository(cfg config.Config) (repository.PersonRepositoryInterface, func(), error) {
	switch cfg.Store {
	case config.StoreGorm:
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := database.InitGormDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrateModels(db); err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
		}
		if cfg.SeedDatabase {
			if _, err := database.Seed(context.Background(), sqlDB); err != nil {
				return nil, nil, err
			}
		}
		return repository.NewPersonRepository(db), func() { sqlDB.Close() }, nil

	case config.StoreSQL:
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		if cfg.SeedDatabase {
			if _, err := database.Seed(context.Background(), db); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return repository.NewSQLPersonRepository(db), func() { db.Close() }, nil

	default:
		if _, err := os.Stat(cfg.CSVPath); err != nil {
			log.Printf("Warning: persons file %s is not accessible: %v", cfg.CSVPath, err)
		}
		parser := repository.LineParser{LegacyRowIDs: cfg.CSVLegacyRowIDs}
		return repository.NewCSVPersonRepository(cfg.CSVPath, parser), func() {}, nil
	}
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	store, closeStore, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize %s person store: %v", cfg.Store, err)
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.New(registry)
	store = repository.NewInstrumentedRepository(store, cfg.Store, storeMetrics)

	log.Printf("Using person store: %s", cfg.Store)
	switch cfg.Store {
	case config.StoreCSV:
		log.Printf("Reading persons from: %s", cfg.CSVPath)
	default:
		log.Printf("Using database: %s", cfg.DatabasePath)
	}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	personHandler := &handlers.PersonHandler{Repo: store}

	r.Route("/persons", personHandler.Routes)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	serverAddr := ":" + cfg.Port
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
