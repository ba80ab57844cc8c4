package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	StoreCSV  = "csv"
	StoreGorm = "gorm"
	StoreSQL  = "sql"
)

const (
	defaultPort         = "8080"
	defaultCSVPath      = "data/sample-input.csv"
	defaultDatabasePath = "persons.db"
)

var defaultAllowedOrigins = []string{"http://localhost:5173"}

type Config struct {
	// which PersonStore backend to use: csv, gorm or sql
	Store string

	// file backend
	CSVPath         string // absolute path of the persons file
	CSVLegacyRowIDs bool   // read trailing numeric token of 3-column rows as id

	// relational backends
	DatabasePath string
	SeedDatabase bool

	// http server
	Port           string
	AllowedOrigins []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %t. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvListOrDefault(envVar string, defaultVal []string) []string {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	var out []string
	for _, v := range strings.Split(valStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func LoadConfig() (Config, error) {
	store := strings.ToLower(getEnvOrDefault("PERSON_STORE", StoreCSV))
	switch store {
	case StoreCSV, StoreGorm, StoreSQL:
	default:
		return Config{}, fmt.Errorf("unknown PERSON_STORE '%s' (want %s, %s or %s)", store, StoreCSV, StoreGorm, StoreSQL)
	}

	csvPath := getEnvOrDefault("PERSONS_CSV_PATH", defaultCSVPath)
	absCSVPath, err := filepath.Abs(csvPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for persons file '%s': %w", csvPath, err)
	}

	port := getEnvOrDefault("PORT", defaultPort)
	if p, err := strconv.Atoi(port); err != nil || p <= 0 || p > 65535 {
		log.Printf("Warning: Invalid PORT '%s'. Using default %s.", port, defaultPort)
		port = defaultPort
	}

	cfg := Config{
		Store:           store,
		CSVPath:         absCSVPath,
		CSVLegacyRowIDs: getEnvBoolOrDefault("CSV_LEGACY_ROW_IDS", false),
		DatabasePath:    getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		SeedDatabase:    getEnvBoolOrDefault("SEED_DATABASE", true),
		Port:            port,
		AllowedOrigins:  getEnvListOrDefault("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
	}

	return cfg, nil
}
