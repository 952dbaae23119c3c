package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database from environment configuration.
// DB_DRIVER selects mysql (default) or sqlite; sqlite is what the test
// suite and local runs without a server use.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "mysql"
	}

	switch driver {
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				os.Getenv("DB_USER"),
				os.Getenv("DB_PASS"),
				getEnv("DB_HOST", "127.0.0.1"),
				getEnv("DB_PORT", "3306"),
				os.Getenv("DB_NAME"),
			)
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		path := getEnv("DB_PATH", "restaurant.db")
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// UseStoredProcedures reports whether the underlying database carries
// the POS stored procedures. Only MySQL deployments do.
func UseStoredProcedures() bool {
	driver := os.Getenv("DB_DRIVER")
	return driver == "" || driver == "mysql"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
