package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER. MySQL is the default;
// sqlite is kept for local runs without a server (same driver the tests use).
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "mysql"
	}

	switch driver {
	case "mysql":
		user := envOr("DB_USER", "root")
		pass := os.Getenv("DB_PASS")
		host := envOr("DB_HOST", "127.0.0.1")
		port := envOr("DB_PORT", "3306")
		name := envOr("DB_NAME", "gezana")

		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, pass, host, port, name)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		path := envOr("DB_PATH", "gezana.db")
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
