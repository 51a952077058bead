package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/theatre-reservation/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBPass: "s3cret",
		DBHost: "db.internal",
		DBPort: "3306",
		DBName: "theatre",
	}
	assert.Equal(t,
		"app:s3cret@tcp(db.internal:3306)/theatre?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "root",
		DBHost: "localhost",
		DBPort: "3307",
		DBName: "theatre_test",
	}
	assert.Equal(t,
		"root@tcp(localhost:3307)/theatre_test?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}
