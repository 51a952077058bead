// Package database owns the MySQL connection pool.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/theatre-reservation/internal/config"
)

const pingTimeout = 5 * time.Second

// Open builds the DSN from the loaded configuration, sizes the pool from
// the DB_* pool settings and verifies the connection with a bounded ping.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnLifeMin) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// dsn renders the go-sql-driver connection string.  parseTime maps DATETIME
// columns to time.Time; loc=UTC keeps showing times comparable to
// time.Now().UTC() in the handlers.
func dsn(cfg config.Config) string {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = cfg.DBUser + ":" + cfg.DBPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
