package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/nsm-example/internal/config"
)

// DSN builds the go-sql-driver/mysql data source name for cfg.  The driver
// formats it so credentials may contain any character.
// parseTime -> DATETIME scans into time.Time | loc=UTC keeps times consistent |
// clientFoundRows makes UPDATE report matched rather than changed rows.
func DSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Open connects to MySQL, verifies the connection and makes sure the
// tasks table exists.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const tasksTable = `CREATE TABLE IF NOT EXISTS tasks (
	id          CHAR(36)     NOT NULL PRIMARY KEY,
	title       VARCHAR(200) NOT NULL,
	description TEXT         NOT NULL,
	priority    VARCHAR(16)  NOT NULL DEFAULT 'MEDIUM',
	status      VARCHAR(16)  NOT NULL DEFAULT 'TODO',
	created_at  DATETIME(6)  NOT NULL,
	updated_at  DATETIME(6)  NOT NULL,
	INDEX idx_tasks_created_at (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the tables the server needs when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, tasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}
