package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/nsm-example/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{User: "app", Host: "db", Port: "3306", Name: "tasks"}

	dsn := DSN(cfg)
	assert.Contains(t, dsn, "charset=utf8mb4")

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Empty(t, parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "tasks", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
	assert.Equal(t, time.UTC, parsed.Loc)
}

func TestDSN_PasswordWithSeparators(t *testing.T) {
	cfg := config.DatabaseConfig{User: "app", Pass: "p@ss/w:rd?x=1", Host: "db", Port: "3307", Name: "tasks"}

	parsed, err := mysql.ParseDSN(DSN(cfg))
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "p@ss/w:rd?x=1", parsed.Passwd)
	assert.Equal(t, "db:3307", parsed.Addr)
	assert.Equal(t, "tasks", parsed.DBName)
}
