package config

import "os"

// DatabaseConfig holds MySQL settings for the task store.  When Host is
// empty tasks are kept in memory.
type DatabaseConfig struct {
    User string // database username
    Pass string // database password (optional)
    Host string // database host address
    Port string // database port number
    Name string // database name
}

// LoadDatabaseConfig reads the DB_* variables.
func LoadDatabaseConfig() DatabaseConfig {
    return DatabaseConfig{
        User: getenv("DB_USER", "root"),
        Pass: os.Getenv("DB_PASS"),
        Host: os.Getenv("DB_HOST"),
        Port: getenv("DB_PORT", "3306"),
        Name: getenv("DB_NAME", "nsm_example"),
    }
}

// Enabled reports whether a MySQL server is configured.
func (c DatabaseConfig) Enabled() bool { return c.Host != "" }
