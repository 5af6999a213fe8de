package config // package config loads application configuration from environment variables

import (
	"net"     // net joins host and port into a listen address
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses durations such as the shutdown timeout
)

// Config holds the runtime configuration of the example server.  Every
// field has a default so the server starts without any environment at all;
// the listen address is resolved separately by ResolveAddr because it also
// depends on the NSM port file and CLI flags.
type Config struct {
	Env             string        // application environment (dev, prod)
	Name            string        // project name shown on the home page and in /api/info
	Version         string        // application version reported by /api/info
	Domain          string        // local development domain
	Host            string        // APP_HOST override for the listen host (empty = unset)
	Port            int           // APP_PORT override for the listen port (0 = unset)
	PortsFile       string        // path of the NSM port file
	StaticDir       string        // directory mounted at /static
	LogLevel        string        // zap level name
	ShutdownTimeout time.Duration // grace period for in-flight requests on shutdown
}

// Load reads configuration values from environment variables and returns a
// Config.  Unlike required settings in larger services, nothing here is
// mandatory: unset or malformed values fall back to defaults.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		Name:            getenv("APP_NAME", "nsm-example"),
		Version:         getenv("APP_VERSION", "1.0.0"),
		Domain:          getenv("APP_DOMAIN", "localhost"),
		Host:            os.Getenv("APP_HOST"),
		Port:            atoi(os.Getenv("APP_PORT")),
		PortsFile:       getenv("NSM_PORTS_FILE", DefaultPortsFile),
		StaticDir:       getenv("STATIC_DIR", "static"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// IsProd reports whether the server runs with production settings.
func (c Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "production"
}

// NSMEnabled reports whether the server runs under NSM.  It is read on every
// call so /api/info reflects the current process environment.
func NSMEnabled() bool {
	return os.Getenv("NSM_ENABLED") == "true"
}

// PortValid reports whether Port is unset or a usable TCP port.  ResolveAddr
// ignores an invalid override.
func (c Config) PortValid() bool {
	return c.Port == 0 || (c.Port > 0 && c.Port <= maxPort)
}

// ResolveAddr picks the listen address.  Explicit overrides win over the
// values found in the port file, which in turn already carry the defaults.
func (c Config) ResolveAddr(ports PortConfig) string {
	host := ports.Host
	if c.Host != "" {
		host = c.Host
	}
	port := ports.HTTP
	if c.Port > 0 && c.Port <= maxPort {
		port = c.Port
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
