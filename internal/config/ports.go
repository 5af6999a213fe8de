package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultPortsFile is the file NSM writes next to a project with the ports it
// allocated for it.
const DefaultPortsFile = ".nsm-ports.json"

const maxPort = 65535

// PortConfig mirrors the NSM port file.  Keys missing from the file keep
// their default values.
type PortConfig struct {
	HTTP  int    `json:"http"`
	HTTPS int    `json:"https"`
	Host  string `json:"host"`
}

// DefaultPorts returns the ports used when no port file is present.
func DefaultPorts() PortConfig {
	return PortConfig{
		HTTP:  8080,
		HTTPS: 8443,
		Host:  "127.0.0.1",
	}
}

// LoadPorts reads the NSM port file at path.  Loading is best-effort: a
// missing file yields the defaults and a nil error, while an unreadable,
// malformed or out-of-range file yields the defaults together with an error
// the caller is expected to log before carrying on.
func LoadPorts(path string) (PortConfig, error) {
	def := DefaultPorts()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		return def, fmt.Errorf("read port file %s: %w", path, err)
	}

	cfg := def
	if err := json.Unmarshal(data, &cfg); err != nil {
		return def, fmt.Errorf("parse port file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return def, fmt.Errorf("port file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that both ports are usable TCP ports and a host is set.
func (p PortConfig) Validate() error {
	if p.HTTP < 1 || p.HTTP > maxPort {
		return fmt.Errorf("invalid http port %d", p.HTTP)
	}
	if p.HTTPS < 1 || p.HTTPS > maxPort {
		return fmt.Errorf("invalid https port %d", p.HTTPS)
	}
	if strings.TrimSpace(p.Host) == "" {
		return errors.New("empty host")
	}
	return nil
}
