package mountfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Environment variables which override the values of a loaded Config, see ApplyEnv.
const (
	EnvMountPoint = "MOUNTFS_MOUNT_POINT"
	EnvTeardown   = "MOUNTFS_TEARDOWN"
)

// String returns the textual form, either none or delete.
func (p TeardownPolicy) String() string {
	switch p {
	case TeardownNone:
		return "none"
	case TeardownDeleteRoot:
		return "delete"
	default:
		return fmt.Sprintf("TeardownPolicy(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p TeardownPolicy) MarshalText() ([]byte, error) {
	if p != TeardownNone && p != TeardownDeleteRoot {
		return nil, fmt.Errorf("unknown teardown policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string means none.
func (p *TeardownPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "none":
		*p = TeardownNone
	case "delete", "delete-root", "delete_root":
		*p = TeardownDeleteRoot
	default:
		return fmt.Errorf("unknown teardown policy %q (expected none or delete)", string(text))
	}
	return nil
}

// Set implements pflag.Value.
func (p *TeardownPolicy) Set(value string) error {
	return p.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.
func (p *TeardownPolicy) Type() string {
	return "policy"
}

// LoadConfig reads a Config from a file. Files ending in .json or .jsonc are parsed as JSON with comments,
// everything else as YAML. Environment overrides are applied afterwards, see ApplyEnv.
func LoadConfig(path string) (Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
			return config, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&config); err != nil {
		return config, err
	}
	return config, nil
}

// ApplyEnv overrides the mount point and teardown policy with MOUNTFS_MOUNT_POINT and MOUNTFS_TEARDOWN, if set.
func ApplyEnv(config *Config) error {
	if value, ok := os.LookupEnv(EnvMountPoint); ok {
		config.MountPoint = value
	}
	if value, ok := os.LookupEnv(EnvTeardown); ok {
		if err := config.Teardown.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTeardown, err)
		}
	}
	return nil
}
