// Package paths resolves the configuration directory and the ledger data
// source from flags, environment and platform defaults.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// appDirName is the per-application directory under the platform config root.
const appDirName = "warehouse"

// Environment variable names for overrides.
const (
	EnvConfigDir = "WAREHOUSE_CONFIG_DIR"
	EnvLedgerDSN = "WAREHOUSE_LEDGER_DSN"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/warehouse (fallback ~/.config/warehouse)
// macOS:   ~/Library/Application Support/warehouse
// Windows: %APPDATA%/warehouse
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > WAREHOUSE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveLedgerDSN returns the ledger data source following the precedence
// chain: flag > config.yaml ledger_dsn > WAREHOUSE_LEDGER_DSN env > in-memory.
// Plain file paths are made absolute; ":memory:" and "file:" URIs pass through.
func ResolveLedgerDSN(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(EnvLedgerDSN)} {
		if v != "" {
			return normalizeDSN(v)
		}
	}
	return types.DefaultLedgerDSN, nil
}

func normalizeDSN(dsn string) (string, error) {
	if dsn == types.DefaultLedgerDSN || strings.HasPrefix(dsn, "file:") {
		return dsn, nil
	}
	return filepath.Abs(dsn)
}
