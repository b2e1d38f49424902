package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/warehouse/internal/paths"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyCapacity  = "capacity"
	cfgKeySeed      = "seed"
	cfgKeyLedgerDSN = "ledger_dsn"
	cfgKeyLogLevel  = "log_level"
)

// envBindings maps config keys to their environment overrides. The ledger
// DSN is resolved separately by paths.ResolveLedgerDSN.
var envBindings = map[string]string{
	cfgKeyCapacity: "WAREHOUSE_CAPACITY",
	cfgKeySeed:     "WAREHOUSE_SEED",
	cfgKeyLogLevel: "WAREHOUSE_LOG_LEVEL",
}

// configFile holds the structure written to config.yaml.
type configFile struct {
	Capacity  int    `yaml:"capacity"`
	Seed      uint64 `yaml:"seed"`
	LedgerDSN string `yaml:"ledger_dsn,omitempty"`
	LogLevel  string `yaml:"log_level"`
}

// loadConfig reads config.yaml from configDir with Viper and resolves the
// effective types.Config. A missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyCapacity, types.DefaultCapacity)
	v.SetDefault(cfgKeySeed, 0)
	v.SetDefault(cfgKeyLedgerDSN, "")
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return types.Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		Capacity: v.GetInt(cfgKeyCapacity),
		Seed:     v.GetUint64(cfgKeySeed),
		LogLevel: v.GetString(cfgKeyLogLevel),
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	dsn, err := paths.ResolveLedgerDSN("", v.GetString(cfgKeyLedgerDSN))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve ledger: %w", err)
	}
	cfg.LedgerDSN = dsn
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. Returns false if it already existed.
func writeConfigIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Capacity: types.DefaultCapacity,
		LogLevel: types.DefaultLogLevel,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# Warehouse configuration.\n# seed: 0 seeds bonus selection from the clock.\n# ledger_dsn: empty keeps the order ledger in memory.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// configPath returns the config.yaml path inside configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}
