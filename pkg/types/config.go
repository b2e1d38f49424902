package types

// Defaults applied by the CLI and by Config.WithDefaults.
const (
	DefaultCapacity  = 75
	DefaultLedgerDSN = ":memory:"
	DefaultLogLevel  = "info"
)

// Config holds the parameters for building a Warehouse.
type Config struct {
	// Capacity is the number of storage rack slots.
	Capacity int `json:"capacity" yaml:"capacity" mapstructure:"capacity"`

	// Seed drives bonus selection and bonus identifiers. Zero means seed
	// from the clock.
	Seed uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`

	// LedgerDSN is the SQLite data source for the order ledger. Empty
	// disables the ledger.
	LedgerDSN string `json:"ledger_dsn" yaml:"ledger_dsn" mapstructure:"ledger_dsn"`

	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// validLogLevels lists the log levels that Validate accepts.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// WithDefaults returns a copy of c with zero-valued capacity and log level
// replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return ErrInvalidLogLevel
	}
	return nil
}
