package rsalab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/pcacs/rsalab-go/pkg/rsalab/logging"
)

// DefaultCertainty matches the certainty the original tool hard-coded: a
// composite survives with probability at most 2^-20.
const DefaultCertainty = 20

// DefaultMaxExponentAttempts bounds the random public exponent search.
const DefaultMaxExponentAttempts = 100000

// Config gathers every knob a caller can set from a file or flags.
type Config struct {
	// Backend selects the arithmetic adapter: "native" or "gmp".
	Backend string `json:"backend" validate:"required,oneof=native gmp"`

	// Certainty is the primality confidence exponent; a composite passes with
	// probability at most 2^-Certainty.
	Certainty int `json:"certainty" validate:"min=1,max=256"`

	// MaxExponentAttempts caps rejection sampling of the public exponent.
	MaxExponentAttempts int `json:"max_exponent_attempts" validate:"min=1"`

	// InverseMethod chooses how d is derived: the backend's built-in inverse
	// ("backend") or the extended Euclidean reference ("euclid").
	InverseMethod string `json:"inverse_method" validate:"required,oneof=backend euclid"`

	Logging logging.Settings `json:"logging"`
	Bench   BenchSettings    `json:"bench"`
}

// BenchSettings drives the benchmark harness.
type BenchSettings struct {
	// Backends lists adapters to compare; the first is the reference for
	// equivalence checks.
	Backends []string `json:"backends" validate:"required,min=1,dive,oneof=native gmp"`

	// BitLengths is the key size sweep.
	BitLengths []int `json:"bit_lengths" validate:"required,min=1,dive,min=5,max=16384"`

	// KeyPairs is how many key pairs are built per backend and bit length.
	KeyPairs int `json:"key_pairs" validate:"min=1"`

	// Messages is how many random messages round-trip per key pair.
	Messages int `json:"messages" validate:"min=1"`

	// Seed seeds every trial set so timings and failures reproduce.
	Seed int64 `json:"seed"`
}

// DefaultConfig mirrors the original driver: certainty 20, seed 42 and the
// 32..1024 bit sweep.
func DefaultConfig() Config {
	return Config{
		Backend:             "native",
		Certainty:           DefaultCertainty,
		MaxExponentAttempts: DefaultMaxExponentAttempts,
		InverseMethod:       "backend",
		Logging:             logging.DefaultSettings(),
		Bench: BenchSettings{
			Backends:   []string{"native", "gmp"},
			BitLengths: []int{32, 64, 128, 256, 512, 1024},
			KeyPairs:   5,
			Messages:   200,
			Seed:       42,
		},
	}
}

// Validate checks the struct tags of the config and its nested settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their DefaultConfig values. The result is validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
