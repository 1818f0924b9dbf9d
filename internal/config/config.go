package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/MJE43/fxparams/internal/params"
	"github.com/MJE43/fxparams/internal/sandbox"
)

// EnvPrefix prefixes every variable Load reads.
const EnvPrefix = "FXPARAMS_"

// Config is the process configuration.
type Config struct {
	Addr          string        `env:"ADDR" envDefault:":8080" validate:"required"`
	Hash          string        `env:"HASH"`
	Minter        string        `env:"MINTER"`
	Iteration     uint64        `env:"ITERATION" envDefault:"1" validate:"gte=1"`
	Context       string        `env:"CONTEXT" envDefault:"standalone" validate:"oneof=standalone capture fast-capture minting"`
	InputBytes    string        `env:"INPUT_BYTES"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	LogHuman      bool          `env:"LOG_HUMAN"`
	ScriptTimeout time.Duration `env:"SCRIPT_TIMEOUT" envDefault:"1s" validate:"gt=0"`
	Definitions   string        `env:"DEFINITIONS"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints. Call it again after overriding fields
// from flags.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Identity is the sandbox session the configuration describes.
func (c Config) Identity() sandbox.Identity {
	return sandbox.Identity{
		Hash:       c.Hash,
		Minter:     c.Minter,
		Iteration:  c.Iteration,
		Context:    c.Context,
		InputBytes: c.InputBytes,
	}
}

// LoadDefinitions reads parameter definitions from a file. Files ending in
// .json are decoded as JSON, anything else as YAML.
func LoadDefinitions(path string) ([]params.Parameter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return params.DecodeJSON(data)
	}
	return params.DecodeYAML(data)
}
