// Package config assembles the client configuration from defaults, an
// optional JSON file, TALENTLEDGER_CLIENT_* environment variables and
// command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerEndpointAddr         string        `envconfig:"SERVER_ADDR" validate:"required"`
	DatabasePath               string        `envconfig:"DB_PATH" validate:"required"`
	UserName                   string        `envconfig:"USERNAME"`
	RequestTimeout             time.Duration `envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
	UnlockCostProfile          int64         `envconfig:"UNLOCK_COST_PROFILE" validate:"gt=0"`
	UnlockCostProfileMessaging int64         `envconfig:"UNLOCK_COST_PROFILE_MESSAGING" validate:"gtefield=UnlockCostProfile"`
	PageSize                   int           `envconfig:"PAGE_SIZE" validate:"gte=1,lte=200"`
	LoggedOutReturnDelay       time.Duration `envconfig:"LOGGED_OUT_RETURN_DELAY" validate:"gte=0"`
	PhotoCacheSizeBytes        int           `envconfig:"PHOTO_CACHE_SIZE" validate:"gte=524288"`
	PhotoCacheTTL              time.Duration `envconfig:"PHOTO_CACHE_TTL" validate:"eq=0|gte=1s"`
	LogBackend                 string        `envconfig:"LOG_BACKEND" validate:"oneof=slog zerolog"`
	LogLevel                   string        `envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFile                    string        `envconfig:"LOG_FILE"`
}

const EnvPrefix = "TALENTLEDGER_CLIENT"

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = "talentledger.db"
	c.RequestTimeout = 10 * time.Second
	c.UnlockCostProfile = common.UnlockCostProfile
	c.UnlockCostProfileMessaging = common.UnlockCostProfileMessaging
	c.PageSize = 10
	c.LoggedOutReturnDelay = 3 * time.Second
	c.PhotoCacheSizeBytes = 1 << 20
	c.PhotoCacheTTL = 10 * time.Minute
	c.LogBackend = "slog"
	c.LogLevel = "warn"
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config for the given process arguments (without the
// program name).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
