package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/flagx"
	"github.com/dmitrijs2005/talentledger/internal/timex"
	json "github.com/goccy/go-json"
)

// JsonConfig is the on-disk shape of the client config; absent fields keep
// their current values.
type JsonConfig struct {
	ServerEndpointAddr         *string         `json:"server_endpoint_addr"`
	DatabasePath               *string         `json:"database_path"`
	UserName                   *string         `json:"username"`
	RequestTimeout             *timex.Duration `json:"request_timeout"`
	UnlockCostProfile          *int64          `json:"unlock_cost_profile"`
	UnlockCostProfileMessaging *int64          `json:"unlock_cost_profile_messaging"`
	PageSize                   *int            `json:"page_size"`
	LoggedOutReturnDelay       *timex.Duration `json:"logged_out_return_delay"`
	PhotoCacheSizeBytes        *int            `json:"photo_cache_size"`
	PhotoCacheTTL              *timex.Duration `json:"photo_cache_ttl"`
	LogBackend                 *string         `json:"log_backend"`
	LogLevel                   *string         `json:"log_level"`
	LogFile                    *string         `json:"log_file"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	set(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.UserName, jc.UserName)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	set(&cfg.UnlockCostProfile, jc.UnlockCostProfile)
	set(&cfg.UnlockCostProfileMessaging, jc.UnlockCostProfileMessaging)
	set(&cfg.PageSize, jc.PageSize)
	setDuration(&cfg.LoggedOutReturnDelay, jc.LoggedOutReturnDelay)
	set(&cfg.PhotoCacheSizeBytes, jc.PhotoCacheSizeBytes)
	setDuration(&cfg.PhotoCacheTTL, jc.PhotoCacheTTL)
	set(&cfg.LogBackend, jc.LogBackend)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFile, jc.LogFile)

	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
