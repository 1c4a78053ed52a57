package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hrconsole/internal/flagx"
	"github.com/dmitrijs2005/hrconsole/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration, so "3s" and integer nanoseconds both work.
// Pointer fields distinguish "absent" from "zero".
type JsonConfig struct {
	APIBaseURL      string          `json:"api_base_url"`
	StoreKind       string          `json:"store"`
	DatabasePath    string          `json:"database_path"`
	RedisAddr       string          `json:"redis_addr"`
	RedisPrefix     string          `json:"redis_prefix"`
	LogLevel        string          `json:"log_level"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	LogoutTimeout   *timex.Duration `json:"logout_timeout"`
	CoalesceRefresh *bool           `json:"coalesce_refresh"`
	DownloadDir     string          `json:"download_dir"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields absent from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.StoreKind, jc.StoreKind)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogoutTimeout != nil {
		cfg.LogoutTimeout = jc.LogoutTimeout.Duration
	}
	if jc.CoalesceRefresh != nil {
		cfg.CoalesceRefresh = *jc.CoalesceRefresh
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
