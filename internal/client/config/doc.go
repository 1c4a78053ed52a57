// Package config loads runtime configuration for the HR console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   HR API base URL
//	-s string   session store, sqlite or redis
//	-d string   SQLite profile file
//	-r string   Redis address
//	-l string   log level
//	-t int      request timeout (seconds), 0 for none
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8080/api/v1",
//	  "store": "redis",
//	  "redis_addr": "localhost:6379",
//	  "redis_prefix": "hr-team",
//	  "request_timeout": "30s",
//	  "logout_timeout": "5s",
//	  "coalesce_refresh": true
//	}
package config
