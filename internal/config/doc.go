// Package config loads runtime configuration for the Eazy-Shop sign-in front end.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database DSN (SQLite file path or Postgres URL)
//	-s string   storage driver: sqlite | postgres
//	-k string   password hasher for new accounts: bcrypt | argon2id
//	-cost int   bcrypt cost factor
//	-t int      handoff token lifetime (seconds)
//	-l string   log level: debug | info | warn | error
//
// # JSON schema
//
// Durations accept strings like "60s" or integer nanoseconds:
//
//	{
//	  "database_dsn": "ecommerce.db",
//	  "storage_driver": "sqlite",
//	  "hasher": "bcrypt",
//	  "bcrypt_cost": 12,
//	  "argon2_memory_kib": 65536,
//	  "argon2_time": 1,
//	  "argon2_threads": 4,
//	  "handoff_ttl": "60s",
//	  "handoff_secret": "",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Fields absent from the JSON keep their previous value.
package config
