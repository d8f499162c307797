package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eazyshop/internal/flagx"
	"github.com/dmitrijs2005/eazyshop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so a partial file only
// overrides what it names.
type JsonConfig struct {
	DatabaseDSN     *string         `json:"database_dsn"`
	StorageDriver   *string         `json:"storage_driver"`
	Hasher          *string         `json:"hasher"`
	BcryptCost      *int            `json:"bcrypt_cost"`
	Argon2MemoryKiB *uint32         `json:"argon2_memory_kib"`
	Argon2Time      *uint32         `json:"argon2_time"`
	Argon2Threads   *uint8          `json:"argon2_threads"`
	HandoffTTL      *timex.Duration `json:"handoff_ttl"`
	HandoffSecret   *string         `json:"handoff_secret"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.StorageDriver, jc.StorageDriver)
	setIf(&cfg.Hasher, jc.Hasher)
	setIf(&cfg.BcryptCost, jc.BcryptCost)
	setIf(&cfg.Argon2MemoryKiB, jc.Argon2MemoryKiB)
	setIf(&cfg.Argon2Time, jc.Argon2Time)
	setIf(&cfg.Argon2Threads, jc.Argon2Threads)
	setIf(&cfg.HandoffSecret, jc.HandoffSecret)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.HandoffTTL != nil {
		cfg.HandoffTTL = jc.HandoffTTL.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
