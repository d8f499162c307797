package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// Config holds runtime settings for the sign-in front end.
//
// HandoffSecret signs the token passed from the login screen to the
// dashboard; when empty a random secret is generated at start-up.
type Config struct {
	DatabaseDSN     string
	StorageDriver   string
	Hasher          string
	BcryptCost      int
	Argon2MemoryKiB uint32
	Argon2Time      uint32
	Argon2Threads   uint8
	HandoffTTL      time.Duration
	HandoffSecret   string
	LogLevel        string
	LogFormat       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "ecommerce.db"
	c.StorageDriver = DriverSQLite
	c.Hasher = HasherBcrypt
	c.BcryptCost = 12
	c.Argon2MemoryKiB = 64 * 1024
	c.Argon2Time = 1
	c.Argon2Threads = 4
	c.HandoffTTL = time.Minute
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	switch c.Hasher {
	case HasherBcrypt:
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
	case HasherArgon2id:
		if c.Argon2Time == 0 || c.Argon2MemoryKiB == 0 || c.Argon2Threads == 0 {
			return fmt.Errorf("argon2id parameters must be positive")
		}
	default:
		return fmt.Errorf("unknown hasher %q", c.Hasher)
	}

	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is empty")
	}
	if c.HandoffTTL <= 0 {
		return fmt.Errorf("handoff ttl must be positive")
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then the JSON file named in
// args (if any), then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
