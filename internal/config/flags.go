package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/eazyshop/internal/flagx"
)

var knownFlags = []string{"-d", "-s", "-k", "-cost", "-t", "-l"}

// parseFlags populates selected Config fields from command-line flags.
// Flags that belong to other passes (-c/-config) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("eazyshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite|postgres)")
	fs.StringVar(&cfg.Hasher, "k", cfg.Hasher, "password hasher (bcrypt|argon2id)")
	fs.IntVar(&cfg.BcryptCost, "cost", cfg.BcryptCost, "bcrypt cost factor")
	ttl := fs.Int("t", int(cfg.HandoffTTL.Seconds()), "handoff token lifetime (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.HandoffTTL = time.Duration(*ttl) * time.Second
		}
	})
	return nil
}
