package config

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/sqlinc/internal/cli/output"
	"github.com/leapstack-labs/sqlinc/internal/logging"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ValidateRegistryFile checks that a configured registry file exists.
func (c *Config) ValidateRegistryFile() error {
	if c.RegistryFile == "" {
		return nil
	}
	if _, err := os.Stat(c.RegistryFile); os.IsNotExist(err) {
		return fmt.Errorf("registry file does not exist: %s\nHint: Create the file or use --registry to specify a different path", c.RegistryFile)
	}
	return nil
}
