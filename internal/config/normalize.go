package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeScanners(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	// The environment override wins over the config file so a user can point
	// a single command at an alternate vault without editing anything.
	if value := strings.TrimSpace(os.Getenv(EnvVaultPath)); value != "" {
		c.Paths.VaultDir = value
	}

	var err error
	if strings.TrimSpace(c.Paths.VaultDir) == "" {
		c.Paths.VaultDir = defaultVaultDir
	}
	if c.Paths.VaultDir, err = expandPath(c.Paths.VaultDir); err != nil {
		return fmt.Errorf("paths.vault_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanners() error {
	enabled := make([]string, 0, len(c.Scanners.Enabled))
	for _, name := range c.Scanners.Enabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			enabled = append(enabled, name)
		}
	}
	c.Scanners.Enabled = enabled

	paths := make([]string, 0, len(c.Scanners.DotfilePaths))
	for _, path := range c.Scanners.DotfilePaths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		expanded, err := expandPath(path)
		if err != nil {
			return fmt.Errorf("scanners.dotfile_paths: %w", err)
		}
		paths = append(paths, expanded)
	}
	c.Scanners.DotfilePaths = paths
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
