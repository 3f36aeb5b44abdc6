package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"setupvault/internal/config"
	"setupvault/internal/logging"
	"setupvault/internal/vault"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.Discard()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.Discard()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withManager opens the vault for the duration of one command. The lock
// failure gets a friendlier message since it is the most common
// multi-invocation mistake.
func (c *commandContext) withManager(fn func(*vault.Manager) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	manager, err := vault.Open(cfg, c.ensureLogger())
	if err != nil {
		if errors.Is(err, vault.ErrVaultLocked) {
			return fmt.Errorf("vault at %s is in use by another sv process", cfg.Paths.VaultDir)
		}
		return err
	}
	defer manager.Close()
	return fn(manager)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
