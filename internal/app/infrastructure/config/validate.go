package config

import (
	"errors"
	"fmt"
)

func (m *Manager) validate(cfg *Config) error {
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error, fatal; got %s", cfg.App.LogLevel)
	}

	if cfg.App.GinMode != "" && cfg.App.GinMode != "release" && cfg.App.GinMode != "debug" && cfg.App.GinMode != "test" {
		return fmt.Errorf("app.gin_mode must be release, debug or test; got %s", cfg.App.GinMode)
	}

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		return fmt.Errorf("app.port must be in [1,65535]; got %d", cfg.App.Port)
	}

	if cfg.App.ClientID == "" {
		return errors.New("app.client_id is required")
	}
	if cfg.App.AuthToken == "" {
		return errors.New("app.auth_token is required")
	}
	if cfg.App.CommandsFile == "" {
		return errors.New("app.commands_file is required")
	}
	if cfg.App.TokenFile == "" {
		return errors.New("app.token_file is required")
	}

	return nil
}
