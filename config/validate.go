// Copyright (c) 2025 The libraffle developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Program == "" {
		return ErrEmptyProgram
	}
	if err := validateProgram(cfg.Program); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// validateProgram checks that s parses as a base58 32-byte public key.
func validateProgram(s string) error {
	_, err := solana.PublicKeyFromBase58(s)
	return err
}
