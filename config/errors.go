// Copyright (c) 2025 The libraffle developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrEmptyProgram indicates no program id is configured.
	ErrEmptyProgram = errors.New("config: program id must not be empty")

	// ErrInvalidProgram indicates the program id is not a 32-byte base58 key.
	ErrInvalidProgram = errors.New("config: invalid program id")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrUnknownConfigKey indicates a configuration key the host does not
	// recognize.
	ErrUnknownConfigKey = errors.New("config: unknown configuration key")
)
