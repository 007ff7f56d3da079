// Copyright (c) 2025 The libraffle developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config manages the rafflehost configuration file.
//
// The file is a flat key=value format with '#' comments:
//
//	# rafflehost configuration
//	datadir = /home/user/.rafflehost
//	program = RAFf1eprogram1dbase58encoded0000000000000000
//	loglevel = info
//	logfile =
//	oraclekey = /home/user/.rafflehost/oracle.key
//
// Values missing from the file keep their defaults. Unknown keys are
// rejected so a typo fails loudly instead of silently running on
// defaults.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the rafflehost configuration.
type Config struct {
	DataDir   string // accounts database and oracle state live here
	Program   string // base58 program id the engine runs as
	LogLevel  string // debug, info, warn or error
	LogFile   string // empty logs to stderr
	OracleKey string // path to the encrypted oracle key file
}

// DefaultDataDir returns the default data directory, ~/.rafflehost.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a relative directory if the home directory
		// cannot be determined.
		return ".rafflehost"
	}
	return filepath.Join(home, ".rafflehost")
}

// ConfigPath returns the config file path inside a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// DefaultConfig returns the built-in defaults. Program is left empty:
// there is no sensible default program identity, so the operator must
// set it before the config validates.
func DefaultConfig() Config {
	dataDir := DefaultDataDir()
	return Config{
		DataDir:   dataDir,
		LogLevel:  "info",
		LogFile:   "",
		OracleKey: filepath.Join(dataDir, "oracle.key"),
	}
}

// LoadConfig reads the configuration file at path. Fields absent from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseKeyValue(line)
		if !ok {
			return cfg, fmt.Errorf("%w %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("%w: %q (line %d)", err, key, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path in key=value form, creating parent
// directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# rafflehost configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "program = %s\n", cfg.Program)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "oraclekey = %s\n", cfg.OracleKey)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// parseKeyValue splits a "key = value" line on the first '=' and trims
// the surrounding whitespace.
func parseKeyValue(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// set assigns value to the named configuration key.
func (c *Config) set(key, value string) error {
	switch strings.ToLower(key) {
	case "datadir":
		c.DataDir = value
	case "program":
		c.Program = value
	case "loglevel":
		c.LogLevel = value
	case "logfile":
		c.LogFile = value
	case "oraclekey":
		c.OracleKey = value
	default:
		return ErrUnknownConfigKey
	}
	return nil
}
