// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/ardverk/bencoding/bencode"
)

// Config represents the configuration used for executing bendump.
type Config struct {
	Format  string         `yaml:"format"`
	Decoder bencode.Config `yaml:"decoder"`
}

// ConfigFile wraps a Config under a top-level key so bendump settings can
// live inside a larger configuration file.
type ConfigFile struct {
	Bendump Config `yaml:"bendump"`
}

// ParseConfigFile returns a new ConfigFile given the path to a YAML
// configuration file.
//
// It supports relative and absolute paths and environment variables.
func ParseConfigFile(path string) (*ConfigFile, error) {
	if path == "" {
		return nil, errors.New("no config path specified")
	}

	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var cfgFile ConfigFile
	err = yaml.Unmarshal(contents, &cfgFile)
	if err != nil {
		return nil, err
	}

	return &cfgFile, nil
}

// loadConfig merges the optional configuration file with any flags set on
// the command line; flags win.
func loadConfig(cmd *cobra.Command, path string) (Config, error) {
	cfg := Config{Format: "json"}

	if path != "" {
		cfgFile, err := ParseConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfgFile.Bendump
		if cfg.Format == "" {
			cfg.Format = "json"
		}
	}

	if cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("charset") {
		cfg.Decoder.Charset, _ = cmd.Flags().GetString("charset")
	}
	if cmd.Flags().Changed("strings") {
		cfg.Decoder.DecodeAsString, _ = cmd.Flags().GetBool("strings")
	}

	return cfg, nil
}
