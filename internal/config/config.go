// Package config holds the export parameters of the header-export CLI.
//
// The defaults reproduce the fixed layout of the xlog packaging step: the
// logger sources live in a sibling directory and the public headers are
// collected into export_include/xlogger/. An optional override file can
// replace any of these values. Two formats are accepted:
//   - YAML (.yaml, .yml), parsed with gopkg.in/yaml.v3
//   - JSON with comments (.json, .jsonc), stripped with
//     github.com/tidwall/jsonc and parsed with encoding/json
//
// Fields missing from the override file keep their default values.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Default export parameters.
const (
	// DefaultSourceRoot is the logger source tree, relative to the working
	// directory the tool is run from.
	DefaultSourceRoot = "../comm/xlogger"

	// DefaultDestDir is the flat export directory. It must already exist.
	DefaultDestDir = "export_include/xlogger/"

	// DefaultSuffix selects header files.
	DefaultSuffix = ".h"
)

// DefaultFixedFiles are copied after the tree walk, in this order. The
// first name matches the file as it exists in the xlog directory.
var DefaultFixedFiles = []string{
	"./comipler_util.h",
	"./appender2.h",
}

// Config is the full set of export parameters.
type Config struct {
	// SourceRoot is the directory tree searched for headers.
	SourceRoot string `yaml:"source_root" json:"sourceRoot"`

	// DestDir is the flat directory that receives every copy.
	DestDir string `yaml:"dest_dir" json:"destDir"`

	// Suffix is the file name suffix that selects headers.
	Suffix string `yaml:"suffix" json:"suffix"`

	// FixedFiles are copied by literal path after the tree walk.
	FixedFiles []string `yaml:"fixed_files" json:"fixedFiles"`
}

// Default returns the built-in configuration.
func Default() *Config {
	fixed := make([]string, len(DefaultFixedFiles))
	copy(fixed, DefaultFixedFiles)

	return &Config{
		SourceRoot: DefaultSourceRoot,
		DestDir:    DefaultDestDir,
		Suffix:     DefaultSuffix,
		FixedFiles: fixed,
	}
}

// Load reads an override file and merges it over the defaults. The format
// is chosen by file extension. The result is validated before returning.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".json", ".jsonc":
		// Comments and trailing commas are allowed, as in devcontainer-style
		// JSON files.
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every parameter needed for an export is present.
func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return errors.New("source_root must not be empty")
	}
	if c.DestDir == "" {
		return errors.New("dest_dir must not be empty")
	}
	if c.Suffix == "" {
		return errors.New("suffix must not be empty")
	}
	if strings.ContainsAny(c.Suffix, `/\`) {
		return fmt.Errorf("suffix %q must not contain a path separator", c.Suffix)
	}
	for i, f := range c.FixedFiles {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("fixed_files[%d] must not be empty", i)
		}
	}
	return nil
}
