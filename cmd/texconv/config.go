package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"texconv/internal/driver"
)

const configFileName = "texconv.toml"

type fileConfig struct {
	Convert     convertSection     `toml:"convert"`
	Diagnostics diagnosticsSection `toml:"diagnostics"`
	Batch       batchSection       `toml:"batch"`
}

type convertSection struct {
	MaxDepth  int    `toml:"max_depth"`
	Normalize string `toml:"normalize"`
}

type diagnosticsSection struct {
	Max int `toml:"max"`
}

type batchSection struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// settings are the effective options of one command run.
type settings struct {
	Path    string // config file, empty when none was found
	Convert driver.Config
	Jobs    int
	Cache   bool
}

func defaultSettings() settings {
	return settings{Convert: driver.DefaultConfig()}
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig overlays the keys defined in path onto the defaults.
func loadConfig(path string) (settings, error) {
	s := defaultSettings()
	s.Path = path

	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return settings{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}

	if meta.IsDefined("convert", "max_depth") {
		s.Convert.MaxDepth = fc.Convert.MaxDepth
	}
	if meta.IsDefined("convert", "normalize") {
		s.Convert.Normalize = fc.Convert.Normalize
	}
	if meta.IsDefined("diagnostics", "max") {
		s.Convert.MaxDiagnostics = fc.Diagnostics.Max
	}
	if meta.IsDefined("batch", "jobs") {
		s.Jobs = fc.Batch.Jobs
	}
	if meta.IsDefined("batch", "cache") {
		s.Cache = fc.Batch.Cache
	}

	if err := s.Convert.Validate(); err != nil {
		return settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// resolveSettings loads --config or the nearest texconv.toml, then applies
// the flags the user set explicitly.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return settings{}, err
		}
		if ok {
			path = found
		}
	}

	s := defaultSettings()
	if path != "" {
		if s, err = loadConfig(path); err != nil {
			return settings{}, err
		}
	}

	if flags.Changed("max-diagnostics") {
		if s.Convert.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	return s, nil
}
