package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const manifestName = "minic.toml"

type projectConfig struct {
	Check checkConfig `toml:"check"`
}

type checkConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics *int   `toml:"max_diagnostics"`
	Jobs           *int   `toml:"jobs"`
	TraceLevel     string `toml:"trace_level"`
}

// cliConfig is the merged view of minic.toml and command-line flags.
// Flags set explicitly on the command line win.
type cliConfig struct {
	manifest       string
	format         string
	color          string
	maxDiagnostics int
	jobs           int
	traceLevel     string
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
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

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c := cfg.Check
	if c.Format != "" {
		if _, ok := outputFormats[c.Format]; !ok {
			return projectConfig{}, fmt.Errorf("%s: [check].format must be one of plain|short|pretty|json, got %q", path, c.Format)
		}
	}
	switch c.Color {
	case "", "auto", "on", "off":
	default:
		return projectConfig{}, fmt.Errorf("%s: [check].color must be auto|on|off, got %q", path, c.Color)
	}
	if c.MaxDiagnostics != nil && *c.MaxDiagnostics < 0 {
		return projectConfig{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if c.Jobs != nil && *c.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	return cfg, nil
}

// loadCLIConfig reads --config or the nearest minic.toml and overlays
// explicitly set flags.
func loadCLIConfig(cmd *cobra.Command) (cliConfig, error) {
	flags := cmd.Root().PersistentFlags()
	cfg := cliConfig{format: "plain", color: "auto", maxDiagnostics: 100, traceLevel: "off"}

	path, err := flags.GetString("config")
	if err != nil {
		return cfg, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		var found bool
		if path, found, err = findManifest("."); err != nil {
			return cfg, err
		} else if !found {
			path = ""
		}
	}
	if path != "" {
		project, err := loadProjectConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg.manifest = path
		cfg.merge(project.Check)
	}

	if flags.Changed("color") {
		if cfg.color, err = flags.GetString("color"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("max-diagnostics") {
		if cfg.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("trace-level") {
		if cfg.traceLevel, err = flags.GetString("trace-level"); err != nil {
			return cfg, err
		}
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		cfg.format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		if cfg.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (c *cliConfig) merge(file checkConfig) {
	if file.Format != "" {
		c.format = file.Format
	}
	if file.Color != "" {
		c.color = file.Color
	}
	if file.MaxDiagnostics != nil {
		c.maxDiagnostics = *file.MaxDiagnostics
	}
	if file.Jobs != nil {
		c.jobs = *file.Jobs
	}
	if file.TraceLevel != "" {
		c.traceLevel = file.TraceLevel
	}
}
