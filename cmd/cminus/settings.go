package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cminus/internal/project"
)

// settings is cminus.toml with command-line overrides applied.
type settings struct {
	project.Config
	ConfigPath string // empty when no file was found
	Root       string // directory of ConfigPath
	Quiet      bool
	Timings    bool
}

// loadSettings reads the config named by --config or found above the
// working directory, then applies every flag the user set explicitly.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	root := cmd.Root().PersistentFlags()
	s := &settings{Config: project.DefaultConfig()}

	configPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		cfg, err := project.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		s.Config, s.ConfigPath = cfg, configPath
		if s.Root, err = filepath.Abs(filepath.Dir(configPath)); err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
	} else {
		manifest, ok, err := project.LoadManifest(".")
		if err != nil {
			return nil, err
		}
		if ok {
			s.Config, s.ConfigPath, s.Root = manifest.Config, manifest.Path, manifest.Root
		}
	}

	if s.Quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.Timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if err := overrideString(cmd, "color", &s.Output.Color); err != nil {
		return nil, err
	}
	if err := overrideInt(cmd, "max-diagnostics", &s.Output.MaxDiagnostics); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "format", &s.Output.Format); err != nil {
		return nil, err
	}
	if err := overrideBool(cmd, "prelude", &s.Analysis.Prelude); err != nil {
		return nil, err
	}
	if err := overrideBool(cmd, "trace-symbols", &s.Analysis.TraceSymbols); err != nil {
		return nil, err
	}
	if err := overrideBool(cmd, "sort", &s.Output.Sort); err != nil {
		return nil, err
	}
	if err := overrideInt(cmd, "jobs", &s.Output.Jobs); err != nil {
		return nil, err
	}
	s.Output.Format = strings.ToLower(s.Output.Format)
	s.Output.Color = strings.ToLower(s.Output.Color)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return s, nil
}

// useColor resolves auto against the given stream.
func (s *settings) useColor(f *os.File) bool {
	switch s.Output.Color {
	case project.ColorOn:
		return true
	case project.ColorOff:
		return false
	default:
		return isTerminal(f)
	}
}

// A flag the command does not define, or the user did not set, keeps the
// config value.

func overrideString(cmd *cobra.Command, name string, dst *string) error {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideInt(cmd *cobra.Command, name string, dst *int) error {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideBool(cmd *cobra.Command, name string, dst *bool) error {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}
