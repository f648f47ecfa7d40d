// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML files via gopkg.in/yaml.v3; a project .env is loaded before ${VAR} expansion

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mauromedda/frametui/internal/log"
	"github.com/mauromedda/frametui/pkg/tui"
	"github.com/mauromedda/frametui/pkg/tui/key"
)

// Settings holds the merged configuration.
type Settings struct {
	PollTimeout Duration `yaml:"poll_timeout,omitempty"`
	ExitKeys    []string `yaml:"exit_keys,omitempty"`
	LogLevel    string   `yaml:"log_level,omitempty"`
	LogFile     string   `yaml:"log_file,omitempty"`
	TraceFile   string   `yaml:"trace_file,omitempty"`
	Frames      int      `yaml:"frames,omitempty"`
}

// Duration is a time.Duration written as a Go duration string ("16ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string: %w", value.Line, err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	return load(GlobalConfigFile(), projectRoot)
}

func load(globalFile, projectRoot string) (*Settings, error) {
	if err := loadDotEnv(DotEnvFile(projectRoot)); err != nil {
		return nil, err
	}

	global, err := loadFile(globalFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	return merged, nil
}

// loadDotEnv exports the variables in path. Variables already set in the
// environment win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		log.Debug("config: loaded %s", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.PollTimeout != 0 {
		result.PollTimeout = project.PollTimeout
	}
	if len(project.ExitKeys) > 0 {
		result.ExitKeys = append([]string(nil), project.ExitKeys...)
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.TraceFile != "" {
		result.TraceFile = project.TraceFile
	}
	if project.Frames != 0 {
		result.Frames = project.Frames
	}

	return &result
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	if s.PollTimeout < 0 {
		return fmt.Errorf("poll_timeout must not be negative, got %s", time.Duration(s.PollTimeout))
	}
	if s.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", s.Frames)
	}
	if _, err := s.Level(); err != nil {
		return err
	}
	if _, err := s.exitKeys(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level, Info when unset.
func (s *Settings) Level() (slog.Level, error) {
	if s.LogLevel == "" {
		return log.LevelInfo, nil
	}
	l, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// ScreenOptions converts the settings into options for tui.NewScreen and
// tui.NewApp. Unset values keep the tui defaults.
func (s *Settings) ScreenOptions() ([]tui.Option, error) {
	var opts []tui.Option
	if s.PollTimeout > 0 {
		opts = append(opts, tui.WithPollTimeout(time.Duration(s.PollTimeout)))
	}
	keys, err := s.exitKeys()
	if err != nil {
		return nil, err
	}
	if len(keys) > 0 {
		opts = append(opts, tui.WithExitKeys(keys...))
	}
	return opts, nil
}

func (s *Settings) exitKeys() ([]key.Key, error) {
	keys := make([]key.Key, 0, len(s.ExitKeys))
	for _, name := range s.ExitKeys {
		k, err := key.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("exit_keys: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
