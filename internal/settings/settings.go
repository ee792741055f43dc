// Package settings loads user settings for swcgen from
// <root>/.swcgen/settings.yaml (or an explicit file) and SWCGEN_* environment
// variables.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	// Dir is the per-project settings directory.
	Dir = ".swcgen"
	// FileName is the settings file inside Dir.
	FileName = "settings.yaml"
	// EnvPrefix prefixes every environment override, e.g. SWCGEN_OUTPUT_DIR.
	EnvPrefix = "SWCGEN"
)

// Watch holds settings for generate --watch.
type Watch struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Settings is the resolved configuration.
type Settings struct {
	OutputDir  string `mapstructure:"output_dir"`
	HeaderFile string `mapstructure:"header_file"`
	LogLevel   string `mapstructure:"log_level"`
	Watch      Watch  `mapstructure:"watch"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		OutputDir: "generated",
		LogLevel:  "info",
		Watch:     Watch{Debounce: 500 * time.Millisecond},
	}
}

// Path returns the settings file location for a project rooted at root.
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// Load resolves settings for the project rooted at root. When file is set
// it is read exclusively and must exist; otherwise Path(root) is read when
// present. Environment variables override both. A relative header_file is
// taken relative to root. The returned string is the file actually read,
// empty when only defaults and environment apply.
func Load(root, file string) (*Settings, string, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("header_file", d.HeaderFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("watch.debounce", d.Watch.Debounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	switch {
	case file != "":
		if _, err := os.Stat(file); err != nil {
			return nil, "", fmt.Errorf("settings file %s: %w", file, err)
		}
		used = file
	default:
		if _, err := os.Stat(Path(root)); err == nil {
			used = Path(root)
		}
	}
	if used != "" {
		v.SetConfigFile(used)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read settings %s: %w", used, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, "", fmt.Errorf("parse settings: %w", err)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return nil, "", fmt.Errorf("settings: log_level: %w", err)
	}
	if s.Watch.Debounce < 0 {
		return nil, "", fmt.Errorf("settings: watch.debounce: negative duration %s", s.Watch.Debounce)
	}
	if s.HeaderFile != "" && !filepath.IsAbs(s.HeaderFile) {
		s.HeaderFile = filepath.Join(root, s.HeaderFile)
	}
	return &s, used, nil
}

// Level returns the parsed log level, defaulting to info.
func (s *Settings) Level() log.Level {
	l, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Header reads the banner file named by HeaderFile. It returns "" when no
// file is configured.
func (s *Settings) Header() (string, error) {
	if s.HeaderFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(s.HeaderFile)
	if err != nil {
		return "", fmt.Errorf("read header file: %w", err)
	}
	return string(data), nil
}

// Write stores s at Path(root), creating the settings directory.
func Write(root string, s Settings) error {
	v := viper.New()
	v.Set("output_dir", s.OutputDir)
	v.Set("header_file", s.HeaderFile)
	v.Set("log_level", s.LogLevel)
	v.Set("watch.debounce", s.Watch.Debounce.String())
	if err := os.MkdirAll(filepath.Join(root, Dir), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := v.WriteConfigAs(Path(root)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
