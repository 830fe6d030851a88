package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/jask/breadsheet/internal/clipboard"
	"github.com/jask/breadsheet/internal/decode"
)

// Config holds application configuration.
type Config struct {
	Files     FilesConfig     `mapstructure:"files"`
	Search    SearchConfig    `mapstructure:"search"`
	Toast     ToastConfig     `mapstructure:"toast"`
	UI        UIConfig        `mapstructure:"ui"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Log       LogConfig       `mapstructure:"log"`
}

// FilesConfig controls which files may be opened.
type FilesConfig struct {
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	MaxBytes          int64    `mapstructure:"max_bytes"`
}

// SearchConfig holds search input settings.
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ToastConfig holds notification timings.
type ToastConfig struct {
	Display time.Duration `mapstructure:"display"`
	Fade    time.Duration `mapstructure:"fade"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ScrollTopOnClear bool `mapstructure:"scroll_top_on_clear"`
	MaxColumnWidth   int  `mapstructure:"max_column_width"`
	Mouse            bool `mapstructure:"mouse"`
}

// ClipboardConfig selects the OSC 52 fallback mode.
type ClipboardConfig struct {
	OSC52 string `mapstructure:"osc52"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

const (
	envPrefix = "BREADSHEET"

	minColumnWidth = 4
	maxColumnWidth = 200
	maxDebounce    = 5 * time.Second
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Files: FilesConfig{
			AllowedExtensions: append([]string(nil), decode.DefaultExtensions...),
			MaxBytes:          decode.DefaultMaxBytes,
		},
		Search: SearchConfig{Debounce: 300 * time.Millisecond},
		Toast:  ToastConfig{Display: 2 * time.Second, Fade: 300 * time.Millisecond},
		UI: UIConfig{
			ScrollTopOnClear: true,
			MaxColumnWidth:   40,
			Mouse:            true,
		},
		Clipboard: ClipboardConfig{OSC52: string(clipboard.ModeAuto)},
		Log:       LogConfig{Level: "info"},
	}
}

// DefaultPath returns $BREADSHEET_CONFIG or the per-user config file.
func DefaultPath() (string, error) {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "breadsheet", "config.toml"), nil
}

// Load reads configuration from file and env. Env var overrides use prefix
// BREADSHEET_. An explicit path must exist; the default file is optional.
// The returned config is always usable; a non-nil error from validation
// describes values that were replaced by defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Default(), fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("stat config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Default(), fmt.Errorf("unmarshal config: %w", err)
	}
	return c.Validate()
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("files.allowed_extensions", d.Files.AllowedExtensions)
	v.SetDefault("files.max_bytes", d.Files.MaxBytes)
	v.SetDefault("search.debounce", d.Search.Debounce)
	v.SetDefault("toast.display", d.Toast.Display)
	v.SetDefault("toast.fade", d.Toast.Fade)
	v.SetDefault("ui.scroll_top_on_clear", d.UI.ScrollTopOnClear)
	v.SetDefault("ui.max_column_width", d.UI.MaxColumnWidth)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("clipboard.osc52", d.Clipboard.OSC52)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// ErrInvalid marks errors from Validate. The accompanying config is still
// usable.
var ErrInvalid = errors.New("invalid config values")

// Validate normalises c, replacing out-of-range values with defaults. The
// error lists every replaced value.
func (c Config) Validate() (Config, error) {
	d := Default()
	out := c
	var errs []error

	var exts []string
	for _, e := range c.Files.AllowedExtensions {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		exts = d.Files.AllowedExtensions
	}
	out.Files.AllowedExtensions = exts

	if c.Files.MaxBytes <= 0 {
		out.Files.MaxBytes = d.Files.MaxBytes
	}
	if c.Search.Debounce < 0 || c.Search.Debounce > maxDebounce {
		errs = append(errs, fmt.Errorf("search.debounce %s out of range", c.Search.Debounce))
		out.Search.Debounce = d.Search.Debounce
	}
	if c.Toast.Display <= 0 {
		out.Toast.Display = d.Toast.Display
	}
	if c.Toast.Fade < 0 {
		out.Toast.Fade = d.Toast.Fade
	}
	if c.UI.MaxColumnWidth < minColumnWidth || c.UI.MaxColumnWidth > maxColumnWidth {
		if c.UI.MaxColumnWidth != 0 {
			errs = append(errs, fmt.Errorf("ui.max_column_width %d out of range %d-%d", c.UI.MaxColumnWidth, minColumnWidth, maxColumnWidth))
		}
		out.UI.MaxColumnWidth = d.UI.MaxColumnWidth
	}

	mode, err := clipboard.ParseMode(c.Clipboard.OSC52)
	if err != nil {
		errs = append(errs, fmt.Errorf("clipboard.osc52: %w", err))
	}
	out.Clipboard.OSC52 = string(mode)

	switch lvl := strings.ToLower(strings.TrimSpace(c.Log.Level)); lvl {
	case "debug", "info", "warning", "error":
		out.Log.Level = lvl
	case "warn":
		out.Log.Level = "warning"
	case "":
		out.Log.Level = d.Log.Level
	default:
		errs = append(errs, fmt.Errorf("log.level %q unknown", c.Log.Level))
		out.Log.Level = d.Log.Level
	}
	out.Log.File = strings.TrimSpace(c.Log.File)

	if len(errs) > 0 {
		return out, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return out, nil
}

// fileConfig is the on-disk shape; durations are written as strings.
type fileConfig struct {
	Files struct {
		AllowedExtensions []string `toml:"allowed_extensions"`
		MaxBytes          int64    `toml:"max_bytes"`
	} `toml:"files"`
	Search struct {
		Debounce string `toml:"debounce"`
	} `toml:"search"`
	Toast struct {
		Display string `toml:"display"`
		Fade    string `toml:"fade"`
	} `toml:"toast"`
	UI struct {
		ScrollTopOnClear bool `toml:"scroll_top_on_clear"`
		MaxColumnWidth   int  `toml:"max_column_width"`
		Mouse            bool `toml:"mouse"`
	} `toml:"ui"`
	Clipboard struct {
		OSC52 string `toml:"osc52"`
	} `toml:"clipboard"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
}

// Encode renders c as TOML.
func Encode(c Config) ([]byte, error) {
	var f fileConfig
	f.Files.AllowedExtensions = c.Files.AllowedExtensions
	f.Files.MaxBytes = c.Files.MaxBytes
	f.Search.Debounce = c.Search.Debounce.String()
	f.Toast.Display = c.Toast.Display.String()
	f.Toast.Fade = c.Toast.Fade.String()
	f.UI.ScrollTopOnClear = c.UI.ScrollTopOnClear
	f.UI.MaxColumnWidth = c.UI.MaxColumnWidth
	f.UI.Mouse = c.UI.Mouse
	f.Clipboard.OSC52 = c.Clipboard.OSC52
	f.Log.Level = c.Log.Level
	f.Log.File = c.Log.File

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ErrExists is returned by WriteDefault when the file is present and force
// is not set.
var ErrExists = errors.New("config file already exists")

// WriteDefault writes the default configuration to path, creating the
// config directory if needed.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	data, err := Encode(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
