package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ini "github.com/go-ini/ini"
	"go.uber.org/multierr"

	"mmtype/internal/types"
)

type ConfigError struct {
	msg string
	err error
}

func (e ConfigError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e ConfigError) Unwrap() error { return e.err }

type EngineConfig struct {
	Mode                 types.InputMode
	ControlKeys          types.ControlKeyStyle
	BurmeseNumbers       bool
	NumeralConglomerates bool
	SuppressUppercase    bool
	ShortcutKeys         bool
	PageSize             int
	// Layout names the direct-entry layout behind the system keys.
	Layout     string
	CustomKeys string
}

type ModelConfig struct {
	Path string
}

type Config struct {
	Engine  EngineConfig
	Model   ModelConfig
	Logging LoggingConfig
}

const (
	defaultPageSize = 10
	maxPageSize     = 10
	defaultLayout   = "myanmar3"
	defaultModel    = "model.tsv"
)

func Default() Config {
	return Config{
		Engine: EngineConfig{
			Mode:           types.ModeRoman,
			ControlKeys:    types.StyleJapanese,
			BurmeseNumbers: true,
			ShortcutKeys:   true,
			PageSize:       defaultPageSize,
			Layout:         defaultLayout,
		},
		Model:   ModelConfig{Path: defaultModel},
		Logging: LoggingConfig{Level: "normal", Mode: "append"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults;
// every invalid value is reported, not just the first.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, ConfigError{msg: "config", err: err}
	}
	if info.IsDir() {
		return cfg, ConfigError{msg: fmt.Sprintf("config: %s is a directory", path)}
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, ConfigError{msg: "config", err: err}
	}
	if err := cfg.apply(file, filepath.Dir(path)); err != nil {
		return cfg, ConfigError{msg: fmt.Sprintf("invalid config %s", path), err: err}
	}
	return cfg, nil
}

func (cfg *Config) apply(file *ini.File, dir string) error {
	var errs error

	eng := file.Section("engine")
	var err error
	if cfg.Engine.Mode, err = types.ParseInputMode(eng.Key("mode").MustString(cfg.Engine.Mode.String())); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.Engine.ControlKeys, err = types.ParseControlKeyStyle(eng.Key("control_keys").MustString(cfg.Engine.ControlKeys.String())); err != nil {
		errs = multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, readBool(eng, "burmese_numbers", &cfg.Engine.BurmeseNumbers))
	errs = multierr.Append(errs, readBool(eng, "numeral_conglomerates", &cfg.Engine.NumeralConglomerates))
	errs = multierr.Append(errs, readBool(eng, "suppress_uppercase", &cfg.Engine.SuppressUppercase))
	errs = multierr.Append(errs, readBool(eng, "shortcut_keys", &cfg.Engine.ShortcutKeys))
	if eng.HasKey("page_size") {
		size, err := eng.Key("page_size").Int()
		switch {
		case err != nil:
			errs = multierr.Append(errs, fmt.Errorf("engine.page_size: %w", err))
		case size < 1 || size > maxPageSize:
			errs = multierr.Append(errs, fmt.Errorf("engine.page_size must be between 1 and %d, got %d", maxPageSize, size))
		default:
			cfg.Engine.PageSize = size
		}
	}
	cfg.Engine.Layout = eng.Key("layout").MustString(cfg.Engine.Layout)
	cfg.Engine.CustomKeys = resolvePath(dir, eng.Key("custom_keys").String())

	cfg.Model.Path = resolvePath(dir, file.Section("model").Key("path").MustString(cfg.Model.Path))

	logging := file.Section("logging")
	cfg.Logging.Level = strings.ToLower(logging.Key("level").MustString(cfg.Logging.Level))
	cfg.Logging.Destination = resolvePath(dir, logging.Key("destination").String())
	cfg.Logging.Mode = strings.ToLower(logging.Key("mode").MustString(cfg.Logging.Mode))
	errs = multierr.Append(errs, cfg.Logging.validate())

	return errs
}

func readBool(sec *ini.Section, name string, dst *bool) error {
	if !sec.HasKey(name) {
		return nil
	}
	v, err := sec.Key(name).Bool()
	if err != nil {
		return fmt.Errorf("%s.%s: %w", sec.Name(), name, err)
	}
	*dst = v
	return nil
}

// resolvePath makes relative paths relative to the config file.
func resolvePath(dir, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(dir, value)
}
