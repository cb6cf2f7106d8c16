// Package config loads the hisab settings from hisab.yaml, the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/hisab"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. HISAB_DATA_FILE.
const EnvPrefix = "HISAB"

// Config holds every setting.
type Config struct {
	DataFile     string `mapstructure:"data_file"`     // SQLite database
	DocumentsDir string `mapstructure:"documents_dir"` // statements go to <documents_dir>/Hisab
	Currency     string `mapstructure:"currency"`
	TimeZone     string `mapstructure:"time_zone"` // IANA name, or "Local"
	FontFile     string `mapstructure:"font_file"` // optional TrueType font for statements
	LogLevel     string `mapstructure:"log_level"`
	Workers      int    `mapstructure:"workers"` // concurrent statement renders
}

// Load reads the configuration. An explicit path must exist; otherwise
// hisab.yaml is looked up in the working directory and in the user config
// directory, and is optional. Environment variables override the file, and
// a .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hisab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "hisab"))
		}
	}

	// environment overrides, e.g. HISAB_WORKERS=8
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_file", "hisab.db")
	documents := "Documents"
	if home, err := os.UserHomeDir(); err == nil {
		documents = filepath.Join(home, "Documents")
	}
	v.SetDefault("documents_dir", documents)
	v.SetDefault("currency", hisab.DefaultCurrency)
	v.SetDefault("time_zone", "Local")
	v.SetDefault("font_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 4)
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if c.DataFile == "" {
		errs = append(errs, errors.New("data_file is empty"))
	}
	if c.Currency == "" {
		errs = append(errs, errors.New("currency is empty"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w config: %w", hisab.ErrInvalid, err)
	}
	return nil
}

// Location returns the time zone dates are shown and filtered in.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time_zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
