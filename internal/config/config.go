// Package config loads toldot settings with viper.
//
// Precedence, highest first:
//
//  1. command-line flags bound with [Loader.BindFlag]
//  2. TOLDOT_* environment variables (TOLDOT_RENDER_STYLE, TOLDOT_SERVER_ADDR, ...)
//  3. the config file (~/.config/toldot/config.yaml)
//  4. [Default]
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/toldot/toldot/pkg/pipeline"
)

const (
	appName   = "toldot"
	envPrefix = "TOLDOT"
	fileName  = "config"
	fileType  = "yaml"
)

// Config is the full set of user settings.
type Config struct {
	// Source is the dataset location: a file, an API base URL, a MongoDB
	// URI or "sample:".
	Source string       `yaml:"source" mapstructure:"source"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	HTTP   HTTPConfig   `yaml:"http" mapstructure:"http"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
}

// CacheConfig selects the cache backend. An empty backend means the file
// cache under the XDG cache directory.
type CacheConfig struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`
	Disabled bool   `yaml:"disabled" mapstructure:"disabled"`
}

// HTTPConfig tunes the timeline API client.
type HTTPConfig struct {
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	NoFallback        bool    `yaml:"no_fallback" mapstructure:"no_fallback"`
}

// RenderConfig holds render defaults shared by the CLI and the server.
type RenderConfig struct {
	Style     string  `yaml:"style" mapstructure:"style"`
	Language  string  `yaml:"language" mapstructure:"language"`
	Title     string  `yaml:"title" mapstructure:"title"`
	PxPerYear float64 `yaml:"px_per_year" mapstructure:"px_per_year"`
	Zoom      float64 `yaml:"zoom" mapstructure:"zoom"`
	Padding   int     `yaml:"padding" mapstructure:"padding"`
	Epsilon   int     `yaml:"epsilon" mapstructure:"epsilon"`
	SkipEmpty bool    `yaml:"skip_empty" mapstructure:"skip_empty"`
	Axis      bool    `yaml:"axis" mapstructure:"axis"`
	Legend    bool    `yaml:"legend" mapstructure:"legend"`
	Minimap   bool    `yaml:"minimap" mapstructure:"minimap"`
	PersonURL string  `yaml:"person_url" mapstructure:"person_url"`
}

// ServerConfig configures `toldot serve`.
type ServerConfig struct {
	Addr  string `yaml:"addr" mapstructure:"addr"`
	Watch bool   `yaml:"watch" mapstructure:"watch"`
}

// Default returns the built-in settings. Render values mirror the
// pipeline defaults.
func Default() Config {
	return Config{
		Source: pipeline.DefaultSource,
		HTTP: HTTPConfig{
			UserAgent:         appName,
			RequestsPerSecond: 5,
		},
		Render: RenderConfig{
			Style:     pipeline.DefaultStyle,
			Language:  pipeline.DefaultLanguage,
			Title:     pipeline.DefaultTitle,
			PxPerYear: pipeline.DefaultPxPerYear,
			Zoom:      pipeline.DefaultZoom,
			Axis:      true,
			Legend:    true,
		},
		Server: ServerConfig{
			Addr:  ":8080",
			Watch: true,
		},
	}
}

// Loader reads a Config through a private viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader registers the defaults and environment binding.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return &Loader{v: v}
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("source", d.Source)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.disabled", d.Cache.Disabled)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.requests_per_second", d.HTTP.RequestsPerSecond)
	v.SetDefault("http.no_fallback", d.HTTP.NoFallback)
	v.SetDefault("render.style", d.Render.Style)
	v.SetDefault("render.language", d.Render.Language)
	v.SetDefault("render.title", d.Render.Title)
	v.SetDefault("render.px_per_year", d.Render.PxPerYear)
	v.SetDefault("render.zoom", d.Render.Zoom)
	v.SetDefault("render.padding", d.Render.Padding)
	v.SetDefault("render.epsilon", d.Render.Epsilon)
	v.SetDefault("render.skip_empty", d.Render.SkipEmpty)
	v.SetDefault("render.axis", d.Render.Axis)
	v.SetDefault("render.legend", d.Render.Legend)
	v.SetDefault("render.minimap", d.Render.Minimap)
	v.SetDefault("render.person_url", d.Render.PersonURL)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.watch", d.Server.Watch)
}

// BindFlag makes flag override key when the user sets it.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads file, or the default config path when file is empty, and
// returns the merged configuration. A missing default file is not an error.
func (l *Loader) Load(file string) (Config, error) {
	if file != "" {
		l.v.SetConfigFile(file)
	} else if dir, err := Dir(); err == nil {
		l.v.AddConfigPath(dir)
		l.v.SetConfigName(fileName)
		l.v.SetConfigType(fileType)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// FileUsed returns the config file that was read, or "".
func (l *Loader) FileUsed() string {
	return l.v.ConfigFileUsed()
}

// Dir returns $XDG_CONFIG_HOME/toldot or ~/.config/toldot.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the config file read when no --config is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName+"."+fileType), nil
}

// Marshal renders cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

const fileHeader = `# toldot configuration
#
# Precedence (highest first):
#   1. command-line flags
#   2. environment variables (TOLDOT_SOURCE, TOLDOT_RENDER_STYLE, ...)
#   3. this file
#   4. built-in defaults

`

// WriteDefault creates path with the default configuration. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	data, err := Default().Marshal()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, append([]byte(fileHeader), data...), 0o644)
}

// PipelineOptions converts the settings into pipeline options. Formats,
// the filter and the logger are left to the caller.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Source:     c.Source,
		NoFallback: c.HTTP.NoFallback,
		UserAgent:  c.HTTP.UserAgent,
		Padding:    c.Render.Padding,
		PxPerYear:  c.Render.PxPerYear,
		Zoom:       c.Render.Zoom,
		Epsilon:    c.Render.Epsilon,
		SkipEmpty:  c.Render.SkipEmpty,
		Style:      c.Render.Style,
		Title:      c.Render.Title,
		Language:   c.Render.Language,
		Axis:       c.Render.Axis,
		Legend:     c.Render.Legend,
		Minimap:    c.Render.Minimap,
		PersonURL:  c.Render.PersonURL,
	}
}
