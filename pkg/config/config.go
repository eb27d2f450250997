// Package config loads reflectly settings from .reflectly.yaml, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvConfigPath names a directory searched first for .reflectly.yaml.
	EnvConfigPath = "REFLECTLY_CONFIG_PATH"

	// DefaultKey is the slot key the journal collection is stored under.
	DefaultKey = "reflectly-journal-entries"
)

// Settings is the resolved configuration.
type Settings struct {
	Path string `mapstructure:"path" json:"path"`
	Key  string `mapstructure:"key" json:"key"`

	Motivation Motivation `mapstructure:"motivation" json:"motivation"`
	Server     Server     `mapstructure:"server" json:"server"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" json:"file,omitempty"`
}

// Motivation configures the quote and image fetches.
type Motivation struct {
	QuoteURL    string        `mapstructure:"quote_url" json:"quoteURL"`
	ImageURL    string        `mapstructure:"image_url" json:"imageURL"`
	ImageQuery  string        `mapstructure:"image_query" json:"imageQuery"`
	UnsplashKey string        `mapstructure:"unsplash_access_key" json:"-"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	Disabled    bool          `mapstructure:"disabled" json:"disabled"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `mapstructure:"addr" json:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowedOrigins"`
}

// BasePath implements store.Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// Load reads settings. A missing config file is not an error; a malformed
// one is.
func Load() (*Settings, error) {
	// A missing .env is fine, the variables may come from the environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".reflectly") // .yaml is implicit
	v.SetEnvPrefix("REFLECTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", "~/.reflectly.db")
	v.SetDefault("key", DefaultKey)
	v.SetDefault("motivation.quote_url", "https://zenquotes.io/api/random")
	v.SetDefault("motivation.image_url", "https://api.unsplash.com/photos/random")
	v.SetDefault("motivation.image_query", "peace")
	v.SetDefault("motivation.unsplash_access_key", "")
	v.SetDefault("motivation.timeout", 5*time.Second)
	v.SetDefault("motivation.disabled", false)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
}

func decode(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	// The frontend build used this name for the key.
	if s.Motivation.UnsplashKey == "" {
		s.Motivation.UnsplashKey = os.Getenv("VITE_UNSPLASH_ACCESS_KEY")
	}
	path, err := homedir.Expand(strings.TrimSpace(s.Path))
	if err != nil {
		return nil, fmt.Errorf("config: expand path %q: %w", s.Path, err)
	}
	s.Path = path
	if strings.TrimSpace(s.Key) == "" {
		s.Key = DefaultKey
	}
	s.File = v.ConfigFileUsed()
	return s, nil
}
