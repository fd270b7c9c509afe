// Package config loads linear-board settings from the environment, an optional
// YAML file, and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// LinearAPIKeyEnv is the environment variable holding the Linear API key.
	LinearAPIKeyEnv = "LINEAR_API_KEY"

	// EnvPrefix is prepended to every environment override (LINEAR_TEAM_KEY, ...).
	EnvPrefix = "LINEAR"

	DefaultEndpoint            = "https://api.linear.app/graphql"
	DefaultTimeout             = 30 * time.Second
	DefaultPageSize            = 50
	DefaultRelationConcurrency = 8
	DefaultLogLevel            = "warning"
	DefaultMarkdownStyle       = "dark"

	// MaxPageSize is Linear's upper bound for the `first` argument.
	MaxPageSize = 250
)

// DefaultStates are the workflow state names preselected in the state filter.
var DefaultStates = []string{"Todo", "In Progress"}

// ErrMissingAPIKey is returned by Validate when no key was found anywhere.
var ErrMissingAPIKey = errors.New("linear API key not found")

// Config is the resolved application configuration.
type Config struct {
	LinearAPIKey        string        `mapstructure:"api_key" yaml:"-"`
	APIEndpoint         string        `mapstructure:"api_endpoint" yaml:"api_endpoint"`
	Timeout             time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PageSize            int           `mapstructure:"page_size" yaml:"page_size"`
	RelationConcurrency int           `mapstructure:"relation_concurrency" yaml:"relation_concurrency"`

	// TeamKey selects the team by key (e.g. "ENG"). Empty picks the first team.
	TeamKey string `mapstructure:"team_key" yaml:"team_key"`

	// AuthorTag is the title prefix marking issues created by this user.
	AuthorTag string `mapstructure:"author_tag" yaml:"author_tag"`
	// TagTitles prefixes new issue titles with AuthorTag.
	TagTitles bool `mapstructure:"tag_titles" yaml:"tag_titles"`

	DefaultStates []string `mapstructure:"default_states" yaml:"default_states"`

	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"`
	UseKeyring    bool   `mapstructure:"use_keyring" yaml:"use_keyring"`

	// KeySource records where LinearAPIKey came from: "env", "file" or "keyring".
	KeySource string `mapstructure:"-" yaml:"-"`
}

// DefaultConfigDir returns ~/.config/linear-board.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "linear-board")
}

// DefaultConfigPath returns the YAML file read when no explicit path is given.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("api_endpoint", DefaultEndpoint)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("relation_concurrency", DefaultRelationConcurrency)
	v.SetDefault("team_key", "")
	v.SetDefault("author_tag", "")
	v.SetDefault("tag_titles", false)
	v.SetDefault("default_states", DefaultStates)
	v.SetDefault("log_file", filepath.Join(DefaultConfigDir(), "linear-board.log"))
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("markdown_style", DefaultMarkdownStyle)
	v.SetDefault("use_keyring", true)
}

// keyringLookup is swapped out in tests.
var keyringLookup = GetAPIKey

// Load resolves configuration from defaults, the YAML file at path (or the
// default path when empty), and LINEAR_* environment variables, in increasing
// precedence. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch {
	case os.Getenv(LinearAPIKeyEnv) != "":
		cfg.KeySource = "env"
	case cfg.LinearAPIKey != "":
		cfg.KeySource = "file"
	case cfg.UseKeyring:
		if key, err := keyringLookup(); err == nil && key != "" {
			cfg.LinearAPIKey = key
			cfg.KeySource = "keyring"
		}
	}

	cfg.normalize()
	return cfg, nil
}

// LoadFromEnv loads configuration from the default file location and the environment.
func LoadFromEnv() (Config, error) {
	cfg, err := Load("")
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.LinearAPIKey = strings.TrimSpace(c.LinearAPIKey)
	if c.APIEndpoint == "" {
		c.APIEndpoint = DefaultEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	if c.RelationConcurrency <= 0 {
		c.RelationConcurrency = DefaultRelationConcurrency
	}
	states := make([]string, 0, len(c.DefaultStates))
	for _, s := range c.DefaultStates {
		if s = strings.TrimSpace(s); s != "" {
			states = append(states, s)
		}
	}
	c.DefaultStates = states
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = DefaultMarkdownStyle
	}
}

// Validate reports configuration that would make every API call fail.
func (c Config) Validate() error {
	if c.LinearAPIKey == "" {
		return fmt.Errorf("%w: set %s or store a key with `linear-board key set`", ErrMissingAPIKey, LinearAPIKeyEnv)
	}
	if c.TagTitles && strings.TrimSpace(c.AuthorTag) == "" {
		return errors.New("tag_titles requires author_tag to be set")
	}
	return nil
}
