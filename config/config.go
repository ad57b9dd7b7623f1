package config

import (
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "SENTIMENT"

// Config holds the full application configuration.
type Config struct {
	Records  RecordsConfig  `yaml:"records" mapstructure:"records"`
	Trace    TraceConfig    `yaml:"trace" mapstructure:"trace"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Session  SessionConfig  `yaml:"session" mapstructure:"session"`
	Polarity PolarityConfig `yaml:"polarity" mapstructure:"polarity"`
	Text     TextConfig     `yaml:"text" mapstructure:"text"`
}

// RecordsConfig points at the CSV record log.
type RecordsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// TraceConfig points at the diagnostic trace file.
type TraceConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

type SessionConfig struct {
	ExitToken string `yaml:"exit_token" mapstructure:"exit_token"`
}

// PolarityConfig selects the polarity lexicon; empty uses the embedded one.
type PolarityConfig struct {
	LexiconPath string `yaml:"lexicon_path" mapstructure:"lexicon_path"`
}

type TextConfig struct {
	StripMarkdown bool `yaml:"strip_markdown" mapstructure:"strip_markdown"`
}

// NewViper returns a viper instance with defaults, environment binding and the
// optional config.yaml search path set up. Callers may bind flags before Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("records.path", "sentiment_results.csv")
	v.SetDefault("trace.path", "sentiment_analysis.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("session.exit_token", "exit")
	v.SetDefault("polarity.lexicon_path", "")
	v.SetDefault("text.strip_markdown", false)

	return v
}

// Load reads configuration from file, environment and any bound flags.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = NewViper()
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	c.Session.ExitToken = strings.TrimSpace(c.Session.ExitToken)
	if c.Session.ExitToken == "" {
		return eris.New("config: session.exit_token must not be blank")
	}
	if strings.TrimSpace(c.Records.Path) == "" {
		return eris.New("config: records.path must not be empty")
	}
	return nil
}
