package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	EnableLatency bool `mapstructure:"enable_latency"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Guard     GuardConfig     `mapstructure:"guard"`
	Offenders OffendersConfig `mapstructure:"offenders"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
}

type ServerConfig struct {
	AdminPort   int    `mapstructure:"admin_port"`
	ProxyPort   int    `mapstructure:"proxy_port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	SecretKey   string `mapstructure:"secret_key"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// GuardMode selects what the injection guard does with a detected attack.
type GuardMode string

const (
	ModeBlock  GuardMode = "block"
	ModeFilter GuardMode = "filter"
	ModeDetect GuardMode = "detect"
)

// Parameter sources the injection guard can inspect.
const (
	SourceQuery  = "query"
	SourceForm   = "form"
	SourceBody   = "body"
	SourceHeader = "header"
)

type GuardConfig struct {
	Mode           GuardMode `mapstructure:"mode"`
	StatusCode     int       `mapstructure:"status_code"`
	Sources        []string  `mapstructure:"sources"`
	ExcludePaths   []string  `mapstructure:"exclude_paths"`
	IgnoredHeaders []string  `mapstructure:"ignored_headers"`
	MaxDecodedBody int64     `mapstructure:"max_decoded_body"`
}

type OffendersConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Window       time.Duration `mapstructure:"window"`
	BanThreshold int64         `mapstructure:"ban_threshold"`
}

type AuditConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Channel        string        `mapstructure:"channel"`
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout"`
	MaxFailures    uint32        `mapstructure:"max_failures"`
}

type UpstreamConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

var globalConfig Config

func Load(configPath string) error {
	globalConfig = Config{}
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues(&globalConfig)
	if err := globalConfig.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found: %w", fileName, err)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(out, decodeHook); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(cfg *Config) {
	if cfg.Server.ProxyPort == 0 {
		cfg.Server.ProxyPort = 8081
	}
	if cfg.Server.AdminPort == 0 {
		cfg.Server.AdminPort = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Guard.Mode == "" {
		cfg.Guard.Mode = ModeBlock
	}
	if cfg.Guard.StatusCode == 0 {
		cfg.Guard.StatusCode = 401
	}
	if len(cfg.Guard.Sources) == 0 {
		cfg.Guard.Sources = []string{SourceQuery, SourceForm, SourceBody}
	}
	if len(cfg.Guard.IgnoredHeaders) == 0 {
		cfg.Guard.IgnoredHeaders = DefaultIgnoredHeaders()
	}
	if cfg.Guard.MaxDecodedBody == 0 {
		cfg.Guard.MaxDecodedBody = 8 * 1024 * 1024
	}
	if cfg.Offenders.Window == 0 {
		cfg.Offenders.Window = 10 * time.Minute
	}
	if cfg.Audit.Channel == "" {
		cfg.Audit.Channel = "paramguard:attacks"
	}
	if cfg.Audit.BreakerTimeout == 0 {
		cfg.Audit.BreakerTimeout = 30 * time.Second
	}
	if cfg.Audit.MaxFailures == 0 {
		cfg.Audit.MaxFailures = 5
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 30 * time.Second
	}
}

func DefaultIgnoredHeaders() []string {
	return []string{
		"Host",
		"User-Agent",
		"Accept",
		"Accept-Encoding",
		"Accept-Language",
		"Cookie",
		"Content-Type",
		"Content-Length",
		"Connection",
		"Authorization",
	}
}

func (c *Config) Validate() error {
	switch c.Guard.Mode {
	case ModeBlock, ModeFilter, ModeDetect:
	default:
		return fmt.Errorf("invalid guard mode: %s", c.Guard.Mode)
	}
	if c.Guard.StatusCode < 100 || c.Guard.StatusCode > 599 {
		return fmt.Errorf("invalid guard status code: %d", c.Guard.StatusCode)
	}
	for _, source := range c.Guard.Sources {
		switch source {
		case SourceQuery, SourceForm, SourceBody, SourceHeader:
		default:
			return fmt.Errorf("invalid guard source: %s", source)
		}
	}
	if c.Guard.MaxDecodedBody < 0 {
		return fmt.Errorf("invalid max decoded body: %d", c.Guard.MaxDecodedBody)
	}
	if c.Offenders.BanThreshold < 0 {
		return fmt.Errorf("invalid ban threshold: %d", c.Offenders.BanThreshold)
	}
	if (c.Offenders.Enabled || c.Audit.Enabled) && !c.Redis.Enabled {
		return errors.New("offender tracking and audit events require redis to be enabled")
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
