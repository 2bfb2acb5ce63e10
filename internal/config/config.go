package config

import (
	"errors"
	"io/fs"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration. Every value has a sensible
// default; a config file is optional.
type Config struct {
	PricesURL    string  `mapstructure:"prices_url"`
	IconsBaseURL string  `mapstructure:"icons_base_url"`
	CacheTTLMs   int     `mapstructure:"cache_ttl_ms"`
	FetchTimeout int     `mapstructure:"fetch_timeout_ms"`
	SwapDelayMs  int     `mapstructure:"swap_delay_ms"`
	FailureRate  float64 `mapstructure:"failure_rate"`
	DebugLogging bool    `mapstructure:"debug_logging"`
	LogFile      string  `mapstructure:"log_file"`
}

const (
	DefaultPricesURL    = "https://interview.switcheo.com/prices.json"
	DefaultIconsBaseURL = "https://raw.githubusercontent.com/Switcheo/token-icons/main/tokens"
	DefaultCacheTTLMs   = 60_000
	DefaultFetchTimeout = 10_000
	DefaultSwapDelayMs  = 1500
	DefaultFailureRate  = 0.10
	DefaultLogFile      = "swapdesk.log"
)

// Load reads configuration from the given file and from SWAPDESK_*
// environment variables. A missing config file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"prices_url":       DefaultPricesURL,
		"icons_base_url":   DefaultIconsBaseURL,
		"cache_ttl_ms":     DefaultCacheTTLMs,
		"fetch_timeout_ms": DefaultFetchTimeout,
		"swap_delay_ms":    DefaultSwapDelayMs,
		"failure_rate":     DefaultFailureRate,
		"debug_logging":    false,
		"log_file":         DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("SWAPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if err := validateURL(cfg.PricesURL); err != nil {
		return errors.New("invalid prices_url")
	}
	if err := validateURL(cfg.IconsBaseURL); err != nil {
		return errors.New("invalid icons_base_url")
	}
	if cfg.CacheTTLMs <= 0 {
		return errors.New("invalid cache_ttl_ms")
	}
	if cfg.FetchTimeout <= 0 {
		return errors.New("invalid fetch_timeout_ms")
	}
	if cfg.SwapDelayMs < 0 {
		return errors.New("invalid swap_delay_ms")
	}
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		return errors.New("failure_rate must be within [0, 1]")
	}
	return nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return errors.New("invalid URL protocol")
	}
	return nil
}
