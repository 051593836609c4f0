package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Scout     ScoutConfig     `yaml:"scout" mapstructure:"scout"`
	Embedding EmbeddingConfig `yaml:"embedding" mapstructure:"embedding"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the web UI and API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// StoreConfig locates the report directories.
type StoreConfig struct {
	RawDir       string `yaml:"raw_dir" mapstructure:"raw_dir"`
	ProcessedDir string `yaml:"processed_dir" mapstructure:"processed_dir"`
}

// FetchConfig configures page fetching for the scraper.
type FetchConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ScrapeConfig toggles optional scrape artifacts.
type ScrapeConfig struct {
	MarkdownSnapshot bool `yaml:"markdown_snapshot" mapstructure:"markdown_snapshot"`
}

// ScoutConfig configures relevance scoring.
type ScoutConfig struct {
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Description  string `yaml:"description" mapstructure:"description"`
	MaxLinks     int    `yaml:"max_links" mapstructure:"max_links"`
	MaxTextChars int    `yaml:"max_text_chars" mapstructure:"max_text_chars"`
}

// EmbeddingConfig points at an OpenAI-compatible embedding endpoint.
type EmbeddingConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
}

// SearchConfig selects and tunes the web search provider.
type SearchConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	Region      string  `yaml:"region" mapstructure:"region"`
	SafeSearch  string  `yaml:"safesearch" mapstructure:"safesearch"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// JinaConfig holds Jina search credentials.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// DiscoveryConfig tunes the discovery pipeline.
type DiscoveryConfig struct {
	Threshold      float64 `yaml:"threshold" mapstructure:"threshold"`
	DefaultResults int     `yaml:"default_results" mapstructure:"default_results"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Search providers.
const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderJina       = "jina"
)

// Load reads configuration from config.yaml (optional) and LEADSCOUT_*
// environment variables, on top of built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 5000)
	v.SetDefault("store.raw_dir", "data/raw")
	v.SetDefault("store.processed_dir", "data/processed")
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0")
	v.SetDefault("scrape.markdown_snapshot", false)
	v.SetDefault("scout.timeout_secs", 10)
	v.SetDefault("scout.description", "AI Automation and Python Services")
	v.SetDefault("scout.max_links", 15)
	v.SetDefault("scout.max_text_chars", 4000)
	v.SetDefault("embedding.base_url", "http://localhost:11434/v1")
	v.SetDefault("embedding.model", "all-minilm")
	v.SetDefault("embedding.api_key", "")
	v.SetDefault("search.provider", ProviderDuckDuckGo)
	v.SetDefault("search.region", "in-en")
	v.SetDefault("search.safesearch", "moderate")
	v.SetDefault("search.rate_limit", 1.0)
	v.SetDefault("search.timeout_secs", 15)
	v.SetDefault("jina.key", "")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("discovery.threshold", 30.0)
	v.SetDefault("discovery.default_results", 5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. mode is one of "serve",
// "discover", "scrape" or "score"; unknown modes only get the common checks.
func (c *Config) Validate(mode string) error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(strings.TrimSpace(c.Store.ProcessedDir) != "", "store.processed_dir is required")
	check(strings.TrimSpace(c.Store.RawDir) != "", "store.raw_dir is required")

	needsSearch := mode == "serve" || mode == "discover"
	needsScout := needsSearch || mode == "score"

	if needsSearch {
		switch c.Search.Provider {
		case ProviderDuckDuckGo:
		case ProviderJina:
			check(c.Jina.SearchBaseURL != "", "jina.search_base_url is required")
		default:
			problems = append(problems, fmt.Sprintf("search.provider %q is not supported (want %s or %s)",
				c.Search.Provider, ProviderDuckDuckGo, ProviderJina))
		}
		check(c.Search.RateLimit > 0, "search.rate_limit must be positive")
		check(c.Discovery.Threshold >= 0 && c.Discovery.Threshold <= 100,
			"discovery.threshold must be between 0 and 100")
		check(c.Discovery.DefaultResults > 0, "discovery.default_results must be positive")
	}
	if needsScout {
		check(c.Embedding.BaseURL != "", "embedding.base_url is required")
		check(c.Embedding.Model != "", "embedding.model is required")
	}
	if mode == "serve" {
		check(c.Server.Port > 0 && c.Server.Port <= 65535, "server.port must be between 1 and 65535")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
