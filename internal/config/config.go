package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig selects the interaction store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "redis" or "file"
	Path   string `mapstructure:"path"`   // JSON document path for the file driver
}

// ContentConfig points at the Pjuskeby content site's REST API.
type ContentConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	FetchInterval string `mapstructure:"fetch_interval"` // duration string, e.g., "10m"
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// TrendingConfig tunes ranking behavior.
type TrendingConfig struct {
	HotThreshold float64 `mapstructure:"hot_threshold"`
	TopN         int     `mapstructure:"top_n"`
}

// DigestConfig controls the periodic newsletter.
type DigestConfig struct {
	Channel    string `mapstructure:"channel"`   // newsletter channel name, used in paths and publish markers
	Frequency  string `mapstructure:"frequency"` // "daily" or "weekly"
	PeriodDays int    `mapstructure:"period_days"`
	TopN       int    `mapstructure:"top_n"`
	OutputDir  string `mapstructure:"output_dir"`
	Interval   string `mapstructure:"interval"` // how often the builder re-evaluates
	Language   string `mapstructure:"language"`
	Title      string `mapstructure:"title"`
	Preface    string `mapstructure:"preface"`
	Postscript string `mapstructure:"postscript"`
}

// OpenAIConfig enables the AI editor's note when an API key is set.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// SusanooConfig enables digest cover art generation when configured.
type SusanooConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	AspectRatio    string `mapstructure:"aspect_ratio"`
	Timeout        string `mapstructure:"timeout"`
	WebPQuality    int    `mapstructure:"webp_quality"`
	PromptTemplate string `mapstructure:"prompt_template"`
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Store    StoreConfig    `mapstructure:"store"`
	Content  ContentConfig  `mapstructure:"content"`
	Server   ServerConfig   `mapstructure:"server"`
	Trending TrendingConfig `mapstructure:"trending"`
	Digest   DigestConfig   `mapstructure:"digest"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Susanoo  SusanooConfig  `mapstructure:"susanoo"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "redis"
	}
	if c.Store.Path == "" {
		c.Store.Path = "./data/rumors.json"
	}
	if c.Content.FetchInterval == "" {
		c.Content.FetchInterval = "10m"
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Trending.HotThreshold == 0 {
		c.Trending.HotThreshold = 10
	}
	if c.Trending.TopN == 0 {
		c.Trending.TopN = 5
	}
	if c.Digest.Channel == "" {
		c.Digest.Channel = "pjuskeby_weekly"
	}
	if c.Digest.Frequency == "" {
		c.Digest.Frequency = "weekly"
	}
	if c.Digest.PeriodDays == 0 {
		c.Digest.PeriodDays = 7
	}
	if c.Digest.TopN == 0 {
		c.Digest.TopN = c.Trending.TopN
	}
	if c.Digest.OutputDir == "" {
		c.Digest.OutputDir = "./out"
	}
	if c.Digest.Interval == "" {
		c.Digest.Interval = "30m"
	}
}
