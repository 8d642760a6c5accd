package config

import (
	"time"

	"financial-news-classifier/pkg/config"
)

// Ollama holds the configuration for the local Ollama text-generation API.
type Ollama struct {
	BaseURL             string        `mapstructure:"base_url"`
	Model               string        `mapstructure:"model"`
	Temperature         float64       `mapstructure:"temperature"`
	TopP                float64       `mapstructure:"top_p"`
	MaxTokens           int           `mapstructure:"max_tokens"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	MaxRetries          int           `mapstructure:"max_retries"`
	RetryDelay          time.Duration `mapstructure:"retry_delay"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// AI holds provider selection for the text-generation backend.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Processing holds the classification pipeline settings.
type Processing struct {
	TrackSentiment      bool          `mapstructure:"track_sentiment"`
	ReplyFormat         string        `mapstructure:"reply_format"`
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold"`
	ArticleDelay        time.Duration `mapstructure:"article_delay"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	PersistResults      bool          `mapstructure:"persist_results"`
	NotifyTelegram      bool          `mapstructure:"notify_telegram"`
}

// CSV holds input/output table settings.
type CSV struct {
	InputFile  string `mapstructure:"input_file"`
	OutputFile string `mapstructure:"output_file"`
	DateFormat string `mapstructure:"date_format"`
}

// Scheduler holds the cron schedule for periodic batch runs.
type Scheduler struct {
	Cron string `mapstructure:"cron"`
}

// Config holds the full configuration for the classifier service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Telegram   config.Telegram `mapstructure:"telegram"`
	Ollama     Ollama          `mapstructure:"ollama"`
	Gemini     Gemini          `mapstructure:"gemini"`
	AI         AI              `mapstructure:"ai"`
	Processing Processing      `mapstructure:"processing"`
	CSV        CSV             `mapstructure:"csv"`
	Scheduler  Scheduler       `mapstructure:"scheduler"`
}

// Load loads the classifier configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
