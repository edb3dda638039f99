package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string `mapstructure:"bot_token"`

	// OpenAI configuration
	OpenAIAPIBase     string        `mapstructure:"openai_api_base"`
	OpenAIAPIKey      string        `mapstructure:"openai_api_key"`
	OpenAIModel       string        `mapstructure:"openai_model"`
	OpenAIVisionModel string        `mapstructure:"openai_vision_model"`
	GenerateTimeout   time.Duration `mapstructure:"generate_timeout"`
	GeneratedCacheTTL time.Duration `mapstructure:"generated_cache_ttl"`

	// Recipe dataset
	DatasetPath    string `mapstructure:"dataset_path"`
	ImageExtension string `mapstructure:"image_extension"`
	DataDir        string `mapstructure:"data_dir"`

	// Matching
	MatchLimit         int     `mapstructure:"match_limit"`
	BotMatchThreshold  float64 `mapstructure:"bot_match_threshold"`
	APIMatchThreshold  float64 `mapstructure:"api_match_threshold"`
	DemoMatchThreshold float64 `mapstructure:"demo_match_threshold"`
	DisplayMinScore    float64 `mapstructure:"display_min_score"`

	// Application configuration
	HTTPAddr string `mapstructure:"http_addr"`
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"env"`
}

// Requirement names a value a binary cannot start without
type Requirement int

const (
	// RequireBotToken demands BOT_TOKEN
	RequireBotToken Requirement = iota
	// RequireOpenAI demands OPENAI_API_KEY
	RequireOpenAI
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot_token", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_api_base", "https://api.openai.com/v1")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_vision_model", "")
	v.SetDefault("generate_timeout", "60s")
	v.SetDefault("generated_cache_ttl", "168h")

	v.SetDefault("dataset_path", "FoodDataset/food_recipes.csv")
	v.SetDefault("image_extension", ".jpg")
	v.SetDefault("data_dir", "data")

	v.SetDefault("match_limit", 5)
	v.SetDefault("bot_match_threshold", 0.3)
	v.SetDefault("api_match_threshold", 0.3)
	v.SetDefault("demo_match_threshold", 0.5)
	v.SetDefault("display_min_score", 0.2)

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("env", "development")
}

// LoadFromEnv loads configuration from a .env file, if present, and the
// process environment, then checks the given requirements
func LoadFromEnv(reqs ...Requirement) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Global.Warn("Error loading .env file: %v", err)
	}
	return load(viper.New(), reqs...)
}

func load(v *viper.Viper, reqs ...Requirement) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.OpenAIVisionModel == "" {
		cfg.OpenAIVisionModel = cfg.OpenAIModel
	}

	if err := cfg.validate(reqs...); err != nil {
		return nil, err
	}

	logger.Global.Info("Configuration loaded: %+v", cfg.Redacted())
	return cfg, nil
}

func (c *Config) validate(reqs ...Requirement) error {
	for _, r := range reqs {
		switch r {
		case RequireBotToken:
			if c.BotToken == "" {
				return fmt.Errorf("BOT_TOKEN environment variable is required")
			}
		case RequireOpenAI:
			if c.OpenAIAPIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable is required")
			}
		}
	}

	if c.MatchLimit <= 0 {
		return fmt.Errorf("MATCH_LIMIT must be positive, got %d", c.MatchLimit)
	}
	for name, th := range map[string]float64{
		"BOT_MATCH_THRESHOLD":  c.BotMatchThreshold,
		"API_MATCH_THRESHOLD":  c.APIMatchThreshold,
		"DEMO_MATCH_THRESHOLD": c.DemoMatchThreshold,
		"DISPLAY_MIN_SCORE":    c.DisplayMinScore,
	} {
		if th < 0 || th > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, th)
		}
	}
	return nil
}

// GenerationEnabled reports whether an API key for the recipe generator is set
func (c *Config) GenerationEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Production reports whether the app runs in production mode
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Redacted returns a copy safe for logging
func (c *Config) Redacted() Config {
	out := *c
	out.BotToken = redact(out.BotToken)
	out.OpenAIAPIKey = redact(out.OpenAIAPIKey)
	return out
}

func redact(s string) string {
	if len(s) > 8 {
		return s[:8] + "...REDACTED..."
	}
	if s != "" {
		return "...REDACTED..."
	}
	return s
}
