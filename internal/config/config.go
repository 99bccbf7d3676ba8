package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`               // current application environment (local, dev, production)
	TelegramAPIToken string     `mapstructure:"-"`                 // Telegram API token loaded from environment
	OwnerChatID      int64      `mapstructure:"-"`                 // the only chat the bot answers to
	CatalogJSONPath  string     `mapstructure:"catalog_json_path"` // path to the syllabus catalog
	DB               DB         `mapstructure:"database"`
	Flashcards       Flashcards `mapstructure:"flashcards"`
	Export           Export     `mapstructure:"export"`
	Reminders        Reminders  `mapstructure:"reminders"`
}

// DB contains local database parameters.
type DB struct {
	Path string `mapstructure:"path"` // sqlite file, created on first run
}

// Flashcards controls how the review deck is built.
type Flashcards struct {
	FeaturedTopicID int `mapstructure:"featured_topic_id"`
	GenericLimit    int `mapstructure:"generic_limit"`
	AnswerPreview   int `mapstructure:"answer_preview"` // runes of subtopic content shown as answer
}

// Export controls the topic document layout.
type Export struct {
	PageHeight float64 `mapstructure:"page_height"`
	WrapWidth  int     `mapstructure:"wrap_width"`
}

// Reminders configures the daily study reminder.
type Reminders struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // standard 5-field cron expression
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the reminder timezone.
func (r Reminders) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

// Load reads configuration from an optional .env file, config files and
// environment variables.
func Load() (*Config, error) {
	// A missing .env is fine, the variables may come from the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("catalog_json_path", "assets/data/topics.json")
	v.SetDefault("database.path", "data/study.db")
	v.SetDefault("flashcards.featured_topic_id", 1)
	v.SetDefault("flashcards.generic_limit", 5)
	v.SetDefault("flashcards.answer_preview", 150)
	v.SetDefault("export.page_height", 270)
	v.SetDefault("export.wrap_width", 90)
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 9 * * *")
	v.SetDefault("reminders.timezone", "Europe/Madrid")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("owner_chat_id", "OWNER_CHAT_ID")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.OwnerChatID = v.GetInt64("owner_chat_id")
	if cfg.OwnerChatID == 0 {
		return nil, ErrMissingEnvironmentVariables
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Flashcards.GenericLimit < 0:
		return fmt.Errorf("%w: flashcards.generic_limit must not be negative", ErrInvalidConfig)
	case c.Flashcards.AnswerPreview <= 0:
		return fmt.Errorf("%w: flashcards.answer_preview must be positive", ErrInvalidConfig)
	case c.Export.PageHeight <= 0:
		return fmt.Errorf("%w: export.page_height must be positive", ErrInvalidConfig)
	case c.Export.WrapWidth <= 0:
		return fmt.Errorf("%w: export.wrap_width must be positive", ErrInvalidConfig)
	}

	if _, err := c.Reminders.Location(); err != nil {
		return fmt.Errorf("%w: reminders.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Reminders.Enabled {
		if _, err := cron.ParseStandard(c.Reminders.Schedule); err != nil {
			return fmt.Errorf("%w: reminders.schedule: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}
