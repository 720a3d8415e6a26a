package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Finder    FinderConfig    `mapstructure:"finder"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Video     VideoConfig     `mapstructure:"video"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
}

type FinderConfig struct {
	Model       string `mapstructure:"model"`
	ChannelFile string `mapstructure:"channel_file"`
	TargetCount int    `mapstructure:"target_count"`
	Country     string `mapstructure:"country"`
}

type ValidatorConfig struct {
	InputFile    string `mapstructure:"input_file"`
	OutputFile   string `mapstructure:"output_file"`
	MaxAttempts  int    `mapstructure:"max_attempts"`
	ShortTimeout int    `mapstructure:"short_timeout"`
	MainTimeout  int    `mapstructure:"main_timeout"`
	RetryDelay   int    `mapstructure:"retry_delay"`
	TargetDelay  int    `mapstructure:"target_delay"`
	Headless     bool   `mapstructure:"headless"`
}

type VideoConfig struct {
	Model        string `mapstructure:"model"`
	LinksFile    string `mapstructure:"links_file"`
	OutputDir    string `mapstructure:"output_dir"`
	MetadataFile string `mapstructure:"metadata_file"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Enabled reports whether resolution events should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

func Load() (*Config, error) {

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("local")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("env", "local")

	// Finder defaults
	viper.SetDefault("finder.model", "gemini-2.5-flash")
	viper.SetDefault("finder.channel_file", "pet_channels.csv")
	viper.SetDefault("finder.target_count", 20)
	viper.SetDefault("finder.country", "US")

	// Validator defaults
	viper.SetDefault("validator.input_file", "pet_channels.csv")
	viper.SetDefault("validator.output_file", "validated_channels.csv")
	viper.SetDefault("validator.max_attempts", 3)
	viper.SetDefault("validator.short_timeout", 5)
	viper.SetDefault("validator.main_timeout", 30)
	viper.SetDefault("validator.retry_delay", 3)
	viper.SetDefault("validator.target_delay", 2)
	viper.SetDefault("validator.headless", true)

	// Video defaults
	viper.SetDefault("video.model", "gemini-2.5-pro")
	viper.SetDefault("video.links_file", "links.txt")
	viper.SetDefault("video.output_dir", "downloads")
	viper.SetDefault("video.metadata_file", "metadata.json")

	// Kafka publishing is off unless brokers are configured
	viper.SetDefault("kafka.brokers", []string{})
	viper.SetDefault("kafka.topic", "")

	viper.SetDefault("gemini.api_key", "")
}

func (c *Config) GetShortTimeout() time.Duration {
	return time.Duration(c.Validator.ShortTimeout) * time.Second
}

func (c *Config) GetMainTimeout() time.Duration {
	return time.Duration(c.Validator.MainTimeout) * time.Second
}

func (c *Config) GetRetryDelay() time.Duration {
	return time.Duration(c.Validator.RetryDelay) * time.Second
}

func (c *Config) GetTargetDelay() time.Duration {
	return time.Duration(c.Validator.TargetDelay) * time.Second
}
