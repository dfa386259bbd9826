package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Song   SongConfig   `mapstructure:"song"`
	Meme   MemeConfig   `mapstructure:"meme"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// OpenAIConfig covers the chat completion, image generation, and speech
// transcription providers, all reached through one OpenAI-compatible API.
type OpenAIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	ChatModel       string `mapstructure:"chat_model"`
	ImageModel      string `mapstructure:"image_model"`
	TranscribeModel string `mapstructure:"transcribe_model"`
}

// SongConfig covers the asynchronous music generation task provider.
type SongConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Duration     int           `mapstructure:"duration"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	MockURL      string        `mapstructure:"mock_url"`
}

// MemeConfig covers the external meme rendering service.
type MemeConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Width           int           `mapstructure:"width"`
	Height          int           `mapstructure:"height"`
	Font            string        `mapstructure:"font"`
	Watermark       string        `mapstructure:"watermark"`
	ValidateTimeout time.Duration `mapstructure:"validate_timeout"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.chat_model", "gpt-4-turbo-preview")
	v.SetDefault("openai.image_model", "dall-e-3")
	v.SetDefault("openai.transcribe_model", "whisper-1")
	v.SetDefault("song.base_url", "https://piapi.ai/api/v1")
	v.SetDefault("song.duration", 30)
	v.SetDefault("song.poll_interval", 2*time.Second)
	v.SetDefault("song.max_attempts", 30)
	v.SetDefault("song.mock_url", "https://example.com/mock-song.mp3")
	v.SetDefault("meme.base_url", "https://api.memegen.link/images")
	v.SetDefault("meme.width", 1200)
	v.SetDefault("meme.height", 1200)
	v.SetDefault("meme.font", "impact")
	v.SetDefault("meme.watermark", "none")
	v.SetDefault("meme.validate_timeout", 5*time.Second)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("openai.chat_model", "OPENAI_CHAT_MODEL")
	v.BindEnv("song.api_key", "PIAPI_KEY")
	v.BindEnv("song.base_url", "PIAPI_BASE_URL")
	v.BindEnv("meme.base_url", "MEME_BASE_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
