package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Upload    UploadConfig
	Assistant AssistantConfig
	Generator GeneratorConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type UploadConfig struct {
	Dir          string
	MaxSizeBytes int64
}

type AssistantConfig struct {
	APIKey string
	Model  string
}

type GeneratorConfig struct {
	Enabled bool
	// Cron expression for the synthetic metric job
	Schedule string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	maxSize := viper.GetInt64("UPLOAD_MAX_SIZE_BYTES")
	if maxSize == 0 {
		maxSize = 16 << 20
	}

	model := viper.GetString("ASSISTANT_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	schedule := viper.GetString("GENERATOR_SCHEDULE")
	if schedule == "" {
		schedule = "*/5 * * * *"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Upload: UploadConfig{
			Dir:          uploadDir,
			MaxSizeBytes: maxSize,
		},
		Assistant: AssistantConfig{
			APIKey: viper.GetString("GEMINI_API_KEY"),
			Model:  model,
		},
		Generator: GeneratorConfig{
			Enabled:  viper.GetBool("GENERATOR_ENABLED"),
			Schedule: schedule,
		},
	}

	return config, nil
}
