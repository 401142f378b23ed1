package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the Batiku server.
// Values are loaded from config.defaults.yaml (optional) and the
// environment (APP_ prefix, e.g. APP_S3_BUCKET_NAME).
type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	AWSRegion         string `mapstructure:"AWS_REGION"`
	S3BucketName      string `mapstructure:"S3_BUCKET_NAME"`
	VectorizeQueueURL string `mapstructure:"VECTORIZE_QUEUE_URL"`

	BedrockModelID           string `mapstructure:"BEDROCK_MODEL_ID"`
	GenerationCandidateCount int    `mapstructure:"GENERATION_CANDIDATE_COUNT"`
	VariationCandidateCount  int    `mapstructure:"VARIATION_CANDIDATE_COUNT"`

	FetchTimeoutSeconds int `mapstructure:"FETCH_TIMEOUT_SECONDS"`

	// HistoryFilePath, when set, persists export history to a JSON file.
	// Empty means the in-memory store is used.
	HistoryFilePath string `mapstructure:"HISTORY_FILE_PATH"`
}

// FetchTimeout returns the source-image fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Load reads configuration for the named service. A missing config file is
// not an error; defaults and environment variables always apply.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("S3_BUCKET_NAME", "")
	v.SetDefault("VECTORIZE_QUEUE_URL", "")
	v.SetDefault("BEDROCK_MODEL_ID", "amazon.titan-image-generator-v1")
	v.SetDefault("GENERATION_CANDIDATE_COUNT", 3)
	v.SetDefault("VARIATION_CANDIDATE_COUNT", 4)
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 30)
	v.SetDefault("HISTORY_FILE_PATH", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("configuration file not found for %s; using defaults and environment variables", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
