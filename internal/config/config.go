package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/medassist/medassist-backend/internal/pkg/retry"
)

// Config holds the application configuration. It is read once at startup and
// passed explicitly into every component; nothing re-reads the environment
// after that.
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// External service configurations
	SearchCfg    SearchConfig    `envPrefix:"AZURE_SEARCH_"`
	EmbeddingCfg EmbeddingConfig `envPrefix:"AZURE_OPENAI_EMBEDDING_"`
	ChatCfg      ChatModelConfig `envPrefix:"AZURE_OPENAI_CHAT_"`

	// Pipeline tuning
	PipelineCfg PipelineConfig `envPrefix:"PIPELINE_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// SearchConfig holds the Azure AI Search connection settings.
type SearchConfig struct {
	HTTPClientConfig
	Endpoint   string               `env:"ENDPOINT,notEmpty"`
	Key        string               `env:"KEY,notEmpty"`
	Index      string               `env:"INDEX,notEmpty"`
	APIVersion string               `env:"API_VERSION" envDefault:"2024-07-01"`
	Retry      pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// EmbeddingConfig holds the Azure OpenAI embedding deployment settings.
type EmbeddingConfig struct {
	Endpoint       string               `env:"ENDPOINT,notEmpty"`
	Key            string               `env:"KEY,notEmpty"`
	Deployment     string               `env:"DEPLOYMENT,notEmpty"`
	APIVersion     string               `env:"API_VERSION" envDefault:"2024-06-01"`
	RequestTimeout time.Duration        `env:"TIMEOUT" envDefault:"30s"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ChatModelConfig holds the Azure OpenAI chat deployment settings.
type ChatModelConfig struct {
	Endpoint       string               `env:"ENDPOINT,notEmpty"`
	Key            string               `env:"KEY,notEmpty"`
	Deployment     string               `env:"DEPLOYMENT,notEmpty"`
	APIVersion     string               `env:"API_VERSION" envDefault:"2024-06-01"`
	RequestTimeout time.Duration        `env:"TIMEOUT" envDefault:"60s"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// PipelineConfig holds the tunables of the retrieval/conditioning pipeline.
type PipelineConfig struct {
	// SearchK is the depth of each sub-search (vector and keyword).
	SearchK int `env:"SEARCH_K" envDefault:"10"`
	// RetrieveTopK bounds the fused candidate list handed to conditioning.
	RetrieveTopK int `env:"RETRIEVE_TOP_K" envDefault:"10"`
	// RerankTopK bounds the evidence kept after model-based reranking.
	RerankTopK int `env:"RERANK_TOP_K" envDefault:"3"`
	// RerankWorkers bounds the concurrent per-chunk rerank calls.
	RerankWorkers int `env:"RERANK_WORKERS" envDefault:"4"`
	// MaxContextChars bounds total conditioned evidence size.
	MaxContextChars int `env:"MAX_CONTEXT_CHARS" envDefault:"4000"`
	// AnswerContextChars bounds the concatenated rerank context.
	AnswerContextChars int `env:"ANSWER_CONTEXT_CHARS" envDefault:"2000"`

	Temperature float32 `env:"TEMPERATURE" envDefault:"0.2"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"450"`

	MaxQueryLength int `env:"MAX_QUERY_LENGTH" envDefault:"2000"`
}

// HTTPClientConfig configures the outbound HTTP client of a connector.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"HTTP_CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"HTTP_KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"HTTP_IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"HTTP_RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := parseFromEnv()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag
	return cfg, nil
}

// parseFromEnv reads and validates configuration from the current process
// environment. Split out of LoadConfig so tests can run it without flags.
func parseFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	p := cfg.PipelineCfg

	if p.SearchK < 1 || p.SearchK > 100 {
		return fmt.Errorf("PIPELINE_SEARCH_K must be between 1 and 100, got %d", p.SearchK)
	}
	if p.RetrieveTopK < 1 || p.RetrieveTopK > p.SearchK*2 {
		return fmt.Errorf("PIPELINE_RETRIEVE_TOP_K must be between 1 and %d, got %d", p.SearchK*2, p.RetrieveTopK)
	}
	if p.RerankTopK < 1 || p.RerankTopK > p.RetrieveTopK {
		return fmt.Errorf("PIPELINE_RERANK_TOP_K must be between 1 and RETRIEVE_TOP_K(%d), got %d", p.RetrieveTopK, p.RerankTopK)
	}
	if p.RerankWorkers < 1 || p.RerankWorkers > 32 {
		return fmt.Errorf("PIPELINE_RERANK_WORKERS must be between 1 and 32, got %d", p.RerankWorkers)
	}
	if p.MaxContextChars < 100 {
		return fmt.Errorf("PIPELINE_MAX_CONTEXT_CHARS must be at least 100, got %d", p.MaxContextChars)
	}
	if p.AnswerContextChars < 100 || p.AnswerContextChars > p.MaxContextChars {
		return fmt.Errorf("PIPELINE_ANSWER_CONTEXT_CHARS must be between 100 and MAX_CONTEXT_CHARS(%d), got %d", p.MaxContextChars, p.AnswerContextChars)
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("PIPELINE_TEMPERATURE must be between 0 and 2, got %v", p.Temperature)
	}
	if p.MaxTokens < 1 || p.MaxTokens > 4096 {
		return fmt.Errorf("PIPELINE_MAX_TOKENS must be between 1 and 4096, got %d", p.MaxTokens)
	}
	if p.MaxQueryLength < 1 {
		return fmt.Errorf("PIPELINE_MAX_QUERY_LENGTH must be positive, got %d", p.MaxQueryLength)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
