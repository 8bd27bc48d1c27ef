package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for key, value := range map[string]string{
		"AZURE_SEARCH_ENDPOINT":             "https://search.example.net",
		"AZURE_SEARCH_KEY":                  "search-key",
		"AZURE_SEARCH_INDEX":                "guidelines",
		"AZURE_OPENAI_EMBEDDING_ENDPOINT":   "https://openai.example.net",
		"AZURE_OPENAI_EMBEDDING_KEY":        "embed-key",
		"AZURE_OPENAI_EMBEDDING_DEPLOYMENT": "text-embedding-3-small",
		"AZURE_OPENAI_CHAT_ENDPOINT":        "https://openai.example.net",
		"AZURE_OPENAI_CHAT_KEY":             "chat-key",
		"AZURE_OPENAI_CHAT_DEPLOYMENT":      "gpt-4o-mini",
	} {
		t.Setenv(key, value)
	}
}

func TestParseFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := parseFromEnv()
	if err != nil {
		t.Fatalf("parseFromEnv() error = %v", err)
	}

	if cfg.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %q, want :8080", cfg.ServerAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.SearchCfg.APIVersion != "2024-07-01" {
		t.Errorf("search APIVersion = %q", cfg.SearchCfg.APIVersion)
	}
	if cfg.SearchCfg.RequestTimeout != 30*time.Second {
		t.Errorf("search HTTP timeout = %v, want 30s", cfg.SearchCfg.RequestTimeout)
	}

	p := cfg.PipelineCfg
	if p.SearchK != 10 || p.RetrieveTopK != 10 || p.RerankTopK != 3 {
		t.Errorf("pipeline depths = %d/%d/%d, want 10/10/3", p.SearchK, p.RetrieveTopK, p.RerankTopK)
	}
	if p.MaxContextChars != 4000 || p.AnswerContextChars != 2000 {
		t.Errorf("context bounds = %d/%d, want 4000/2000", p.MaxContextChars, p.AnswerContextChars)
	}
	if p.Temperature != 0.2 || p.MaxTokens != 450 {
		t.Errorf("sampling = %v/%d, want 0.2/450", p.Temperature, p.MaxTokens)
	}
}

func TestParseFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("PIPELINE_RERANK_TOP_K", "5")
	t.Setenv("AZURE_SEARCH_RETRY_ATTEMPTS", "7")

	cfg, err := parseFromEnv()
	if err != nil {
		t.Fatalf("parseFromEnv() error = %v", err)
	}
	if cfg.ServerAddr != ":9090" {
		t.Errorf("ServerAddr = %q, want :9090", cfg.ServerAddr)
	}
	if cfg.PipelineCfg.RerankTopK != 5 {
		t.Errorf("RerankTopK = %d, want 5", cfg.PipelineCfg.RerankTopK)
	}
	if cfg.SearchCfg.Retry.Attempts != 7 {
		t.Errorf("search retry attempts = %d, want 7", cfg.SearchCfg.Retry.Attempts)
	}
}

func TestParseFromEnv_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AZURE_SEARCH_KEY", "")

	if _, err := parseFromEnv(); err == nil {
		t.Error("parseFromEnv() with empty AZURE_SEARCH_KEY returned nil error")
	}
}

func TestParseFromEnv_ValidationBounds(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"search depth zero", "PIPELINE_SEARCH_K", "0", "SEARCH_K"},
		{"rerank exceeds retrieve", "PIPELINE_RERANK_TOP_K", "50", "RERANK_TOP_K"},
		{"too many workers", "PIPELINE_RERANK_WORKERS", "64", "RERANK_WORKERS"},
		{"context too small", "PIPELINE_MAX_CONTEXT_CHARS", "10", "MAX_CONTEXT_CHARS"},
		{"temperature out of range", "PIPELINE_TEMPERATURE", "3.5", "TEMPERATURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := parseFromEnv()
			if err == nil {
				t.Fatalf("parseFromEnv() with %s=%s returned nil error", tt.key, tt.val)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestGetEnvFile(t *testing.T) {
	tests := []struct {
		environment string
		want        string
	}{
		{"prod", ".env.prod"},
		{"production", ".env.prod"},
		{"local", ".env.local"},
		{"dev", ".env.local"},
		{"staging", ".env.staging"},
	}
	for _, tt := range tests {
		if got := getEnvFile(tt.environment); got != tt.want {
			t.Errorf("getEnvFile(%q) = %q, want %q", tt.environment, got, tt.want)
		}
	}
}
