package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingEmbedding(t *testing.T) {
	base := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	t.Run("missing base_url", func(t *testing.T) {
		cfg := base
		cfg.Embedding = EmbeddingConfig{Model: "bge-m3"}
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for missing embedding.base_url")
		}
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := base
		cfg.Embedding = EmbeddingConfig{BaseURL: "https://api.example.com/v1/"}
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for missing embedding.model")
		}
	})
}

func TestValidate_Valid(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			BaseURL: "https://api.example.com/v1/",
			Model:   "bge-m3",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected Provider='openai', got %q", cfg.Embedding.Provider)
	}
	if cfg.Rerank.TimeoutSec != 30 {
		t.Errorf("expected Rerank.TimeoutSec=30, got %d", cfg.Rerank.TimeoutSec)
	}
	if cfg.Search.IndexName != "idx:corpus" {
		t.Errorf("expected IndexName='idx:corpus', got %q", cfg.Search.IndexName)
	}
	if cfg.Search.KeyPrefix != "searchgate:" {
		t.Errorf("expected KeyPrefix='searchgate:', got %q", cfg.Search.KeyPrefix)
	}
	if cfg.Search.RRFK != 60 {
		t.Errorf("expected RRFK=60, got %d", cfg.Search.RRFK)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{ReadinessTimeout: 15},
		Embedding: EmbeddingConfig{Provider: "nebius"},
		Rerank:    RerankConfig{TimeoutSec: 5},
		Search:    SearchConfig{IndexName: "idx:docs", KeyPrefix: "custom:", RRFK: 20},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Embedding.Provider != "nebius" {
		t.Errorf("expected Provider='nebius', got %q", cfg.Embedding.Provider)
	}
	if cfg.Search.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Search.KeyPrefix)
	}
	if cfg.Search.RRFK != 20 {
		t.Errorf("expected RRFK=20, got %d", cfg.Search.RRFK)
	}
}

func TestRerankEnabled(t *testing.T) {
	cfg := Config{}
	if cfg.RerankEnabled() {
		t.Error("expected rerank disabled without endpoint")
	}
	cfg.Rerank.Endpoint = "http://localhost:8081"
	if !cfg.RerankEnabled() {
		t.Error("expected rerank enabled with endpoint")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SEARCHGATE_TEST_VAR", "secret")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "password: ${SEARCHGATE_TEST_VAR}", "password: secret"},
		{"unset variable", "password: ${SEARCHGATE_TEST_UNSET}", "password: "},
		{"unset with default", "port: ${SEARCHGATE_TEST_UNSET:-8080}", "port: 8080"},
		{"set ignores default", "password: ${SEARCHGATE_TEST_VAR:-fallback}", "password: secret"},
		{"no variables", "plain: value", "plain: value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(expandEnvVars([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
