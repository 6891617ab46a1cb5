package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingValkeyAddrs(t *testing.T) {
	for _, driver := range []string{DriverValkey, DriverRedis} {
		cfg := validConfig()
		cfg.Store.Driver = driver

		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for missing addrs with driver %s", driver)
		}
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = "chroma"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `store.driver must be sqlite, valkey or redis, got "chroma"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_EmbeddingProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Provider = ProviderOpenAI
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for openai without model")
	}

	cfg.Embedding.Model = "text-embedding-3-small"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Embedding.Provider = "word2vec"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestValidate_LimitOrder(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.DefaultLimit = 30
	cfg.Retrieval.MaxLimit = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_limit exceeds max_limit")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("expected Driver=sqlite, got %q", cfg.Store.Driver)
	}
	if cfg.Store.KeyPrefix != "quantmaster:" {
		t.Errorf("expected KeyPrefix='quantmaster:', got %q", cfg.Store.KeyPrefix)
	}
	if cfg.Embedding.Provider != ProviderHashing || cfg.Embedding.Dimensions != 384 {
		t.Errorf("unexpected embedding defaults %+v", cfg.Embedding)
	}
	if cfg.Retrieval.DefaultLimit != 5 {
		t.Errorf("expected DefaultLimit=5, got %d", cfg.Retrieval.DefaultLimit)
	}
	if cfg.Retrieval.CollectionTimeoutMs != 2000 {
		t.Errorf("expected CollectionTimeoutMs=2000, got %d", cfg.Retrieval.CollectionTimeoutMs)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Store:     StoreConfig{Driver: DriverValkey, KeyPrefix: "custom:", HNSWM: 16},
		Retrieval: RetrievalConfig{DefaultLimit: 3, CollectionTimeoutMs: 500},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Store.Driver != DriverValkey || cfg.Store.KeyPrefix != "custom:" || cfg.Store.HNSWM != 16 {
		t.Errorf("store overridden: %+v", cfg.Store)
	}
	if cfg.Retrieval.DefaultLimit != 3 || cfg.Retrieval.CollectionTimeoutMs != 500 {
		t.Errorf("retrieval overridden: %+v", cfg.Retrieval)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("QM_TEST_SET", "valkey")

	got := string(expandEnvVars([]byte("a: ${QM_TEST_SET}\nb: ${QM_TEST_UNSET:-fallback}\nc: ${QM_TEST_UNSET}")))
	want := "a: valkey\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("QM_TEST_PORT", "9090")
	path := filepath.Join(t.TempDir(), "test.yaml")
	yaml := `
http:
  port: ${QM_TEST_PORT}
store:
  driver: sqlite
  path: /tmp/qm.db
retrieval:
  collection_timeout_ms: 750
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Store.Path != "/tmp/qm.db" || cfg.Retrieval.CollectionTimeoutMs != 750 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Retrieval.MaxLimit != 50 {
		t.Errorf("defaults not applied: MaxLimit=%d", cfg.Retrieval.MaxLimit)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Store.Driver == "" || cfg.HTTP.Port == 0 {
		t.Errorf("unexpected local config %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing .env must be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("QM_DOTENV_TEST=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("QM_DOTENV_TEST") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("QM_DOTENV_TEST"); got != "loaded" {
		t.Errorf("QM_DOTENV_TEST = %q, want loaded", got)
	}
}
