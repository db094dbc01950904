package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("API_BASE", "")
	t.Setenv("MODEL", "")

	path := writeTempConfig(t, "llm:\n  api_key: \"from-file\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.LLM.APIKey != "from-file" {
		t.Errorf("APIKey = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != DefaultAPIBase {
		t.Errorf("BaseURL = %q, want default", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != DefaultModel {
		t.Errorf("Model = %q, want default", cfg.LLM.Model)
	}
	if cfg.Collect.MaxArticles != 10 || cfg.Concurrency.RPM != 60 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_KEY", "env-key")
	t.Setenv("API_BASE", "https://llm.internal")
	t.Setenv("MODEL", "custom-model")

	path := writeTempConfig(t, "llm:\n  api_key: \"from-file\"\n  base_url: \"https://file.example\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("APIKey = %q, env must win", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "https://llm.internal" {
		t.Errorf("BaseURL = %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != "custom-model" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
