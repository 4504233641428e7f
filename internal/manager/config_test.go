package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"JARVIS_CONFIG", "PORT", "ALLOWED_ORIGINS", "WORKSPACE_BASE", "ANTHROPIC_API_KEY",
	"JARVIS_COMPLETION_MODEL", "JARVIS_LOG_FILE", "JARVIS_VERBOSE_HTTP",
}

// clearConfigEnv unsets every variable the loader reads and restores them
// when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "jarvis.yaml"), "")
	if err == nil {
		t.Fatalf("explicit missing file should fail, got %+v", cfg)
	}

	t.Chdir(t.TempDir())
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8000 || cfg.MonitorInterval != 5*time.Second || len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.Completion.Demo() {
		t.Fatalf("no credential should mean demo mode")
	}
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.yaml")
	writeFile(t, path, `
port: 9000
workspace_base: /srv/workspace
allowed_origins:
  - http://localhost:3000
monitor_interval: 2s
completion:
  model: claude-haiku-4-5
  max_tokens: 512
`)
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JARVIS_VERBOSE_HTTP", "true")

	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("env PORT should override yaml, got %d", cfg.Port)
	}
	if cfg.WorkspaceBase != "/srv/workspace" || cfg.MonitorInterval != 2*time.Second {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.Completion.Model != "claude-haiku-4-5" || cfg.Completion.MaxTokens != 512 || cfg.Completion.OutputPerMTok != 15 {
		t.Fatalf("unexpected completion config %+v", cfg.Completion)
	}
	if !cfg.VerboseHTTP {
		t.Fatalf("verbose flag not applied")
	}
}

func TestLoadConfigFromEnvVariablePath(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "port: 8123\n")
	t.Setenv("JARVIS_CONFIG", path)

	cfg, err := loadConfig("", "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8123 {
		t.Fatalf("expected port from JARVIS_CONFIG file, got %d", cfg.Port)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "ANTHROPIC_API_KEY=sk-test\nJARVIS_COMPLETION_MODEL=from-dotenv\n")
	t.Setenv("JARVIS_COMPLETION_MODEL", "from-env")

	cfg, err := loadConfig(filepath.Join(dir, "absent.yaml"), envFile)
	if err == nil {
		t.Fatalf("explicit yaml path must exist")
	}

	writeFile(t, filepath.Join(dir, "jarvis.yaml"), "port: 8001\n")
	cfg, err = loadConfig(filepath.Join(dir, "jarvis.yaml"), envFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Completion.APIKey != "sk-test" || cfg.Completion.Demo() {
		t.Fatalf("expected api key from .env, got %+v", cfg.Completion)
	}
	if cfg.Completion.Model != "from-env" {
		t.Fatalf(".env must not override the environment, got %q", cfg.Completion.Model)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "port: 70000\n")
	if _, err := loadConfig(bad, ""); err == nil {
		t.Fatalf("expected out-of-range port to fail validation")
	}

	writeFile(t, bad, "port: [\n")
	if _, err := loadConfig(bad, ""); err == nil {
		t.Fatalf("expected malformed yaml to fail")
	}

	ok := filepath.Join(dir, "ok.yaml")
	writeFile(t, ok, "port: 8000\n")
	t.Setenv("PORT", "eighty")
	if _, err := loadConfig(ok, ""); err == nil {
		t.Fatalf("expected non-numeric PORT to fail")
	}
}
