package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/config"
)

func TestNew_ExplicitDir(t *testing.T) {
	cfg, err := config.New("/tmp/custom")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != "/tmp/custom" {
		t.Errorf("expected dir %q, got %q", "/tmp/custom", cfg.Dir)
	}
	if cfg.Logger == nil {
		t.Error("expected non-nil logger")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/xdg", "todo") {
		t.Errorf("expected %q, got %q", filepath.Join("/xdg", "todo"), got)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	if err := cfg.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend() != config.BackendFile {
		t.Errorf("expected backend %q, got %q", config.BackendFile, cfg.Backend())
	}
	if cfg.StorePath() != filepath.Join(cfg.Dir, "store.json") {
		t.Errorf("unexpected store path %q", cfg.StorePath())
	}
	if _, ok := cfg.PrefersDarkOverride(); ok {
		t.Error("expected no prefers_dark override")
	}
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	data := `
[storage]
backend = "mysql"
dsn = "u:p@tcp(db:3306)/todo"

[theme]
prefers_dark = "true"

[telemetry]
endpoint = "http://localhost:4318"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.DSNEnv, "")

	cfg, _ := config.New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend() != config.BackendMySQL {
		t.Errorf("expected backend mysql, got %q", cfg.Backend())
	}
	if cfg.DSN() != "u:p@tcp(db:3306)/todo" {
		t.Errorf("unexpected dsn %q", cfg.DSN())
	}
	if v, ok := cfg.PrefersDarkOverride(); !ok || !v {
		t.Errorf("expected prefers_dark override true, got %v, %v", v, ok)
	}
	if cfg.Settings.Telemetry.Endpoint != "http://localhost:4318" {
		t.Errorf("unexpected endpoint %q", cfg.Settings.Telemetry.Endpoint)
	}
}

func TestDSN_EnvOverrides(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.Settings.Storage.DSN = "from-file"
	t.Setenv(config.DSNEnv, "from-env")
	if cfg.DSN() != "from-env" {
		t.Errorf("expected env DSN, got %q", cfg.DSN())
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[storage]\nbackend = \"redis\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ := config.New(dir)
	err := cfg.Load()
	if err == nil || !strings.Contains(err.Error(), "invalid storage backend: redis") {
		t.Errorf("expected invalid backend error, got %v", err)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[storage\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ := config.New(dir)
	if err := cfg.Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestSetDebugOutput(t *testing.T) {
	var b strings.Builder
	cfg, _ := config.New(t.TempDir())
	cfg.SetDebugOutput(&b)
	cfg.Logger.Debug("hidden")
	if b.Len() != 0 {
		t.Errorf("expected no output without Debug, got %q", b.String())
	}

	cfg.Debug = true
	cfg.SetDebugOutput(&b)
	cfg.Logger.Debug("shown")
	if !strings.Contains(b.String(), "shown") {
		t.Errorf("expected debug output, got %q", b.String())
	}
}

func TestSettingsMarshal(t *testing.T) {
	s := config.Settings{Storage: config.StorageSettings{Backend: "memory"}}
	out, err := s.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `backend = "memory"`) {
		t.Errorf("expected backend in TOML, got %q", out)
	}
}
