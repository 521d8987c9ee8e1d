package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  max_conn_lifetime: "30m"

phonetics:
  use_ml: false
  dictionary_path: "./testdata/cmudict.dict"
  rules_path: "./testdata/rules.json"
  default_accent: "british"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.MaxConnLifetime != 30*time.Minute {
		t.Errorf("database.max_conn_lifetime = %v, want 30m", cfg.Database.MaxConnLifetime)
	}

	// Phonetics
	if cfg.Phonetics.UseML {
		t.Error("phonetics.use_ml should be false")
	}
	if cfg.Phonetics.DictionaryPath != "./testdata/cmudict.dict" {
		t.Errorf("phonetics.dictionary_path = %q", cfg.Phonetics.DictionaryPath)
	}
	if cfg.Phonetics.DefaultAccent != "british" {
		t.Errorf("phonetics.default_accent = %q, want %q", cfg.Phonetics.DefaultAccent, "british")
	}
	// Paths not set in YAML fall back to defaults.
	if cfg.Phonetics.ModelPath != "./data/g2p_model.gob" {
		t.Errorf("phonetics.model_path = %q, want default", cfg.Phonetics.ModelPath)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PHONETICS_USE_ML", "true")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Phonetics.UseML {
		t.Error("phonetics.use_ml should be true (ENV override)")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	// Unset CONFIG_PATH so the fallback kicks in and the file is just absent.
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Phonetics.UseML {
		t.Error("phonetics.use_ml should default to true")
	}
	if cfg.Phonetics.DefaultAccent != "american" {
		t.Errorf("phonetics.default_accent = %q, want %q (default)", cfg.Phonetics.DefaultAccent, "american")
	}
	if cfg.Database.MaxConns != 25 {
		t.Errorf("database.max_conns = %d, want 25 (default)", cfg.Database.MaxConns)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_EmptyDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty database DSN")
	}
}

func TestValidate_MinConnsAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Database.MinConns = 50
	cfg.Database.MaxConns = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_conns > max_conns")
	}
}

func TestValidate_EmptyDictionaryPath(t *testing.T) {
	cfg := validConfig()
	cfg.Phonetics.DictionaryPath = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty dictionary path")
	}
}

func TestValidate_EmptyRulesPath(t *testing.T) {
	cfg := validConfig()
	cfg.Phonetics.RulesPath = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty rules path")
	}
}

func TestValidate_MLEnabledWithoutModelPaths(t *testing.T) {
	cfg := validConfig()
	cfg.Phonetics.UseML = true
	cfg.Phonetics.ModelPath = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing model path with ML enabled")
	}
}

func TestValidate_MLDisabledIgnoresModelPaths(t *testing.T) {
	cfg := validConfig()
	cfg.Phonetics.UseML = false
	cfg.Phonetics.ModelPath = ""
	cfg.Phonetics.CharMapPath = ""
	cfg.Phonetics.PhonemeMapPath = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with ML disabled: %v", err)
	}
}

func TestValidate_UnknownDefaultAccent(t *testing.T) {
	cfg := validConfig()
	cfg.Phonetics.DefaultAccent = "martian"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown default accent")
	}
}

func TestValidate_AllKnownAccents(t *testing.T) {
	for _, accent := range []string{"american", "british", "australian"} {
		cfg := validConfig()
		cfg.Phonetics.DefaultAccent = accent

		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error for accent %q: %v", accent, err)
		}
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Database: DatabaseConfig{
			DSN:      "postgres://u:p@localhost:5432/testdb",
			MaxConns: 25,
			MinConns: 5,
		},
		Phonetics: PhoneticsConfig{
			UseML:          true,
			DictionaryPath: "./data/cmudict.dict",
			ModelPath:      "./data/g2p_model.gob",
			CharMapPath:    "./data/char_to_input.txt",
			PhonemeMapPath: "./data/index_to_ipa.txt",
			RulesPath:      "./data/phonetic_rules.json",
			DefaultAccent:  "american",
		},
	}
}
