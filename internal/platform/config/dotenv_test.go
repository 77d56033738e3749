package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvSearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	envPath := filepath.Join(root, ".env")
	if err := os.WriteFile(envPath, []byte("KAFKAVIEW_DOTENV_TEST=from-file\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("KAFKAVIEW_DOTENV_TEST", "")
	os.Unsetenv("KAFKAVIEW_DOTENV_TEST")

	loaded, err := LoadDotEnv(nested, 4)
	if err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if loaded != envPath {
		t.Fatalf("LoadDotEnv() = %q, want %q", loaded, envPath)
	}
	if got := os.Getenv("KAFKAVIEW_DOTENV_TEST"); got != "from-file" {
		t.Fatalf("KAFKAVIEW_DOTENV_TEST = %q, want %q", got, "from-file")
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("KAFKAVIEW_DOTENV_KEEP=file\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("KAFKAVIEW_DOTENV_KEEP", "process")

	if _, err := LoadDotEnv(root, 1); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("KAFKAVIEW_DOTENV_KEEP"); got != "process" {
		t.Fatalf("KAFKAVIEW_DOTENV_KEEP = %q, want %q", got, "process")
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	t.Parallel()

	loaded, err := LoadDotEnv(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if loaded != "" {
		t.Fatalf("LoadDotEnv() = %q, want empty", loaded)
	}
}
