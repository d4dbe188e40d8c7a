package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCredFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(`{"installed":{}}`), 0600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SOURCE_FOLDER_ID", "src-folder")
	t.Setenv("DEST_FOLDER_ID", "dst-folder")
	t.Setenv("GROQ_API_KEY", "key")
	t.Setenv("SOURCE_CREDENTIALS_FILE", writeCredFile(t, dir, "cred1.json"))
	t.Setenv("DEST_CREDENTIALS_FILE", writeCredFile(t, dir, "cred2.json"))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ScratchDir != "temp_downloads" {
		t.Errorf("scratch dir default = %q", cfg.ScratchDir)
	}
	if cfg.SourceTokenFile != "token_account1.json" || cfg.DestTokenFile != "token_account2.json" {
		t.Errorf("token file defaults = %q, %q", cfg.SourceTokenFile, cfg.DestTokenFile)
	}
	if cfg.ReportPath != "" {
		t.Errorf("report path should default to disabled, got %q", cfg.ReportPath)
	}
}

func TestLoadRequiresFolderIDs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DEST_FOLDER_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when DEST_FOLDER_ID is unset")
	}
}

func TestLoadRequiresGroqKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GROQ_API_KEY", "  ")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when GROQ_API_KEY is unset")
	}
}

func TestLoadRequiresCredentialFiles(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SOURCE_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "missing.json"))

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when the source credentials file is missing")
	}
}
