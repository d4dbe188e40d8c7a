package config

import (
	"fmt"
	"os"
	"strings"
)

// Config is the full environment surface for one sync process. Two
// independent Drive accounts are involved: recordings come from the
// source account, transcripts land in the destination account.
type Config struct {
	// Drive folders
	SourceFolderID string
	DestFolderID   string

	// Per-account OAuth material
	SourceCredentialsFile string
	SourceTokenFile       string
	DestCredentialsFile   string
	DestTokenFile         string

	// Transcription
	GroqAPIKey string

	// Local scratch space for downloads and generated transcripts
	ScratchDir string

	// Optional per-run outcome workbook ("" disables)
	ReportPath string

	LogLevel string
}

func Load() (Config, error) {
	cfg := Config{
		SourceFolderID:        getEnv("SOURCE_FOLDER_ID", ""),
		DestFolderID:          getEnv("DEST_FOLDER_ID", ""),
		SourceCredentialsFile: getEnv("SOURCE_CREDENTIALS_FILE", "credentials_account1.json"),
		SourceTokenFile:       getEnv("SOURCE_TOKEN_FILE", "token_account1.json"),
		DestCredentialsFile:   getEnv("DEST_CREDENTIALS_FILE", "credentials_account2.json"),
		DestTokenFile:         getEnv("DEST_TOKEN_FILE", "token_account2.json"),
		GroqAPIKey:            getEnv("GROQ_API_KEY", ""),
		ScratchDir:            getEnv("SCRATCH_DIR", "temp_downloads"),
		ReportPath:            getEnv("REPORT_PATH", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}

	if cfg.SourceFolderID == "" || cfg.DestFolderID == "" {
		return Config{}, fmt.Errorf("SOURCE_FOLDER_ID and DEST_FOLDER_ID must be set")
	}
	if cfg.GroqAPIKey == "" {
		return Config{}, fmt.Errorf("GROQ_API_KEY must be set")
	}
	if _, err := os.Stat(cfg.SourceCredentialsFile); err != nil {
		return Config{}, fmt.Errorf("source account credentials %s: %w", cfg.SourceCredentialsFile, err)
	}
	if _, err := os.Stat(cfg.DestCredentialsFile); err != nil {
		return Config{}, fmt.Errorf("destination account credentials %s: %w", cfg.DestCredentialsFile, err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}
