package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	providerGemini = "gemini"
	providerLocal  = "local"
)

// Config represents the application configuration.
type Config struct {
	GeminiAPIKey   string   `json:"gemini_api_key"`
	GeminiModel    string   `json:"gemini_model"`
	DatabaseURL    string   `json:"DATABASE_URL"`
	JWTSecret      string   `json:"jwt_secret"`
	Provider       string   `json:"llm_provider"`
	LocalLLMURL    string   `json:"local_llm_url"`
	LocalLLMModel  string   `json:"local_llm_model"`
	ExportDir      string   `json:"export_dir"`
	Port           string   `json:"port"`
	AllowedOrigins []string `json:"allowed_origins"`
	PDFFont        string   `json:"pdf_font"`
	PDFFontBold    string   `json:"pdf_font_bold"`
	Env            string   `json:"env"`
}

func defaultConfig() Config {
	return Config{
		Provider:       providerGemini,
		ExportDir:      "exports",
		Port:           "8080",
		AllowedOrigins: []string{"http://localhost:8081"},
	}
}

// loadConfig reads configPath if it exists, then .env files, then lets the
// environment override individual settings.
func loadConfig(configPath string, envFiles ...string) (Config, error) {
	cfg := defaultConfig()

	configData, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(configData, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal %s: %w", configPath, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	for _, f := range envFiles {
		// Missing .env files are normal outside development.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	overrideString(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	overrideString(&cfg.GeminiModel, "GEMINI_MODEL")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.Provider, "LLM_PROVIDER")
	overrideString(&cfg.LocalLLMURL, "LOCAL_LLM_URL")
	overrideString(&cfg.LocalLLMModel, "LOCAL_LLM_MODEL")
	overrideString(&cfg.ExportDir, "EXPORT_DIR")
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.PDFFont, "PDF_FONT")
	overrideString(&cfg.PDFFontBold, "PDF_FONT_BOLD")
	overrideString(&cfg.Env, "ENV")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return cfg, nil
}

// Validate checks that the selected provider can be constructed.
func (c Config) Validate() error {
	switch c.Provider {
	case providerGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("gemini provider requires GEMINI_API_KEY")
		}
	case providerLocal:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	if c.ExportDir == "" {
		return errors.New("EXPORT_DIR must not be empty")
	}
	return nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
