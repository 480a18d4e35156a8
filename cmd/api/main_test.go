package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipegen/internal/platform/localllm"
)

var configEnvKeys = []string{
	"GEMINI_API_KEY", "GEMINI_MODEL", "DATABASE_URL", "JWT_SECRET", "LLM_PROVIDER", "LOCAL_LLM_URL",
	"LOCAL_LLM_MODEL", "EXPORT_DIR", "PORT", "ALLOWED_ORIGINS", "PDF_FONT", "PDF_FONT_BOLD", "ENV",
}

// clearConfigEnv empties every config variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()

	cfg, err := loadConfig(filepath.Join(dir, "config.json"), filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, providerGemini, cfg.Provider)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{
		"gemini_api_key": "file-key",
		"DATABASE_URL": "postgres://localhost/recipes",
		"port": "9000"
	}`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/recipes", cfg.DatabaseURL)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, providerGemini, cfg.Provider)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"gemini_api_key": "file-key", "port": "9000"}`)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("LLM_PROVIDER", " Local ")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, providerLocal, cfg.Provider)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearConfigEnv(t)
	// godotenv does not overwrite variables that are already set, even to "".
	os.Unsetenv("LOCAL_LLM_MODEL")
	t.Cleanup(func() { os.Unsetenv("LOCAL_LLM_MODEL") })

	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "LOCAL_LLM_MODEL=llava:13b\n")

	cfg, err := loadConfig(filepath.Join(dir, "config.json"), envPath)
	require.NoError(t, err)
	assert.Equal(t, "llava:13b", cfg.LocalLLMModel)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	clearConfigEnv(t)
	path := writeFile(t, t.TempDir(), "config.json", `{"gemini_api_key": `)

	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "failed to unmarshal")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"gemini with key", Config{Provider: providerGemini, GeminiAPIKey: "k", ExportDir: "out"}, ""},
		{"gemini without key", Config{Provider: providerGemini, ExportDir: "out"}, "GEMINI_API_KEY"},
		{"local without key", Config{Provider: providerLocal, ExportDir: "out"}, ""},
		{"unknown provider", Config{Provider: "openai", ExportDir: "out"}, "unknown LLM_PROVIDER"},
		{"no export dir", Config{Provider: providerLocal}, "EXPORT_DIR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewGenerator_Local(t *testing.T) {
	gen, closeFn, err := newGenerator(context.Background(), Config{Provider: providerLocal}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &localllm.Client{}, gen)
}

func TestNewGenerator_Unknown(t *testing.T) {
	_, _, err := newGenerator(context.Background(), Config{Provider: "nope"}, zap.NewNop())
	assert.Error(t, err)
}
