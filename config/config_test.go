package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLoadConfig_Defaults confere os padrões com apenas a variável
// obrigatória definida.
func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8080")

	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceInterval)
	assert.Equal(t, "8080", cfg.SimulatorPort)
}

// TestLoadConfig_Overrides confere a leitura das variáveis de ambiente.
func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://estoque.interno:3000")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("DEBOUNCE_MS", "200")
	t.Setenv("HTTP_TIMEOUT_SEC", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, "http://estoque.interno:3000", cfg.APIBaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 200*time.Millisecond, cfg.DebounceInterval)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

// TestLoadConfig_ValorInvalidoUsaPadrao: número malformado cai no padrão.
func TestLoadConfig_ValorInvalidoUsaPadrao(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8080")
	t.Setenv("PAGE_SIZE", "dez")
	t.Setenv("DEBOUNCE_MS", "rápido")

	cfg := LoadConfig()

	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceInterval)
}

// TestLoadSimulatorConfig não exige a URL da API.
func TestLoadSimulatorConfig(t *testing.T) {
	t.Setenv("SIMULATOR_PORT", "9090")

	cfg := LoadSimulatorConfig()

	assert.Equal(t, "9090", cfg.SimulatorPort)
	assert.Empty(t, cfg.APIBaseURL)
}
