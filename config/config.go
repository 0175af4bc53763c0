package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do painel goestoque e do simulador.
// Os campos são definidos com base nos requisitos do projeto (API remota,
// cache local, comportamento do painel).
type Config struct {
	// Geral
	Environment string
	LogLevel    string

	// API de estoque (colaborador HTTP externo)
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Cache local de snapshot (Redis)
	RedisAddr string
	CacheTTL  time.Duration

	// Comportamento do painel
	PageSize         int           // Tamanho fixo de página da listagem
	DebounceInterval time.Duration // Quiescência da busca antes de filtrar

	// Simulador (apenas para o binário cmd/simulador)
	SimulatorPort string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. API de estoque
		// mustGetEnv garante que o painel não inicie sem saber onde está a API.
		APIBaseURL:  mustGetEnv("API_BASE_URL"),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT_SEC", 10) * time.Second,

		// 3. Cache local (Redis)
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  getDurationEnv("CACHE_TTL_MIN", 10) * time.Minute,

		// 4. Painel
		PageSize:         getIntEnv("PAGE_SIZE", 10),
		DebounceInterval: getDurationEnv("DEBOUNCE_MS", 500) * time.Millisecond,

		// 5. Simulador
		SimulatorPort: getEnv("SIMULATOR_PORT", "8080"),
	}

	return cfg
}

// LoadSimulatorConfig carrega apenas o necessário para o simulador,
// que não depende da API remota nem do Redis.
func LoadSimulatorConfig() *Config {
	return &Config{
		Environment:   getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SimulatorPort: getEnv("SIMULATOR_PORT", "8080"),
	}
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
