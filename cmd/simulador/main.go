package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"goestoque/config"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/simulador"
)

// O simulador sobe o contrato da API de estoque em memória, para
// desenvolvimento do painel e testes de integração sem o backend real.
func main() {
	log.Println("⚡ Inicializando simulador da API de estoque...")

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadSimulatorConfig()
	logg := logger.NewLogger(cfg.LogLevel)
	logg.Info("Configurações carregadas.", nil)

	// Injeção de Dependências: Store -> Handler -> Router
	store := simulador.NewStore()
	handler := simulador.NewHandler(store, logg)
	router := simulador.NewRouter(handler, logg)

	server := &http.Server{
		Addr:         ":" + cfg.SimulatorPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Execução e Graceful Shutdown
	go func() {
		logg.Info("Simulador ouvindo na porta", map[string]interface{}{"port": cfg.SimulatorPort})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logg.Info("Sinal de encerramento recebido. Desligando simulador...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("Desligamento do servidor forçado.", err)
	}

	logg.Info("Simulador encerrado com sucesso.", nil)
}
