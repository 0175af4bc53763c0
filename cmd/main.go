package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Nossos pacotes de infraestrutura e utilitários
	"goestoque/config"
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/httpclient"
	"goestoque/internal/pkg/logger"

	// Camadas do painel para Injeção de Dependências
	"goestoque/internal/painel"
	"goestoque/internal/repository/movimentacaorepo"
	"goestoque/internal/repository/produtorepo"
	"goestoque/internal/service/estoqueservice"
	"goestoque/internal/service/relatorioservice"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "goestoque",
		Short:        "Painel de controle de estoque sobre a API /api/produtos e /api/movimentacoes",
		SilenceUsage: true,
	}

	painelCmd := &cobra.Command{
		Use:   "painel",
		Short: "Abre o painel interativo (visões de estoque e movimentações)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPainel()
		},
	}

	relatorioCmd := &cobra.Command{
		Use:   "relatorio <arquivo.pdf>",
		Short: "Gera o PDF de reposição (produtos abaixo do estoque mínimo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelatorio(args[0])
		},
	}

	listarCmd := &cobra.Command{
		Use:   "listar",
		Short: "Imprime a listagem de estoque e encerra (modo não interativo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListar()
		},
	}

	rootCmd.AddCommand(painelCmd, listarCmd, relatorioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// montar constrói a cadeia de dependências do painel:
// infra (config, logger, cache, cliente HTTP) -> repositórios -> serviços.
func montar() (*estoqueservice.Service, *relatorioservice.Service, *config.Config, logger.Logger) {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	logg := logger.NewLogger(cfg.LogLevel)
	logg.Info("Configurações carregadas.", nil)

	// Cache de snapshot (Redis) — opcional: sem ele o painel funciona,
	// apenas sem a partida morna entre execuções.
	var cacheClient cache.Client
	if client, err := cache.NewRedisClient(cfg.RedisAddr); err != nil {
		logg.Warn("Redis indisponível; painel seguirá sem snapshot local.", map[string]interface{}{
			"addr":  cfg.RedisAddr,
			"error": err.Error(),
		})
	} else {
		cacheClient = client
		logg.Info("Conexão Redis estabelecida.", nil)
	}

	// Cliente da API de estoque
	api := httpclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, logg)

	// INJEÇÃO DE DEPENDÊNCIAS: Repository -> Service
	produtoRepo := produtorepo.NewProdutoRepository(api, cacheClient, cfg.CacheTTL, logg)
	movRepo := movimentacaorepo.NewMovimentacaoRepository(api, logg)

	estoqueSvc := estoqueservice.NewService(produtoRepo, movRepo, logg, cfg.PageSize)
	relatorioSvc := relatorioservice.NewService(logg)

	return estoqueSvc, relatorioSvc, cfg, logg
}

func runPainel() error {
	estoqueSvc, relatorioSvc, cfg, logg := montar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := painel.New(estoqueSvc, relatorioSvc, logg, cfg.DebounceInterval, os.Stdout)

	// Carga em duas fases: a página rápida já renderiza; o catálogo completo
	// chega em segundo plano e habilita os filtros.
	if err := estoqueSvc.CarregarInicial(ctx); err != nil {
		p.Render() // estado de erro terminal
		return err
	}

	return p.Executar(ctx, os.Stdin)
}

func runListar() error {
	estoqueSvc, relatorioSvc, cfg, logg := montar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := estoqueSvc.CarregarInicial(ctx); err != nil {
		return err
	}
	if err := aguardarCatalogo(ctx, estoqueSvc, 2*cfg.HTTPTimeout); err != nil {
		return err
	}

	p := painel.New(estoqueSvc, relatorioSvc, logg, cfg.DebounceInterval, os.Stdout)
	p.Render()
	return nil
}

func runRelatorio(arquivo string) error {
	estoqueSvc, relatorioSvc, cfg, logg := montar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := estoqueSvc.CarregarInicial(ctx); err != nil {
		return err
	}
	if err := aguardarCatalogo(ctx, estoqueSvc, 2*cfg.HTTPTimeout); err != nil {
		return err
	}

	f, err := os.Create(arquivo)
	if err != nil {
		return fmt.Errorf("não foi possível criar %s: %w", arquivo, err)
	}
	defer f.Close()

	itens := relatorioSvc.ItensParaReposicao(estoqueSvc.Estado().Produtos)
	if err := relatorioSvc.GerarPDF(itens, f); err != nil {
		os.Remove(arquivo)
		return err
	}

	logg.Info("Relatório de reposição gravado.", map[string]interface{}{"arquivo": arquivo})
	return nil
}

// aguardarCatalogo espera a fase completa da carga resolver (ou falhar).
func aguardarCatalogo(ctx context.Context, svc *estoqueservice.Service, limite time.Duration) error {
	deadline := time.Now().Add(limite)
	for {
		estado := svc.Estado()
		if estado.Erro != nil {
			return estado.Erro
		}
		if estado.CatalogoCompleto {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("tempo esgotado aguardando a carga completa do catálogo")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}
