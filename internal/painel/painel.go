package painel

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"goestoque/internal/domain"
	"goestoque/internal/pkg/debounce"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/service/estoqueservice"
	"goestoque/internal/service/relatorioservice"
)

// Visao identifica qual tela o painel está exibindo.
type Visao string

const (
	// VisaoEstoque é a listagem de produtos com filtros e paginação.
	VisaoEstoque Visao = "estoque"
	// VisaoMovimentacoes é o histórico de movimentações.
	VisaoMovimentacoes Visao = "movimentacoes"
)

// Painel é o shell de visão: mantém qual tela está ativa, o filtro corrente
// e a página, e delega toda a lógica de dados ao serviço de estoque.
type Painel struct {
	svc       *estoqueservice.Service
	relatorio *relatorioservice.Service
	logger    logger.Logger
	busca     *debounce.Debouncer

	mu          sync.Mutex
	visao       Visao
	filtro      estoqueservice.Filtro
	pagina      int
	ultimoTotal int
	saida       io.Writer
}

// New cria o Painel. A busca digitada passa pelo debouncer: só vira filtro
// após o intervalo de quiescência configurado.
func New(svc *estoqueservice.Service, relatorio *relatorioservice.Service, log logger.Logger, debounceInterval time.Duration, saida io.Writer) *Painel {
	p := &Painel{
		svc:       svc,
		relatorio: relatorio,
		logger:    log,
		visao:     VisaoEstoque,
		pagina:    1,
		saida:     saida,
	}
	p.busca = debounce.New(debounceInterval, p.aplicarBusca)
	return p
}

// DefinirBusca alimenta o debouncer com o termo digitado. Teclas em rápida
// sucessão não recomputam o filtro; apenas o valor final após a quiescência.
func (p *Painel) DefinirBusca(termo string) {
	p.busca.Input(termo)
}

// aplicarBusca é o callback do debouncer: grava o termo no filtro e reseta a
// paginação, como toda rederivação do filtro deve fazer.
func (p *Painel) aplicarBusca(termo string) {
	p.mu.Lock()
	p.filtro.Busca = termo
	p.pagina = 1
	p.mu.Unlock()

	p.Render()
}

// DefinirCategoria ajusta o filtro de categoria (vazio limpa o filtro).
// Desabilitado enquanto o catálogo completo não carregou.
func (p *Painel) DefinirCategoria(categoria string) {
	if !p.filtrosHabilitados() {
		return
	}
	p.mu.Lock()
	p.filtro.Categoria = categoria
	p.pagina = 1
	p.mu.Unlock()
}

// AlternarAbaixoMinimo liga/desliga o filtro de produtos abaixo do mínimo.
func (p *Painel) AlternarAbaixoMinimo() {
	if !p.filtrosHabilitados() {
		return
	}
	p.mu.Lock()
	p.filtro.AbaixoMinimo = !p.filtro.AbaixoMinimo
	p.pagina = 1
	p.mu.Unlock()
}

// AlternarPrioritarios liga/desliga o filtro de produtos prioritários.
func (p *Painel) AlternarPrioritarios() {
	if !p.filtrosHabilitados() {
		return
	}
	p.mu.Lock()
	p.filtro.Prioritarios = !p.filtro.Prioritarios
	p.pagina = 1
	p.mu.Unlock()
}

// Filtro retorna o filtro corrente.
func (p *Painel) Filtro() estoqueservice.Filtro {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filtro
}

// filtrosHabilitados impede filtros interativos sobre o conjunto parcial.
func (p *Painel) filtrosHabilitados() bool {
	if p.svc.Estado().CatalogoCompleto {
		return true
	}
	fmt.Fprintln(p.saida, "Aguarde: filtros ficam disponíveis após a carga completa do catálogo.")
	return false
}

// DefinirVisao troca a tela ativa.
func (p *Painel) DefinirVisao(v Visao) {
	p.mu.Lock()
	p.visao = v
	p.mu.Unlock()
}

// Visao retorna a tela ativa.
func (p *Painel) Visao() Visao {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visao
}

// IrParaPagina navega para a página n. Fora de [1, totalPaginas] ou igual à
// página corrente, é um no-op.
func (p *Painel) IrParaPagina(n int) {
	_, _, total := p.ProdutosVisiveis()

	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 || n > total || n == p.pagina {
		return
	}
	p.pagina = n
}

// ProximaPagina e PaginaAnterior navegam relativo à página corrente.
func (p *Painel) ProximaPagina() { p.IrParaPagina(p.paginaCorrente() + 1) }

// PaginaAnterior volta uma página, se houver.
func (p *Painel) PaginaAnterior() { p.IrParaPagina(p.paginaCorrente() - 1) }

func (p *Painel) paginaCorrente() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pagina
}

// ProdutosVisiveis deriva a página corrente da lista filtrada. Quando o
// total filtrado muda (filtro novo, dado novo), a página volta para 1.
func (p *Painel) ProdutosVisiveis() ([]domain.Produto, int, int) {
	estado := p.svc.Estado()

	p.mu.Lock()
	defer p.mu.Unlock()

	filtrados := estoqueservice.FiltrarProdutos(estado.Produtos, p.filtro)
	if len(filtrados) != p.ultimoTotal {
		p.pagina = 1
		p.ultimoTotal = len(filtrados)
	}

	totalPaginas := estoqueservice.TotalPaginas(len(filtrados), p.svc.TamanhoPagina())
	itens := estoqueservice.Pagina(filtrados, p.pagina, p.svc.TamanhoPagina())
	return itens, p.pagina, totalPaginas
}

// AlternarPrioridade delega o toggle otimista ao serviço e, em falha,
// notifica o usuário de que a alteração não foi salva (o serviço já reverteu
// o valor local).
func (p *Painel) AlternarPrioridade(ctx context.Context, id string) {
	if err := p.svc.AlternarPrioridade(ctx, id); err != nil {
		fmt.Fprintln(p.saida, "A alteração de prioridade não pôde ser salva e foi desfeita.")
	}
}

// GerarRelatorio produz o PDF de reposição a partir do catálogo em cache.
func (p *Painel) GerarRelatorio(w io.Writer) error {
	estado := p.svc.Estado()
	itens := p.relatorio.ItensParaReposicao(estado.Produtos)
	return p.relatorio.GerarPDF(itens, w)
}
