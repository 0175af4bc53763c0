package estoqueservice

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// ProdutoRepository define o contrato que este Serviço espera da camada de
// acesso a dados de Produto (a API de estoque, por trás de HTTP).
type ProdutoRepository interface {
	ListarPagina(ctx context.Context, pagina, limite int) ([]domain.Produto, error)
	ListarTodos(ctx context.Context) ([]domain.Produto, error)
	Snapshot(ctx context.Context) ([]domain.Produto, bool)
	Criar(ctx context.Context, novo domain.NovoProduto) (domain.Produto, error)
	Atualizar(ctx context.Context, id string, patch domain.AtualizacaoProduto) (domain.Produto, error)
	Remover(ctx context.Context, id string) error
	InvalidarSnapshot(ctx context.Context)
}

// MovimentacaoRepository define o contrato esperado para Movimentações.
type MovimentacaoRepository interface {
	Listar(ctx context.Context) ([]domain.Movimentacao, error)
	Criar(ctx context.Context, nova domain.NovaMovimentacao) (domain.MovimentacaoCriada, error)
	Atualizar(ctx context.Context, id string, patch domain.AtualizacaoMovimentacao) (domain.MovimentacaoAtualizada, error)
	Remover(ctx context.Context, id string) (domain.MovimentacaoRemovida, error)
}

// Estado é o dado em cache que o painel renderiza. O servidor continua sendo
// a fonte de verdade; este estado só muda copiando representações retornadas
// por ele (com exceção do toggle otimista de prioridade).
type Estado struct {
	Produtos      []domain.Produto
	Movimentacoes []domain.Movimentacao

	// CatalogoCompleto indica que a fase 2 da carga (catálogo inteiro +
	// movimentações) já resolveu. Antes disso, Produtos contém apenas a
	// página rápida (ou o snapshot morno) e os filtros interativos ficam
	// desabilitados.
	CatalogoCompleto bool

	// Erro é o estado terminal da carga inicial: qualquer falha de rede ou
	// resposta não-2xx nas requisições de carga substitui a visão inteira,
	// sem retry.
	Erro error
}

// Service mantém o estado de estoque do painel e orquestra as operações
// contra a API: carga em duas fases, escritas write-then-reconcile e o
// toggle otimista de prioridade.
type Service struct {
	produtos      ProdutoRepository
	movimentacoes MovimentacaoRepository
	logger        logger.Logger
	tamanhoPagina int

	mu     sync.Mutex
	estado Estado

	// geracao identifica a carga corrente. Resultados de uma carga
	// supersedida (geração antiga) são descartados antes de tocar o estado.
	geracao uint64
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(produtos ProdutoRepository, movimentacoes MovimentacaoRepository, log logger.Logger, tamanhoPagina int) *Service {
	if tamanhoPagina <= 0 {
		tamanhoPagina = 10
	}
	return &Service{
		produtos:      produtos,
		movimentacoes: movimentacoes,
		logger:        log,
		tamanhoPagina: tamanhoPagina,
	}
}

// Estado retorna uma cópia do estado corrente, segura para renderização.
func (s *Service) Estado() Estado {
	s.mu.Lock()
	defer s.mu.Unlock()

	copia := s.estado
	copia.Produtos = append([]domain.Produto(nil), s.estado.Produtos...)
	copia.Movimentacoes = append([]domain.Movimentacao(nil), s.estado.Movimentacoes...)
	return copia
}

// TamanhoPagina expõe o tamanho fixo de página configurado.
func (s *Service) TamanhoPagina() int { return s.tamanhoPagina }

// --- Carga em duas fases ---

// CarregarInicial executa a fase rápida da carga (página 1) de forma
// síncrona e dispara a fase completa (catálogo inteiro + movimentações) em
// segundo plano. A página rápida é renderizável assim que a função retorna;
// o conjunto completo a supersede quando resolver, independente da ordem de
// chegada. Falha em qualquer requisição torna o estado de erro terminal.
func (s *Service) CarregarInicial(ctx context.Context) error {
	s.mu.Lock()
	s.geracao++
	g := s.geracao
	s.estado = Estado{}
	s.mu.Unlock()

	// Partida morna: snapshot da execução anterior, melhor esforço.
	if snapshot, ok := s.produtos.Snapshot(ctx); ok && len(snapshot) > 0 {
		s.mu.Lock()
		if s.geracao == g {
			s.estado.Produtos = snapshot
		}
		s.mu.Unlock()
		s.logger.Debug("Snapshot local aplicado como partida morna.", map[string]interface{}{
			"produtos": len(snapshot),
		})
	}

	// Fase 1: página rápida.
	pagina, err := s.produtos.ListarPagina(ctx, 1, s.tamanhoPagina)
	if err != nil {
		s.falharCarga(g, err)
		return err
	}

	s.mu.Lock()
	// A página rápida nunca sobrescreve o catálogo completo, caso uma carga
	// concorrente já o tenha aplicado.
	if s.geracao == g && !s.estado.CatalogoCompleto {
		s.estado.Produtos = pagina
	}
	s.mu.Unlock()

	s.logger.Info("Página inicial de produtos carregada.", map[string]interface{}{
		"produtos": len(pagina),
	})

	// Fase 2: catálogo completo e movimentações, em segundo plano.
	go s.carregarCompleto(ctx, g)

	return nil
}

// carregarCompleto busca o catálogo inteiro e todas as movimentações e, se a
// carga ainda for a corrente, substitui o conjunto de trabalho parcial.
func (s *Service) carregarCompleto(ctx context.Context, g uint64) {
	todos, err := s.produtos.ListarTodos(ctx)
	if err != nil {
		s.falharCarga(g, err)
		return
	}

	movimentacoes, err := s.movimentacoes.Listar(ctx)
	if err != nil {
		s.falharCarga(g, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.geracao != g {
		// Carga supersedida: o requisitante já não existe, não mutar estado.
		s.logger.Debug("Carga completa supersedida; resultado descartado.", map[string]interface{}{
			"geracao": g,
		})
		return
	}

	s.estado.Produtos = todos
	s.estado.Movimentacoes = movimentacoes
	s.estado.CatalogoCompleto = true

	s.logger.Info("Catálogo completo carregado; filtros habilitados.", map[string]interface{}{
		"produtos":      len(todos),
		"movimentacoes": len(movimentacoes),
	})
}

// falharCarga registra o estado terminal de erro, se a carga ainda for a corrente.
func (s *Service) falharCarga(g uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.geracao != g {
		return
	}
	s.estado.Erro = err
	s.logger.Error("Falha na carga inicial; visão substituída por estado de erro.", err)
}

// --- Toggle otimista de prioridade ---

// AlternarPrioridade aplica a negação da flag local imediatamente, envia a
// escrita em seguida e, em falha, reverte o valor anterior. Em sucesso nada
// mais há a fazer: o valor otimista torna-se autoritativo.
func (s *Service) AlternarPrioridade(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexProduto(id)
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFoundError(fmt.Sprintf("Produto %s não está no catálogo local.", id))
	}
	anterior := s.estado.Produtos[idx].Prioritario
	novo := !anterior
	s.estado.Produtos[idx].Prioritario = novo // aplicação otimista
	s.mu.Unlock()

	patch := domain.AtualizacaoProduto{Prioritario: &novo}
	if _, err := s.produtos.Atualizar(ctx, id, patch); err != nil {
		// Rollback: restaura o valor anterior e avisa o chamador, que deve
		// notificar o usuário de que a alteração não foi salva.
		s.mu.Lock()
		if idx := s.indexProduto(id); idx >= 0 {
			s.estado.Produtos[idx].Prioritario = anterior
		}
		s.mu.Unlock()

		s.logger.Warn("Alteração de prioridade não foi salva; valor revertido.", map[string]interface{}{
			"produto_id": id,
			"error":      err.Error(),
		})
		return err
	}

	return nil
}

// --- CRUD de Produto (write-then-reconcile) ---

// CriarProduto valida e envia um novo produto; o estado local só muda após o
// sucesso, usando a representação retornada pelo servidor.
func (s *Service) CriarProduto(ctx context.Context, novo domain.NovoProduto) (domain.Produto, error) {
	if err := validarNovoProduto(novo); err != nil {
		return domain.Produto{}, err
	}

	criado, err := s.produtos.Criar(ctx, novo)
	if err != nil {
		s.logger.Error("Falha ao criar produto; estado local inalterado.", err)
		return domain.Produto{}, err
	}

	s.mu.Lock()
	s.estado.Produtos = append(s.estado.Produtos, criado)
	s.mu.Unlock()

	s.logger.Info("Produto criado.", map[string]interface{}{
		"produto_id": criado.ID,
		"sku":        criado.SKU,
	})
	return criado, nil
}

// AtualizarProduto envia uma edição parcial e substitui a entrada local pela
// representação do servidor em caso de sucesso.
func (s *Service) AtualizarProduto(ctx context.Context, id string, patch domain.AtualizacaoProduto) (domain.Produto, error) {
	if err := validarAtualizacaoProduto(patch); err != nil {
		return domain.Produto{}, err
	}

	atualizado, err := s.produtos.Atualizar(ctx, id, patch)
	if err != nil {
		s.logger.Error("Falha ao atualizar produto; estado local inalterado.", err)
		return domain.Produto{}, err
	}

	s.mu.Lock()
	s.substituirProduto(atualizado)
	s.mu.Unlock()

	return atualizado, nil
}

// RemoverProduto exclui o produto no servidor e, em sucesso, remove a entrada
// local e as movimentações associadas (o servidor faz o cascade do lado dele).
func (s *Service) RemoverProduto(ctx context.Context, id string) error {
	if err := s.produtos.Remover(ctx, id); err != nil {
		s.logger.Error("Falha ao remover produto; estado local inalterado.", err)
		return err
	}

	s.mu.Lock()
	if idx := s.indexProduto(id); idx >= 0 {
		s.estado.Produtos = append(s.estado.Produtos[:idx], s.estado.Produtos[idx+1:]...)
	}
	restantes := s.estado.Movimentacoes[:0]
	for _, m := range s.estado.Movimentacoes {
		if m.ProdutoID != id {
			restantes = append(restantes, m)
		}
	}
	s.estado.Movimentacoes = restantes
	s.mu.Unlock()

	s.logger.Info("Produto removido.", map[string]interface{}{"produto_id": id})
	return nil
}

// --- Movimentações (write-then-reconcile) ---

// RegistrarMovimentacao valida e envia uma movimentação. Em sucesso, a
// movimentação entra no histórico local e o Produto em cache é substituído
// exatamente pelo objeto retornado — a quantidade nunca é recalculada aqui.
func (s *Service) RegistrarMovimentacao(ctx context.Context, nova domain.NovaMovimentacao) (domain.MovimentacaoCriada, error) {
	if err := validarNovaMovimentacao(nova); err != nil {
		return domain.MovimentacaoCriada{}, err
	}

	s.mu.Lock()
	existe := s.indexProduto(nova.ProdutoID) >= 0
	s.mu.Unlock()
	if !existe {
		return domain.MovimentacaoCriada{}, apperror.NewNotFoundError(
			fmt.Sprintf("Produto %s não está no catálogo local.", nova.ProdutoID))
	}

	criada, err := s.movimentacoes.Criar(ctx, nova)
	if err != nil {
		s.logger.Error("Falha ao registrar movimentação; estado local inalterado.", err)
		return domain.MovimentacaoCriada{}, err
	}

	s.mu.Lock()
	s.estado.Movimentacoes = append(s.estado.Movimentacoes, criada.Movimentacao)
	s.substituirProduto(criada.Produto)
	s.mu.Unlock()

	// O saldo mudou no servidor: o snapshot local ficou defasado.
	s.produtos.InvalidarSnapshot(ctx)

	s.logger.Info("Movimentação registrada.", map[string]interface{}{
		"movimentacao_id": criada.Movimentacao.ID,
		"produto_id":      criada.Produto.ID,
		"tipo":            string(criada.Movimentacao.Tipo),
		"novo_saldo":      criada.Produto.Quantidade,
	})
	return criada, nil
}

// AtualizarMovimentacao edita quantidade/motivo de uma movimentação e
// reconcilia movimentação e Produto com as representações do servidor.
func (s *Service) AtualizarMovimentacao(ctx context.Context, id string, patch domain.AtualizacaoMovimentacao) (domain.MovimentacaoAtualizada, error) {
	s.mu.Lock()
	idx := s.indexMovimentacao(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.MovimentacaoAtualizada{}, apperror.NewNotFoundError(
			fmt.Sprintf("Movimentação %s não está no histórico local.", id))
	}
	tipo := s.estado.Movimentacoes[idx].Tipo
	s.mu.Unlock()

	if patch.Quantidade != nil {
		if err := validarQuantidade(tipo, *patch.Quantidade); err != nil {
			return domain.MovimentacaoAtualizada{}, err
		}
	}

	atualizada, err := s.movimentacoes.Atualizar(ctx, id, patch)
	if err != nil {
		s.logger.Error("Falha ao atualizar movimentação; estado local inalterado.", err)
		return domain.MovimentacaoAtualizada{}, err
	}

	s.mu.Lock()
	if idx := s.indexMovimentacao(id); idx >= 0 {
		s.estado.Movimentacoes[idx] = atualizada.Movimentacao
	}
	s.substituirProduto(atualizada.Produto)
	s.mu.Unlock()

	s.produtos.InvalidarSnapshot(ctx)
	return atualizada, nil
}

// RemoverMovimentacao exclui uma movimentação; o servidor reverte o efeito
// sobre o saldo. Movimentações de ajuste são rejeitadas aqui, antes de
// qualquer requisição — política da interface, não do modelo de dados.
func (s *Service) RemoverMovimentacao(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexMovimentacao(id)
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFoundError(fmt.Sprintf("Movimentação %s não está no histórico local.", id))
	}
	tipo := s.estado.Movimentacoes[idx].Tipo
	s.mu.Unlock()

	if tipo == domain.TipoAjuste {
		return apperror.NewValidationError("Movimentações de ajuste não podem ser removidas.")
	}

	removida, err := s.movimentacoes.Remover(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao remover movimentação; estado local inalterado.", err)
		return err
	}

	s.mu.Lock()
	if idx := s.indexMovimentacao(id); idx >= 0 {
		s.estado.Movimentacoes = append(s.estado.Movimentacoes[:idx], s.estado.Movimentacoes[idx+1:]...)
	}
	s.substituirProduto(removida.Produto)
	s.mu.Unlock()

	s.produtos.InvalidarSnapshot(ctx)
	return nil
}

// --- Auxiliares de estado (chamar com s.mu adquirido) ---

func (s *Service) indexProduto(id string) int {
	for i, p := range s.estado.Produtos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexMovimentacao(id string) int {
	for i, m := range s.estado.Movimentacoes {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// substituirProduto troca a entrada em cache pelo objeto do servidor.
// Produto ainda desconhecido localmente é anexado ao final.
func (s *Service) substituirProduto(p domain.Produto) {
	if idx := s.indexProduto(p.ID); idx >= 0 {
		s.estado.Produtos[idx] = p
		return
	}
	s.estado.Produtos = append(s.estado.Produtos, p)
}

// --- Validações de formulário ---

func validarNovoProduto(novo domain.NovoProduto) error {
	if strings.TrimSpace(novo.Nome) == "" {
		return apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if novo.Quantidade < 0 {
		return apperror.NewValidationError("A quantidade inicial não pode ser negativa.")
	}
	if novo.EstoqueMinimo != nil && *novo.EstoqueMinimo < 0 {
		return apperror.NewValidationError("O estoque mínimo não pode ser negativo.")
	}
	if novo.ValorUnitario != nil && novo.ValorUnitario.IsNegative() {
		return apperror.NewValidationError("O valor unitário não pode ser negativo.")
	}
	return nil
}

func validarAtualizacaoProduto(patch domain.AtualizacaoProduto) error {
	if patch.Nome != nil && strings.TrimSpace(*patch.Nome) == "" {
		return apperror.NewValidationError("O nome do produto não pode ser vazio.")
	}
	if patch.Quantidade != nil && *patch.Quantidade < 0 {
		return apperror.NewValidationError("A quantidade não pode ser negativa.")
	}
	if patch.EstoqueMinimo != nil && *patch.EstoqueMinimo < 0 {
		return apperror.NewValidationError("O estoque mínimo não pode ser negativo.")
	}
	if patch.ValorUnitario != nil && patch.ValorUnitario.IsNegative() {
		return apperror.NewValidationError("O valor unitário não pode ser negativo.")
	}
	return nil
}

func validarNovaMovimentacao(nova domain.NovaMovimentacao) error {
	if nova.ProdutoID == "" {
		return apperror.NewValidationError("A movimentação precisa referenciar um produto.")
	}
	if !nova.Tipo.Valido() {
		return apperror.NewValidationError(fmt.Sprintf("Tipo de movimentação desconhecido: %q.", nova.Tipo))
	}
	return validarQuantidade(nova.Tipo, nova.Quantidade)
}

// validarQuantidade aplica a semântica por tipo: delta positivo para
// entrada/saída, valor absoluto não-negativo para ajuste.
func validarQuantidade(tipo domain.TipoMovimentacao, quantidade int) error {
	switch tipo {
	case domain.TipoEntrada, domain.TipoSaida:
		if quantidade <= 0 {
			return apperror.NewValidationError("A quantidade de entrada/saída deve ser positiva.")
		}
	case domain.TipoAjuste:
		if quantidade < 0 {
			return apperror.NewValidationError("O ajuste define um saldo absoluto e não pode ser negativo.")
		}
	}
	return nil
}
