package simulador

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
)

// Store é o armazenamento em memória do simulador. Ele faz o papel do
// backend real durante desenvolvimento e testes: atribui ID, SKU e
// timestamps, aplica movimentações sobre o saldo e garante as regras que o
// painel assume do servidor (saldo nunca negativo, cascade de remoção).
type Store struct {
	mu sync.RWMutex

	produtos      map[string]domain.Produto
	ordemProdutos []string

	movimentacoes map[string]domain.Movimentacao
	ordemMovs     []string

	// saldoAnterior guarda o saldo do produto antes de cada ajuste, para
	// que a remoção/edição de um ajuste possa restaurá-lo.
	saldoAnterior map[string]int

	proximoSKU int
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{
		produtos:      make(map[string]domain.Produto),
		movimentacoes: make(map[string]domain.Movimentacao),
		saldoAnterior: make(map[string]int),
		proximoSKU:    1,
	}
}

// --- Produtos ---

// ListarProdutos retorna a página solicitada na ordem de inserção.
func (s *Store) ListarProdutos(pagina, limite int) []domain.Produto {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if pagina < 1 {
		pagina = 1
	}
	if limite < 1 {
		limite = 10
	}

	inicio := (pagina - 1) * limite
	if inicio >= len(s.ordemProdutos) {
		return []domain.Produto{}
	}
	fim := inicio + limite
	if fim > len(s.ordemProdutos) {
		fim = len(s.ordemProdutos)
	}

	resultado := make([]domain.Produto, 0, fim-inicio)
	for _, id := range s.ordemProdutos[inicio:fim] {
		resultado = append(resultado, s.produtos[id])
	}
	return resultado
}

// CriarProduto persiste um novo produto, atribuindo ID, SKU e timestamps.
func (s *Store) CriarProduto(novo domain.NovoProduto) domain.Produto {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p := domain.Produto{
		ID:            uuid.NewString(),
		SKU:           fmt.Sprintf("SKU-%04d", s.proximoSKU),
		Nome:          novo.Nome,
		Descricao:     novo.Descricao,
		Categoria:     novo.Categoria,
		Unidade:       novo.Unidade,
		Quantidade:    novo.Quantidade,
		EstoqueMinimo: novo.EstoqueMinimo,
		Localizacao:   novo.Localizacao,
		Fornecedor:    novo.Fornecedor,
		ValorUnitario: novo.ValorUnitario,
		Prioritario:   novo.Prioritario,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.proximoSKU++

	s.produtos[p.ID] = p
	s.ordemProdutos = append(s.ordemProdutos, p.ID)
	return p
}

// AtualizarProduto aplica uma edição parcial. SKU e timestamps de criação
// nunca mudam, mesmo que o payload tente.
func (s *Store) AtualizarProduto(id string, patch domain.AtualizacaoProduto) (domain.Produto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.produtos[id]
	if !ok {
		return domain.Produto{}, apperror.NewNotFoundError(fmt.Sprintf("Produto %s não existe.", id))
	}

	if patch.Nome != nil {
		p.Nome = *patch.Nome
	}
	if patch.Descricao != nil {
		p.Descricao = *patch.Descricao
	}
	if patch.Categoria != nil {
		p.Categoria = *patch.Categoria
	}
	if patch.Unidade != nil {
		p.Unidade = *patch.Unidade
	}
	if patch.Quantidade != nil {
		if *patch.Quantidade < 0 {
			return domain.Produto{}, apperror.NewValidationError("A quantidade não pode ser negativa.")
		}
		p.Quantidade = *patch.Quantidade
	}
	if patch.EstoqueMinimo != nil {
		p.EstoqueMinimo = patch.EstoqueMinimo
	}
	if patch.Localizacao != nil {
		p.Localizacao = *patch.Localizacao
	}
	if patch.Fornecedor != nil {
		p.Fornecedor = *patch.Fornecedor
	}
	if patch.ValorUnitario != nil {
		p.ValorUnitario = patch.ValorUnitario
	}
	if patch.Prioritario != nil {
		p.Prioritario = *patch.Prioritario
	}
	p.UpdatedAt = time.Now().UTC()

	s.produtos[id] = p
	return p, nil
}

// RemoverProduto exclui o produto e, em cascade, suas movimentações.
func (s *Store) RemoverProduto(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.produtos[id]; !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto %s não existe.", id))
	}

	delete(s.produtos, id)
	s.ordemProdutos = remover(s.ordemProdutos, id)

	var restantes []string
	for _, movID := range s.ordemMovs {
		if s.movimentacoes[movID].ProdutoID == id {
			delete(s.movimentacoes, movID)
			delete(s.saldoAnterior, movID)
			continue
		}
		restantes = append(restantes, movID)
	}
	s.ordemMovs = restantes
	return nil
}

// --- Movimentações ---

// ListarMovimentacoes retorna todas as movimentações na ordem de criação.
func (s *Store) ListarMovimentacoes() []domain.Movimentacao {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resultado := make([]domain.Movimentacao, 0, len(s.ordemMovs))
	for _, id := range s.ordemMovs {
		resultado = append(resultado, s.movimentacoes[id])
	}
	return resultado
}

// CriarMovimentacao aplica o efeito sobre o saldo e registra a movimentação.
// Entrada/saída são deltas positivos; ajuste é o novo saldo absoluto.
func (s *Store) CriarMovimentacao(nova domain.NovaMovimentacao) (domain.Movimentacao, domain.Produto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.produtos[nova.ProdutoID]
	if !ok {
		return domain.Movimentacao{}, domain.Produto{},
			apperror.NewNotFoundError(fmt.Sprintf("Produto %s não existe.", nova.ProdutoID))
	}

	anterior := p.Quantidade
	novoSaldo, err := aplicar(p.Quantidade, nova.Tipo, nova.Quantidade)
	if err != nil {
		return domain.Movimentacao{}, domain.Produto{}, err
	}

	m := domain.Movimentacao{
		ID:         uuid.NewString(),
		ProdutoID:  nova.ProdutoID,
		Tipo:       nova.Tipo,
		Quantidade: nova.Quantidade,
		Motivo:     nova.Motivo,
		CreatedAt:  time.Now().UTC(),
	}

	p.Quantidade = novoSaldo
	p.UpdatedAt = time.Now().UTC()

	s.produtos[p.ID] = p
	s.movimentacoes[m.ID] = m
	s.ordemMovs = append(s.ordemMovs, m.ID)
	s.saldoAnterior[m.ID] = anterior

	return m, p, nil
}

// AtualizarMovimentacao reverte o efeito original e aplica a nova
// quantidade com o mesmo tipo, mantendo o saldo coerente.
func (s *Store) AtualizarMovimentacao(id string, patch domain.AtualizacaoMovimentacao) (domain.Movimentacao, domain.Produto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movimentacoes[id]
	if !ok {
		return domain.Movimentacao{}, domain.Produto{},
			apperror.NewNotFoundError(fmt.Sprintf("Movimentação %s não existe.", id))
	}
	p := s.produtos[m.ProdutoID]

	if patch.Quantidade != nil && *patch.Quantidade != m.Quantidade {
		revertido, err := reverter(p.Quantidade, m.Tipo, m.Quantidade, s.saldoAnterior[id])
		if err != nil {
			return domain.Movimentacao{}, domain.Produto{}, err
		}
		novoSaldo, err := aplicar(revertido, m.Tipo, *patch.Quantidade)
		if err != nil {
			return domain.Movimentacao{}, domain.Produto{}, err
		}
		s.saldoAnterior[id] = revertido
		p.Quantidade = novoSaldo
		m.Quantidade = *patch.Quantidade
	}
	if patch.Motivo != nil {
		m.Motivo = *patch.Motivo
	}

	p.UpdatedAt = time.Now().UTC()
	s.produtos[p.ID] = p
	s.movimentacoes[id] = m
	return m, p, nil
}

// RemoverMovimentacao exclui a movimentação revertendo seu efeito sobre o
// saldo do produto.
func (s *Store) RemoverMovimentacao(id string) (domain.Produto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movimentacoes[id]
	if !ok {
		return domain.Produto{}, apperror.NewNotFoundError(fmt.Sprintf("Movimentação %s não existe.", id))
	}
	p := s.produtos[m.ProdutoID]

	revertido, err := reverter(p.Quantidade, m.Tipo, m.Quantidade, s.saldoAnterior[id])
	if err != nil {
		return domain.Produto{}, err
	}

	p.Quantidade = revertido
	p.UpdatedAt = time.Now().UTC()
	s.produtos[p.ID] = p

	delete(s.movimentacoes, id)
	delete(s.saldoAnterior, id)
	s.ordemMovs = remover(s.ordemMovs, id)

	return p, nil
}

// --- Auxiliares de saldo ---

// aplicar calcula o novo saldo do produto sob o efeito da movimentação.
func aplicar(saldo int, tipo domain.TipoMovimentacao, quantidade int) (int, error) {
	switch tipo {
	case domain.TipoEntrada:
		if quantidade <= 0 {
			return 0, apperror.NewValidationError("A quantidade de entrada deve ser positiva.")
		}
		return saldo + quantidade, nil
	case domain.TipoSaida:
		if quantidade <= 0 {
			return 0, apperror.NewValidationError("A quantidade de saída deve ser positiva.")
		}
		if saldo < quantidade {
			return 0, apperror.NewConflictError(
				fmt.Sprintf("Saldo insuficiente: disponível %d, solicitado %d.", saldo, quantidade))
		}
		return saldo - quantidade, nil
	case domain.TipoAjuste:
		if quantidade < 0 {
			return 0, apperror.NewValidationError("O ajuste define um saldo absoluto e não pode ser negativo.")
		}
		return quantidade, nil
	default:
		return 0, apperror.NewValidationError(fmt.Sprintf("Tipo de movimentação desconhecido: %q.", tipo))
	}
}

// reverter desfaz o efeito de uma movimentação: delta inverso para
// entrada/saída, restauração do saldo anterior para ajuste.
func reverter(saldo int, tipo domain.TipoMovimentacao, quantidade, anterior int) (int, error) {
	switch tipo {
	case domain.TipoEntrada:
		if saldo < quantidade {
			return 0, apperror.NewConflictError(
				fmt.Sprintf("Reverter a entrada deixaria o saldo negativo (disponível %d).", saldo))
		}
		return saldo - quantidade, nil
	case domain.TipoSaida:
		return saldo + quantidade, nil
	default: // ajuste
		return anterior, nil
	}
}

func remover(ids []string, alvo string) []string {
	for i, id := range ids {
		if id == alvo {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
