package movimentacaorepo

import (
	"context"
	"fmt"

	"goestoque/internal/domain"
	"goestoque/internal/pkg/httpclient"
	"goestoque/internal/pkg/logger"
)

// MovimentacaoRepository acessa a API de estoque para operações de
// Movimentação. Toda mutação retorna também o Produto recalculado pelo
// servidor — o chamador deve usá-lo no lugar do produto em cache.
type MovimentacaoRepository struct {
	API    *httpclient.Client
	Logger logger.Logger
}

// NewMovimentacaoRepository cria e retorna uma nova instância do Repositório.
func NewMovimentacaoRepository(api *httpclient.Client, log logger.Logger) *MovimentacaoRepository {
	return &MovimentacaoRepository{API: api, Logger: log}
}

// Listar busca todas as movimentações (GET /api/movimentacoes).
func (r *MovimentacaoRepository) Listar(ctx context.Context) ([]domain.Movimentacao, error) {
	var movimentacoes []domain.Movimentacao
	if err := r.API.Get(ctx, "/api/movimentacoes", nil, &movimentacoes); err != nil {
		return nil, fmt.Errorf("falha ao listar movimentações: %w", err)
	}
	return movimentacoes, nil
}

// Criar registra uma movimentação (POST /api/movimentacoes) e retorna a
// movimentação criada junto do Produto com saldo já aplicado.
func (r *MovimentacaoRepository) Criar(ctx context.Context, nova domain.NovaMovimentacao) (domain.MovimentacaoCriada, error) {
	var criada domain.MovimentacaoCriada
	if err := r.API.Post(ctx, "/api/movimentacoes", nova, &criada); err != nil {
		return domain.MovimentacaoCriada{}, fmt.Errorf("falha ao registrar movimentação: %w", err)
	}
	return criada, nil
}

// Atualizar edita uma movimentação (PATCH /api/movimentacoes/{id}).
func (r *MovimentacaoRepository) Atualizar(ctx context.Context, id string, patch domain.AtualizacaoMovimentacao) (domain.MovimentacaoAtualizada, error) {
	var atualizada domain.MovimentacaoAtualizada
	if err := r.API.Patch(ctx, "/api/movimentacoes/"+id, patch, &atualizada); err != nil {
		return domain.MovimentacaoAtualizada{}, fmt.Errorf("falha ao atualizar movimentação %s: %w", id, err)
	}
	return atualizada, nil
}

// Remover exclui uma movimentação (DELETE /api/movimentacoes/{id}); o
// servidor reverte o efeito sobre o saldo e retorna o Produto resultante.
func (r *MovimentacaoRepository) Remover(ctx context.Context, id string) (domain.MovimentacaoRemovida, error) {
	var removida domain.MovimentacaoRemovida
	if err := r.API.Delete(ctx, "/api/movimentacoes/"+id, &removida); err != nil {
		return domain.MovimentacaoRemovida{}, fmt.Errorf("falha ao remover movimentação %s: %w", id, err)
	}
	return removida, nil
}
