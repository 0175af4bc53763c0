package produtorepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"goestoque/internal/domain"
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/httpclient"
	"goestoque/internal/pkg/logger"
)

// Limite usado para buscar o catálogo inteiro de uma vez (fase 2 da carga).
// O contrato da API é estilo json-server: paginação via _page/_limit.
const limiteCatalogoCompleto = 10000

// Chave do snapshot do catálogo no cache local.
const snapshotCacheKey = "goestoque:catalogo"

// ProdutoRepository acessa a API de estoque para operações de Produto.
// Cumpre aqui o mesmo papel que um repositório de banco de dados cumpriria:
// a camada de serviço não sabe que a persistência mora do outro lado de HTTP.
type ProdutoRepository struct {
	API      *httpclient.Client
	Cache    cache.Client // Snapshot do catálogo entre execuções (pode ser nil)
	CacheTTL time.Duration
	Logger   logger.Logger
}

// NewProdutoRepository cria e retorna uma nova instância do Repositório.
// cacheClient pode ser nil quando o Redis não está disponível; o repositório
// segue funcionando sem partida morna.
func NewProdutoRepository(api *httpclient.Client, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *ProdutoRepository {
	return &ProdutoRepository{
		API:      api,
		Cache:    cacheClient,
		CacheTTL: cacheTTL,
		Logger:   log,
	}
}

// ListarPagina busca uma página de produtos (GET /api/produtos?_page=N&_limit=M).
// Usada pela fase rápida da carga inicial.
func (r *ProdutoRepository) ListarPagina(ctx context.Context, pagina, limite int) ([]domain.Produto, error) {
	query := url.Values{}
	query.Set("_page", strconv.Itoa(pagina))
	query.Set("_limit", strconv.Itoa(limite))

	var produtos []domain.Produto
	if err := r.API.Get(ctx, "/api/produtos", query, &produtos); err != nil {
		return nil, fmt.Errorf("falha ao listar página %d de produtos: %w", pagina, err)
	}
	return produtos, nil
}

// ListarTodos busca o catálogo completo e, em sucesso, grava o snapshot no
// cache local. Usada pela fase completa da carga inicial.
func (r *ProdutoRepository) ListarTodos(ctx context.Context) ([]domain.Produto, error) {
	query := url.Values{}
	query.Set("_limit", strconv.Itoa(limiteCatalogoCompleto))

	var produtos []domain.Produto
	if err := r.API.Get(ctx, "/api/produtos", query, &produtos); err != nil {
		return nil, fmt.Errorf("falha ao listar o catálogo completo: %w", err)
	}

	r.gravarSnapshot(ctx, produtos)
	return produtos, nil
}

// Snapshot devolve o catálogo gravado na última execução, se houver.
// É uma fonte morna: serve só para render imediato enquanto a rede responde.
// Qualquer falha aqui é tratada como cache vazio.
func (r *ProdutoRepository) Snapshot(ctx context.Context) ([]domain.Produto, bool) {
	if r.Cache == nil {
		return nil, false
	}

	cached, err := r.Cache.Get(ctx, snapshotCacheKey)
	if err != nil {
		if err != cache.ErrCacheMiss {
			r.Logger.Warn("Falha ao ler snapshot do cache; seguindo sem partida morna.", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var produtos []domain.Produto
	if err := json.Unmarshal([]byte(cached), &produtos); err != nil {
		r.Logger.Warn("Snapshot do cache corrompido; descartando.", map[string]interface{}{
			"error": err.Error(),
		})
		r.Cache.Delete(ctx, snapshotCacheKey)
		return nil, false
	}
	return produtos, true
}

// Criar envia um novo produto (POST /api/produtos) e retorna a representação
// criada pelo servidor, com ID, SKU e timestamps atribuídos.
func (r *ProdutoRepository) Criar(ctx context.Context, novo domain.NovoProduto) (domain.Produto, error) {
	var criado domain.Produto
	if err := r.API.Post(ctx, "/api/produtos", novo, &criado); err != nil {
		return domain.Produto{}, fmt.Errorf("falha ao criar produto: %w", err)
	}
	r.invalidarSnapshot(ctx)
	return criado, nil
}

// Atualizar envia uma edição parcial (PATCH /api/produtos/{id}) e retorna a
// representação atualizada pelo servidor.
func (r *ProdutoRepository) Atualizar(ctx context.Context, id string, patch domain.AtualizacaoProduto) (domain.Produto, error) {
	var atualizado domain.Produto
	if err := r.API.Patch(ctx, "/api/produtos/"+id, patch, &atualizado); err != nil {
		return domain.Produto{}, fmt.Errorf("falha ao atualizar produto %s: %w", id, err)
	}
	r.invalidarSnapshot(ctx)
	return atualizado, nil
}

// Remover exclui um produto (DELETE /api/produtos/{id}). O corpo da resposta
// é ignorado, conforme o contrato.
func (r *ProdutoRepository) Remover(ctx context.Context, id string) error {
	if err := r.API.Delete(ctx, "/api/produtos/"+id, nil); err != nil {
		return fmt.Errorf("falha ao remover produto %s: %w", id, err)
	}
	r.invalidarSnapshot(ctx)
	return nil
}

// InvalidarSnapshot descarta o snapshot local. Exportado para que o serviço
// de movimentações invalide o catálogo após mudanças de saldo.
func (r *ProdutoRepository) InvalidarSnapshot(ctx context.Context) {
	r.invalidarSnapshot(ctx)
}

func (r *ProdutoRepository) gravarSnapshot(ctx context.Context, produtos []domain.Produto) {
	if r.Cache == nil {
		return
	}
	payload, err := json.Marshal(produtos)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, snapshotCacheKey, payload, r.CacheTTL); err != nil {
		r.Logger.Warn("Falha ao gravar snapshot no cache.", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (r *ProdutoRepository) invalidarSnapshot(ctx context.Context) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, snapshotCacheKey); err != nil {
		r.Logger.Warn("Falha ao invalidar snapshot no cache.", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
