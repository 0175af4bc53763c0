package produtorepo_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goestoque/internal/domain"
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/httpclient"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/repository/produtorepo"
	"goestoque/internal/simulador"
)

// cacheMemoria é uma implementação em memória da interface cache.Client,
// usada no lugar do Redis nos testes.
type cacheMemoria struct {
	mu      sync.Mutex
	valores map[string]string
}

func novoCacheMemoria() *cacheMemoria {
	return &cacheMemoria{valores: make(map[string]string)}
}

func (c *cacheMemoria) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.valores[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (c *cacheMemoria) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.valores[key] = v
	case []byte:
		c.valores[key] = string(v)
	}
	return nil
}

func (c *cacheMemoria) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.valores, key)
	return nil
}

func novoRepositorio(t *testing.T) (*produtorepo.ProdutoRepository, *simulador.Store, *cacheMemoria) {
	t.Helper()

	log := logger.NewLogger("error")
	store := simulador.NewStore()
	srv := httptest.NewServer(simulador.NewRouter(simulador.NewHandler(store, log), log))
	t.Cleanup(srv.Close)

	memoria := novoCacheMemoria()
	api := httpclient.New(srv.URL, 5*time.Second, log)
	return produtorepo.NewProdutoRepository(api, memoria, time.Hour, log), store, memoria
}

// TestCriarEListar_RoundTripPelaAPI cobre o caminho completo: cliente HTTP,
// contrato JSON e paginação estilo json-server.
func TestCriarEListar_RoundTripPelaAPI(t *testing.T) {
	repo, _, _ := novoRepositorio(t)
	ctx := context.Background()

	criado, err := repo.Criar(ctx, domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 10, Categoria: "Fixação"})
	assert.NoError(t, err)
	assert.NotEmpty(t, criado.ID)
	assert.Equal(t, "SKU-0001", criado.SKU)

	pagina, err := repo.ListarPagina(ctx, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, pagina, 1)
	assert.Equal(t, "Parafuso 6mm", pagina[0].Nome)
	assert.Equal(t, "Fixação", pagina[0].Categoria)
}

// TestListarPagina_RecorteRemoto verifica que a paginação acontece no servidor.
func TestListarPagina_RecorteRemoto(t *testing.T) {
	repo, store, _ := novoRepositorio(t)
	for i := 0; i < 15; i++ {
		store.CriarProduto(domain.NovoProduto{Nome: "Produto"})
	}

	segunda, err := repo.ListarPagina(context.Background(), 2, 10)

	assert.NoError(t, err)
	assert.Len(t, segunda, 5)
}

// TestListarTodos_GravaSnapshot: a fase completa da carga deixa o catálogo no
// cache para a partida morna da próxima execução.
func TestListarTodos_GravaSnapshot(t *testing.T) {
	repo, store, _ := novoRepositorio(t)
	store.CriarProduto(domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 10})
	ctx := context.Background()

	todos, err := repo.ListarTodos(ctx)
	assert.NoError(t, err)
	assert.Len(t, todos, 1)

	snapshot, ok := repo.Snapshot(ctx)
	assert.True(t, ok)
	assert.Equal(t, todos, snapshot)
}

// TestSnapshot_CorrompidoDescartado: lixo no cache é tratado como cache vazio
// e a chave é removida.
func TestSnapshot_CorrompidoDescartado(t *testing.T) {
	repo, _, memoria := novoRepositorio(t)
	ctx := context.Background()

	memoria.Set(ctx, "goestoque:catalogo", "não é json", 0)

	_, ok := repo.Snapshot(ctx)
	assert.False(t, ok)

	_, err := memoria.Get(ctx, "goestoque:catalogo")
	assert.Equal(t, cache.ErrCacheMiss, err)
}

// TestEscritas_InvalidamSnapshot: criar, atualizar ou remover descarta o
// catálogo gravado, que ficou defasado.
func TestEscritas_InvalidamSnapshot(t *testing.T) {
	repo, store, _ := novoRepositorio(t)
	store.CriarProduto(domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 10})
	ctx := context.Background()

	_, err := repo.ListarTodos(ctx)
	assert.NoError(t, err)
	_, ok := repo.Snapshot(ctx)
	assert.True(t, ok)

	_, err = repo.Criar(ctx, domain.NovoProduto{Nome: "Porca 6mm"})
	assert.NoError(t, err)

	_, ok = repo.Snapshot(ctx)
	assert.False(t, ok)
}

// TestAtualizar_ErroTipadoPara404: a resposta de erro do servidor vira o erro
// de domínio correspondente, com a mensagem preservada.
func TestAtualizar_ErroTipadoPara404(t *testing.T) {
	repo, _, _ := novoRepositorio(t)

	nome := "Novo nome"
	_, err := repo.Atualizar(context.Background(), "nao-existe", domain.AtualizacaoProduto{Nome: &nome})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "não existe")
}

// TestRemover_RoundTrip exclui pela API e confirma o efeito no servidor.
func TestRemover_RoundTrip(t *testing.T) {
	repo, store, _ := novoRepositorio(t)
	p := store.CriarProduto(domain.NovoProduto{Nome: "Parafuso 6mm"})

	assert.NoError(t, repo.Remover(context.Background(), p.ID))
	assert.Empty(t, store.ListarProdutos(1, 10))
}
