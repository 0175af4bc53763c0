package simulador

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"goestoque/internal/domain"
	"goestoque/internal/pkg/logger"
)

func novoServidorDeTeste(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore()
	log := logger.NewLogger("error")
	srv := httptest.NewServer(NewRouter(NewHandler(store, log), log))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	return resp
}

func decodificar(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// TestPing cobre o health check.
func TestPing(t *testing.T) {
	srv, _ := novoServidorDeTeste(t)

	resp, err := http.Get(srv.URL + "/ping")

	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestPostProdutos_CriaComIdentidade: o POST devolve 201 com ID e SKU
// atribuídos pelo servidor.
func TestPostProdutos_CriaComIdentidade(t *testing.T) {
	srv, _ := novoServidorDeTeste(t)

	resp := postJSON(t, srv.URL+"/api/produtos", domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 10})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var criado domain.Produto
	decodificar(t, resp, &criado)
	assert.NotEmpty(t, criado.ID)
	assert.Equal(t, "SKU-0001", criado.SKU)
	assert.Equal(t, 10, criado.Quantidade)
}

// TestPostProdutos_NomeObrigatorio retorna 400 com o corpo de erro padronizado.
func TestPostProdutos_NomeObrigatorio(t *testing.T) {
	srv, _ := novoServidorDeTeste(t)

	resp := postJSON(t, srv.URL+"/api/produtos", domain.NovoProduto{Nome: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var corpo domain.ErrorResponse
	decodificar(t, resp, &corpo)
	assert.Equal(t, http.StatusBadRequest, corpo.Code)
	assert.Equal(t, "VALIDATION_ERROR", corpo.Category)
}

// TestGetProdutos_PaginacaoJSONServer cobre os parâmetros _page/_limit.
func TestGetProdutos_PaginacaoJSONServer(t *testing.T) {
	srv, store := novoServidorDeTeste(t)
	for i := 0; i < 15; i++ {
		store.CriarProduto(domain.NovoProduto{Nome: fmt.Sprintf("Produto %d", i+1)})
	}

	resp, err := http.Get(srv.URL + "/api/produtos?_page=2&_limit=10")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pagina []domain.Produto
	decodificar(t, resp, &pagina)
	assert.Len(t, pagina, 5)
	assert.Equal(t, "Produto 11", pagina[0].Nome)
}

// TestPatchProduto_EdicaoParcial altera só os campos presentes no payload.
func TestPatchProduto_EdicaoParcial(t *testing.T) {
	srv, store := novoServidorDeTeste(t)
	p := store.CriarProduto(domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 10})

	body, _ := json.Marshal(map[string]interface{}{"prioritario": true})
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/produtos/"+p.ID, bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var atualizado domain.Produto
	decodificar(t, resp, &atualizado)
	assert.True(t, atualizado.Prioritario)
	assert.Equal(t, "Parafuso 6mm", atualizado.Nome)
	assert.Equal(t, 10, atualizado.Quantidade)
}

// TestDeleteProduto_Inexistente retorna 404 tipado.
func TestDeleteProduto_Inexistente(t *testing.T) {
	srv, _ := novoServidorDeTeste(t)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/produtos/nao-existe", nil)
	resp, err := http.DefaultClient.Do(req)

	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestPostMovimentacoes_RetornaMovimentacaoEProduto: o 201 carrega as duas
// representações que o painel reconcilia.
func TestPostMovimentacoes_RetornaMovimentacaoEProduto(t *testing.T) {
	srv, store := novoServidorDeTeste(t)
	p := store.CriarProduto(domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 10})

	resp := postJSON(t, srv.URL+"/api/movimentacoes", domain.NovaMovimentacao{
		ProdutoID:  p.ID,
		Tipo:       domain.TipoEntrada,
		Quantidade: 5,
		Motivo:     "Reposição de fornecedor",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var criada domain.MovimentacaoCriada
	decodificar(t, resp, &criada)
	assert.NotEmpty(t, criada.Movimentacao.ID)
	assert.Equal(t, p.ID, criada.Movimentacao.ProdutoID)
	assert.Equal(t, 15, criada.Produto.Quantidade)
}

// TestPostMovimentacoes_SaidaSemSaldoRetorna409 traduz o conflito de negócio.
func TestPostMovimentacoes_SaidaSemSaldoRetorna409(t *testing.T) {
	srv, store := novoServidorDeTeste(t)
	p := store.CriarProduto(domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 2})

	resp := postJSON(t, srv.URL+"/api/movimentacoes", domain.NovaMovimentacao{
		ProdutoID:  p.ID,
		Tipo:       domain.TipoSaida,
		Quantidade: 5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var corpo domain.ErrorResponse
	decodificar(t, resp, &corpo)
	assert.Equal(t, "CONFLICT", corpo.Category)
}

// TestDeleteMovimentacao_DevolveProdutoRevertido: o DELETE responde com o
// produto já com o saldo restaurado.
func TestDeleteMovimentacao_DevolveProdutoRevertido(t *testing.T) {
	srv, store := novoServidorDeTeste(t)
	p := store.CriarProduto(domain.NovoProduto{Nome: "Parafuso 6mm", Quantidade: 10})
	m, _, err := store.CriarMovimentacao(domain.NovaMovimentacao{ProdutoID: p.ID, Tipo: domain.TipoSaida, Quantidade: 4})
	assert.NoError(t, err)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/movimentacoes/"+m.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var removida domain.MovimentacaoRemovida
	decodificar(t, resp, &removida)
	assert.Equal(t, 10, removida.Produto.Quantidade)
}

// TestRequestID_GeradoQuandoAusente: o middleware devolve um X-Request-Id em
// toda resposta, gerando um quando o cliente não envia.
func TestRequestID_GeradoQuandoAusente(t *testing.T) {
	srv, _ := novoServidorDeTeste(t)

	resp, err := http.Get(srv.URL + "/ping")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	// E o id enviado pelo cliente é propagado de volta.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/ping", nil)
	req.Header.Set("X-Request-Id", "painel-123")
	resp, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "painel-123", resp.Header.Get("X-Request-Id"))
}
