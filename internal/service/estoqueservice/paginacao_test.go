package estoqueservice_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"goestoque/internal/domain"
	"goestoque/internal/service/estoqueservice"
)

func listaDeProdutos(n int) []domain.Produto {
	produtos := make([]domain.Produto, n)
	for i := range produtos {
		produtos[i] = domain.Produto{ID: fmt.Sprintf("p-%02d", i+1), Nome: fmt.Sprintf("Produto %02d", i+1)}
	}
	return produtos
}

// TestTotalPaginas cobre o arredondamento para cima e a lista vazia.
func TestTotalPaginas(t *testing.T) {
	assert.Equal(t, 0, estoqueservice.TotalPaginas(0, 10))
	assert.Equal(t, 1, estoqueservice.TotalPaginas(1, 10))
	assert.Equal(t, 1, estoqueservice.TotalPaginas(10, 10))
	assert.Equal(t, 2, estoqueservice.TotalPaginas(11, 10))
	assert.Equal(t, 3, estoqueservice.TotalPaginas(25, 10))
}

// TestPagina_ConcatenacaoReconstroiLista: percorrer todas as páginas em ordem
// reproduz a lista filtrada inteira, sem sobreposição nem omissão.
func TestPagina_ConcatenacaoReconstroiLista(t *testing.T) {
	produtos := listaDeProdutos(25)
	tamanho := 10

	var reconstruida []domain.Produto
	total := estoqueservice.TotalPaginas(len(produtos), tamanho)
	for p := 1; p <= total; p++ {
		reconstruida = append(reconstruida, estoqueservice.Pagina(produtos, p, tamanho)...)
	}

	assert.Equal(t, produtos, reconstruida)
}

// TestPagina_UltimaPaginaParcial: a última página carrega apenas o resto.
func TestPagina_UltimaPaginaParcial(t *testing.T) {
	produtos := listaDeProdutos(25)

	ultima := estoqueservice.Pagina(produtos, 3, 10)

	assert.Len(t, ultima, 5)
	assert.Equal(t, "p-21", ultima[0].ID)
	assert.Equal(t, "p-25", ultima[4].ID)
}

// TestPagina_ForaDoIntervalo: páginas inválidas retornam nil para que o
// chamador trate a navegação como no-op.
func TestPagina_ForaDoIntervalo(t *testing.T) {
	produtos := listaDeProdutos(25)

	assert.Nil(t, estoqueservice.Pagina(produtos, 0, 10))
	assert.Nil(t, estoqueservice.Pagina(produtos, -1, 10))
	assert.Nil(t, estoqueservice.Pagina(produtos, 4, 10))
	assert.Nil(t, estoqueservice.Pagina(nil, 1, 10))
}
