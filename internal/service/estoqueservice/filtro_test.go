package estoqueservice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goestoque/internal/domain"
	"goestoque/internal/service/estoqueservice"
)

func intPtr(v int) *int { return &v }

func catalogoDeTeste() []domain.Produto {
	return []domain.Produto{
		{ID: "1", SKU: "SKU-0001", Nome: "Parafuso 6mm", Categoria: "Fixação", Quantidade: 10, EstoqueMinimo: intPtr(5)},
		{ID: "2", SKU: "SKU-0002", Nome: "Porca 6mm", Categoria: "Fixação", Quantidade: 3, EstoqueMinimo: intPtr(5), Prioritario: true},
		{ID: "3", SKU: "SKU-0003", Nome: "Fita isolante", Categoria: "Elétrica", Quantidade: 40},
		{ID: "4", SKU: "PAR-0004", Nome: "Arruela", Categoria: "Fixação", Quantidade: 5, EstoqueMinimo: intPtr(5)},
	}
}

// TestFiltrarProdutos_BuscaCaseInsensitive cobre a busca textual em nome,
// SKU e categoria, com espaços nas pontas ignorados.
func TestFiltrarProdutos_BuscaCaseInsensitive(t *testing.T) {
	produtos := catalogoDeTeste()

	resultado := estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{Busca: "  PARAFUSO "})
	assert.Len(t, resultado, 1)
	assert.Equal(t, "Parafuso 6mm", resultado[0].Nome)

	// "par" casa com o nome "Parafuso" e com o SKU "PAR-0004".
	resultado = estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{Busca: "par"})
	assert.Len(t, resultado, 2)

	// Busca por categoria também conta.
	resultado = estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{Busca: "elétrica"})
	assert.Len(t, resultado, 1)
	assert.Equal(t, "Fita isolante", resultado[0].Nome)
}

// TestFiltrarProdutos_CondicoesConjuntivas garante que cada critério ativo
// restringe o resultado (interseção, nunca união).
func TestFiltrarProdutos_CondicoesConjuntivas(t *testing.T) {
	produtos := catalogoDeTeste()

	// Categoria sozinha: três produtos de Fixação.
	soCategoria := estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{Categoria: "Fixação"})
	assert.Len(t, soCategoria, 3)

	// Categoria + abaixo do mínimo: Porca (3 ≤ 5) e Arruela (5 ≤ 5).
	combinado := estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{
		Categoria:    "Fixação",
		AbaixoMinimo: true,
	})
	assert.Len(t, combinado, 2)

	// Todos os critérios juntos: apenas a Porca é prioritária.
	completo := estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{
		Busca:        "6mm",
		Categoria:    "Fixação",
		AbaixoMinimo: true,
		Prioritarios: true,
	})
	assert.Len(t, completo, 1)
	assert.Equal(t, "Porca 6mm", completo[0].Nome)
}

// TestFiltrarProdutos_AbaixoMinimoExigeMinimoDefinido: produto sem estoque
// mínimo configurado nunca entra no recorte "abaixo do mínimo".
func TestFiltrarProdutos_AbaixoMinimoExigeMinimoDefinido(t *testing.T) {
	produtos := []domain.Produto{
		{ID: "1", Nome: "Sem mínimo", Quantidade: 0},
		{ID: "2", Nome: "Com mínimo", Quantidade: 2, EstoqueMinimo: intPtr(5)},
	}

	resultado := estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{AbaixoMinimo: true})

	assert.Len(t, resultado, 1)
	assert.Equal(t, "Com mínimo", resultado[0].Nome)
}

// TestFiltrarProdutos_DesligarFiltroRestauraLista: {quantidade 10, mínimo 5}
// some com o filtro ativo e reaparece quando ele é desligado.
func TestFiltrarProdutos_DesligarFiltroRestauraLista(t *testing.T) {
	produtos := []domain.Produto{
		{ID: "1", SKU: "A1", Nome: "Único", Quantidade: 10, EstoqueMinimo: intPtr(5)},
	}

	filtrado := estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{AbaixoMinimo: true})
	assert.Empty(t, filtrado)

	restaurado := estoqueservice.FiltrarProdutos(produtos, estoqueservice.Filtro{})
	assert.Equal(t, produtos, restaurado)
}

// TestFiltrarProdutos_PuraEPreservaOrdem verifica idempotência, preservação
// de ordem e que a lista de origem não é modificada.
func TestFiltrarProdutos_PuraEPreservaOrdem(t *testing.T) {
	produtos := catalogoDeTeste()

	f := estoqueservice.Filtro{Categoria: "Fixação"}
	primeira := estoqueservice.FiltrarProdutos(produtos, f)
	segunda := estoqueservice.FiltrarProdutos(produtos, f)

	assert.Equal(t, primeira, segunda)
	assert.Equal(t, catalogoDeTeste(), produtos, "a lista de origem não deve mudar")

	// Ordem relativa da origem preservada.
	assert.Equal(t, []string{"Parafuso 6mm", "Porca 6mm", "Arruela"},
		[]string{primeira[0].Nome, primeira[1].Nome, primeira[2].Nome})
}

// TestFiltroVazio cobre o predicado usado para decidir se há recorte ativo.
func TestFiltroVazio(t *testing.T) {
	assert.True(t, estoqueservice.Filtro{}.Vazio())
	assert.True(t, estoqueservice.Filtro{Busca: "   "}.Vazio())
	assert.False(t, estoqueservice.Filtro{Busca: "par"}.Vazio())
	assert.False(t, estoqueservice.Filtro{AbaixoMinimo: true}.Vazio())
}

// TestCategorias_DistintasNaOrdemDeAparicao alimenta o seletor do painel.
func TestCategorias_DistintasNaOrdemDeAparicao(t *testing.T) {
	produtos := []domain.Produto{
		{Categoria: "Fixação"},
		{Categoria: ""},
		{Categoria: "Elétrica"},
		{Categoria: "Fixação"},
		{Categoria: "Hidráulica"},
	}

	assert.Equal(t, []string{"Fixação", "Elétrica", "Hidráulica"}, estoqueservice.Categorias(produtos))
	assert.Nil(t, estoqueservice.Categorias(nil))
}
