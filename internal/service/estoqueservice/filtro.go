package estoqueservice

import (
	"strings"

	"goestoque/internal/domain"
)

// Filtro define os critérios de filtragem client-side da listagem de estoque.
// As condições são conjuntivas: um produto só aparece se satisfizer todas.
type Filtro struct {
	Busca        string // Substring case-insensitive em nome, SKU ou categoria
	Categoria    string // Vazio = todas as categorias
	AbaixoMinimo bool   // Apenas produtos com mínimo definido e saldo ≤ mínimo
	Prioritarios bool   // Apenas produtos com a flag de prioridade
}

// Vazio informa se nenhum critério está ativo.
func (f Filtro) Vazio() bool {
	return strings.TrimSpace(f.Busca) == "" && f.Categoria == "" && !f.AbaixoMinimo && !f.Prioritarios
}

// FiltrarProdutos deriva a sublista de produtos que satisfaz o filtro.
// A função é pura: preserva a ordem da lista de origem, não a modifica e
// produz o mesmo resultado para as mesmas entradas.
func FiltrarProdutos(produtos []domain.Produto, f Filtro) []domain.Produto {
	busca := strings.ToLower(strings.TrimSpace(f.Busca))

	resultado := make([]domain.Produto, 0, len(produtos))
	for _, p := range produtos {
		if busca != "" && !correspondeBusca(p, busca) {
			continue
		}
		if f.Categoria != "" && p.Categoria != f.Categoria {
			continue
		}
		if f.AbaixoMinimo && !p.AbaixoDoMinimo() {
			continue
		}
		if f.Prioritarios && !p.Prioritario {
			continue
		}
		resultado = append(resultado, p)
	}
	return resultado
}

// correspondeBusca verifica a busca textual contra nome, SKU e categoria.
func correspondeBusca(p domain.Produto, busca string) bool {
	return strings.Contains(strings.ToLower(p.Nome), busca) ||
		strings.Contains(strings.ToLower(p.SKU), busca) ||
		strings.Contains(strings.ToLower(p.Categoria), busca)
}

// Categorias extrai, preservando a ordem de primeira aparição, as categorias
// distintas não-vazias da lista — alimenta o seletor de categoria do painel.
func Categorias(produtos []domain.Produto) []string {
	vistas := make(map[string]bool)
	var categorias []string
	for _, p := range produtos {
		if p.Categoria == "" || vistas[p.Categoria] {
			continue
		}
		vistas[p.Categoria] = true
		categorias = append(categorias, p.Categoria)
	}
	return categorias
}
