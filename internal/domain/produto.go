package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item estocado do catálogo (a Entidade central).
// O servidor é a única fonte de verdade: ID, SKU e timestamps são atribuídos
// por ele, e Quantidade só muda por movimentação ou edição confirmada.
// O cliente mantém apenas uma cópia em cache para renderização.
type Produto struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"` // Stock Keeping Unit, imutável após a criação
	Nome          string           `json:"nome"`
	Descricao     string           `json:"descricao,omitempty"`
	Categoria     string           `json:"categoria,omitempty"`
	Unidade       string           `json:"unidade,omitempty"` // Ex: "un", "kg", "cx"
	Quantidade    int              `json:"quantidade"`
	EstoqueMinimo *int             `json:"estoqueMinimo,omitempty"`
	Localizacao   string           `json:"localizacao,omitempty"`
	Fornecedor    string           `json:"fornecedor,omitempty"`
	ValorUnitario *decimal.Decimal `json:"valorUnitario,omitempty"`
	Prioritario   bool             `json:"prioritario"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// AbaixoDoMinimo informa se o produto está com saldo igual ou abaixo do
// estoque mínimo configurado. Produtos sem mínimo definido nunca entram
// nessa condição.
func (p Produto) AbaixoDoMinimo() bool {
	return p.EstoqueMinimo != nil && p.Quantidade <= *p.EstoqueMinimo
}

// NovoProduto é o payload de criação enviado ao servidor.
// Não carrega ID, SKU nem timestamps: todos são atribuídos pelo servidor.
type NovoProduto struct {
	Nome          string           `json:"nome"`
	Descricao     string           `json:"descricao,omitempty"`
	Categoria     string           `json:"categoria,omitempty"`
	Unidade       string           `json:"unidade,omitempty"`
	Quantidade    int              `json:"quantidade"`
	EstoqueMinimo *int             `json:"estoqueMinimo,omitempty"`
	Localizacao   string           `json:"localizacao,omitempty"`
	Fornecedor    string           `json:"fornecedor,omitempty"`
	ValorUnitario *decimal.Decimal `json:"valorUnitario,omitempty"`
	Prioritario   bool             `json:"prioritario"`
}

// AtualizacaoProduto é o payload parcial de edição (PATCH).
// Campos nil são omitidos e permanecem inalterados no servidor.
type AtualizacaoProduto struct {
	Nome          *string          `json:"nome,omitempty"`
	Descricao     *string          `json:"descricao,omitempty"`
	Categoria     *string          `json:"categoria,omitempty"`
	Unidade       *string          `json:"unidade,omitempty"`
	Quantidade    *int             `json:"quantidade,omitempty"`
	EstoqueMinimo *int             `json:"estoqueMinimo,omitempty"`
	Localizacao   *string          `json:"localizacao,omitempty"`
	Fornecedor    *string          `json:"fornecedor,omitempty"`
	ValorUnitario *decimal.Decimal `json:"valorUnitario,omitempty"`
	Prioritario   *bool            `json:"prioritario,omitempty"`
}
