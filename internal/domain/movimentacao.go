package domain

import "time"

// TipoMovimentacao distingue o efeito de uma movimentação sobre o saldo.
type TipoMovimentacao string

const (
	// TipoEntrada soma a quantidade ao saldo do produto.
	TipoEntrada TipoMovimentacao = "entrada"
	// TipoSaida subtrai a quantidade do saldo do produto.
	TipoSaida TipoMovimentacao = "saida"
	// TipoAjuste substitui o saldo pelo valor absoluto informado.
	// Movimentações de ajuste não podem ser removidas pela interface.
	TipoAjuste TipoMovimentacao = "ajuste"
)

// Valido informa se o tipo é um dos três reconhecidos pelo contrato.
func (t TipoMovimentacao) Valido() bool {
	return t == TipoEntrada || t == TipoSaida || t == TipoAjuste
}

// Movimentacao registra uma alteração de saldo de um Produto.
// Para entrada/saída, Quantidade é um delta; para ajuste, é o novo
// valor absoluto do saldo.
type Movimentacao struct {
	ID         string           `json:"id"`
	ProdutoID  string           `json:"produtoId"`
	Tipo       TipoMovimentacao `json:"tipo"`
	Quantidade int              `json:"quantidade"`
	Motivo     string           `json:"motivo,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// NovaMovimentacao é o payload de criação (POST /api/movimentacoes).
type NovaMovimentacao struct {
	ProdutoID  string           `json:"produtoId"`
	Tipo       TipoMovimentacao `json:"tipo"`
	Quantidade int              `json:"quantidade"`
	Motivo     string           `json:"motivo,omitempty"`
}

// AtualizacaoMovimentacao é o payload parcial de edição (PATCH).
type AtualizacaoMovimentacao struct {
	Quantidade *int    `json:"quantidade,omitempty"`
	Motivo     *string `json:"motivo,omitempty"`
}

// MovimentacaoCriada é a resposta do servidor à criação: a movimentação
// registrada e o Produto já com o saldo recalculado. O cliente substitui
// o produto em cache por este objeto, sem recomputar quantidade.
type MovimentacaoCriada struct {
	Movimentacao Movimentacao `json:"movimentacao"`
	Produto      Produto      `json:"produto"`
}

// MovimentacaoAtualizada é a resposta do servidor à edição.
type MovimentacaoAtualizada struct {
	Movimentacao Movimentacao `json:"movimentacaoAtualizada"`
	Produto      Produto      `json:"produtoAtualizado"`
}

// MovimentacaoRemovida é a resposta do servidor à remoção: apenas o
// Produto com o efeito da movimentação revertido.
type MovimentacaoRemovida struct {
	Produto Produto `json:"produtoAtualizado"`
}
