package relatorioservice_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/service/relatorioservice"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func novoServico() *relatorioservice.Service {
	return relatorioservice.NewService(logger.NewLogger("error"))
}

// TestItensParaReposicao_SelecionaApenasAbaixoDoMinimo garante que o recorte
// usa a mesma regra da listagem: mínimo definido e saldo ≤ mínimo.
func TestItensParaReposicao_SelecionaApenasAbaixoDoMinimo(t *testing.T) {
	svc := novoServico()

	produtos := []domain.Produto{
		{ID: "1", Nome: "Saudável", Quantidade: 10, EstoqueMinimo: intPtr(5)},
		{ID: "2", Nome: "No limite", Quantidade: 5, EstoqueMinimo: intPtr(5)},
		{ID: "3", Nome: "Abaixo", Quantidade: 1, EstoqueMinimo: intPtr(5)},
		{ID: "4", Nome: "Sem mínimo", Quantidade: 0},
	}

	itens := svc.ItensParaReposicao(produtos)

	assert.Len(t, itens, 2)
	assert.Equal(t, "No limite", itens[0].Produto.Nome)
	assert.Equal(t, "Abaixo", itens[1].Produto.Nome)
}

// TestItensParaReposicao_QuantidadeSugerida: a sugestão leva o saldo ao dobro
// do mínimo, com piso de 1 unidade.
func TestItensParaReposicao_QuantidadeSugerida(t *testing.T) {
	svc := novoServico()

	casos := []struct {
		nome       string
		quantidade int
		minimo     int
		esperada   int
	}{
		{"saldo zerado", 0, 5, 10},       // 2*5 - 0
		{"saldo parcial", 3, 5, 7},       // 2*5 - 3
		{"no limite", 5, 5, 5},           // 2*5 - 5
		{"minimo zero", 0, 0, 1},         // alvo 0, clamp para 1
		{"acima do alvo", 9, 5, 1},       // 2*5 - 9 = 1
	}

	for _, c := range casos {
		itens := svc.ItensParaReposicao([]domain.Produto{
			{Nome: c.nome, Quantidade: c.quantidade, EstoqueMinimo: intPtr(c.minimo)},
		})
		assert.Len(t, itens, 1, c.nome)
		assert.Equal(t, c.esperada, itens[0].QtdSugerida, c.nome)
	}
}

// TestItensParaReposicao_ValorEstimado usa aritmética decimal exata.
func TestItensParaReposicao_ValorEstimado(t *testing.T) {
	svc := novoServico()

	itens := svc.ItensParaReposicao([]domain.Produto{
		{Nome: "Com valor", Quantidade: 3, EstoqueMinimo: intPtr(5), ValorUnitario: decPtr("2.35")},
		{Nome: "Sem valor", Quantidade: 3, EstoqueMinimo: intPtr(5)},
	})

	assert.Len(t, itens, 2)
	// 7 unidades × R$ 2,35 = R$ 16,45 (sem erro de ponto flutuante)
	assert.True(t, itens[0].ValorEstimado.Equal(decimal.RequireFromString("16.45")))
	assert.True(t, itens[1].ValorEstimado.IsZero())

	total := svc.ValorTotal(itens)
	assert.True(t, total.Equal(decimal.RequireFromString("16.45")))
}

// TestGerarPDF_EscreveDocumentoValido verifica que o writer recebe um PDF.
func TestGerarPDF_EscreveDocumentoValido(t *testing.T) {
	svc := novoServico()

	itens := svc.ItensParaReposicao([]domain.Produto{
		{SKU: "SKU-0001", Nome: "Parafuso 6mm", Fornecedor: "Açoforte", Quantidade: 2, EstoqueMinimo: intPtr(5), ValorUnitario: decPtr("0.50")},
		{SKU: "SKU-0002", Nome: "Porca 6mm", Quantidade: 0, EstoqueMinimo: intPtr(10)},
	})

	var buf bytes.Buffer
	err := svc.GerarPDF(itens, &buf)

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "a saída deve começar com o cabeçalho PDF")
	assert.Greater(t, buf.Len(), 500)
}

// TestGerarPDF_SemItensRetornaValidacao: nada a repor gera aviso, não arquivo.
func TestGerarPDF_SemItensRetornaValidacao(t *testing.T) {
	svc := novoServico()

	var buf bytes.Buffer
	err := svc.GerarPDF(nil, &buf)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Zero(t, buf.Len())
}
