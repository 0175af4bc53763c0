package relatorioservice

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// ItemReposicao é uma linha do relatório: um produto abaixo do mínimo com a
// quantidade de compra sugerida e o valor estimado dessa compra.
type ItemReposicao struct {
	Produto       domain.Produto
	QtdSugerida   int
	ValorEstimado decimal.Decimal // QtdSugerida × valor unitário (zero se sem valor)
}

// Service gera o relatório de reposição a partir do catálogo em cache.
// O relatório é inteiramente client-side: nenhum endpoint de servidor envolvido.
type Service struct {
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Relatório.
func NewService(log logger.Logger) *Service {
	return &Service{logger: log}
}

// ItensParaReposicao seleciona os produtos com estoque mínimo definido e
// saldo igual ou abaixo dele, na ordem do catálogo. A quantidade sugerida
// leva o saldo ao dobro do mínimo (alvo máximo), nunca menos que a
// diferença até o próprio mínimo.
func (s *Service) ItensParaReposicao(produtos []domain.Produto) []ItemReposicao {
	var itens []ItemReposicao
	for _, p := range produtos {
		if !p.AbaixoDoMinimo() {
			continue
		}

		alvo := *p.EstoqueMinimo * 2
		sugerida := alvo - p.Quantidade
		if sugerida < 1 {
			sugerida = 1
		}

		valor := decimal.Zero
		if p.ValorUnitario != nil {
			valor = p.ValorUnitario.Mul(decimal.NewFromInt(int64(sugerida)))
		}

		itens = append(itens, ItemReposicao{
			Produto:       p,
			QtdSugerida:   sugerida,
			ValorEstimado: valor,
		})
	}
	return itens
}

// ValorTotal soma o valor estimado de todos os itens do relatório.
func (s *Service) ValorTotal(itens []ItemReposicao) decimal.Decimal {
	total := decimal.Zero
	for _, item := range itens {
		total = total.Add(item.ValorEstimado)
	}
	return total
}

// GerarPDF escreve o relatório de reposição em w. Retorna erro de validação
// quando não há nada a repor, para que o painel avise o usuário em vez de
// gerar um arquivo vazio.
func (s *Service) GerarPDF(itens []ItemReposicao, w io.Writer) error {
	if len(itens) == 0 {
		return apperror.NewValidationError("Nenhum produto abaixo do estoque mínimo; nada a repor.")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// As fontes core do PDF usam cp1252; o tradutor cuida dos acentos.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Reposição de Estoque"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Gerado em %s — %d produto(s) abaixo do mínimo",
		time.Now().Format("02/01/2006 15:04"), len(itens))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Cabeçalho da tabela
	colunas := []struct {
		titulo  string
		largura float64
	}{
		{"SKU", 26},
		{"Produto", 62},
		{"Saldo", 16},
		{"Mínimo", 16},
		{"Sugerido", 20},
		{"Fornecedor", 30},
		{"Valor Est.", 20},
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range colunas {
		pdf.CellFormat(c.largura, 7, tr(c.titulo), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range itens {
		p := item.Produto

		minimo := ""
		if p.EstoqueMinimo != nil {
			minimo = fmt.Sprintf("%d", *p.EstoqueMinimo)
		}
		valor := "-"
		if !item.ValorEstimado.IsZero() {
			valor = "R$ " + item.ValorEstimado.StringFixed(2)
		}

		pdf.CellFormat(26, 7, tr(p.SKU), "1", 0, "L", false, 0, "")
		pdf.CellFormat(62, 7, tr(p.Nome), "1", 0, "L", false, 0, "")
		pdf.CellFormat(16, 7, fmt.Sprintf("%d", p.Quantidade), "1", 0, "R", false, 0, "")
		pdf.CellFormat(16, 7, minimo, "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.QtdSugerida), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, tr(p.Fornecedor), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, tr(valor), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	total := s.ValorTotal(itens)
	if !total.IsZero() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(140, 7, tr("Valor total estimado"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, tr("R$ "+total.StringFixed(2)), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		s.logger.Error("Falha ao gerar PDF de reposição.", err)
		return apperror.NewInternalError("Falha ao gerar o PDF do relatório.", err)
	}

	s.logger.Info("Relatório de reposição gerado.", map[string]interface{}{
		"itens": len(itens),
	})
	return nil
}
