package painel

import (
	"fmt"
	"text/tabwriter"

	"goestoque/internal/domain"
)

// Render desenha a tela ativa na saída do painel. Se a carga inicial falhou,
// a visão inteira é substituída pela mensagem de erro terminal.
func (p *Painel) Render() {
	estado := p.svc.Estado()

	if estado.Erro != nil {
		fmt.Fprintln(p.saida)
		fmt.Fprintln(p.saida, "Não foi possível carregar os dados de estoque.")
		fmt.Fprintln(p.saida, "Verifique a conexão com o serviço e reinicie o painel (comando: recarregar).")
		return
	}

	switch p.Visao() {
	case VisaoMovimentacoes:
		p.renderMovimentacoes(estado.Movimentacoes, estado.Produtos)
	default:
		p.renderEstoque(estado.CatalogoCompleto)
	}
}

func (p *Painel) renderEstoque(catalogoCompleto bool) {
	itens, pagina, totalPaginas := p.ProdutosVisiveis()

	fmt.Fprintln(p.saida)
	if !catalogoCompleto {
		fmt.Fprintln(p.saida, "(carregando o catálogo completo em segundo plano...)")
	}

	tw := tabwriter.NewWriter(p.saida, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tNOME\tCATEGORIA\tQTD\tMÍN\tPRIOR\tVALOR")
	for _, produto := range itens {
		minimo := "-"
		if produto.EstoqueMinimo != nil {
			minimo = fmt.Sprintf("%d", *produto.EstoqueMinimo)
		}
		prioridade := ""
		if produto.Prioritario {
			prioridade = "★"
		}
		valor := "-"
		if produto.ValorUnitario != nil {
			valor = "R$ " + produto.ValorUnitario.StringFixed(2)
		}
		alerta := ""
		if produto.AbaixoDoMinimo() {
			alerta = " !"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%s\t%s\t%s\t%s\n",
			produto.SKU, produto.Nome, produto.Categoria, produto.Quantidade, alerta, minimo, prioridade, valor)
	}
	tw.Flush()

	if totalPaginas > 0 {
		fmt.Fprintf(p.saida, "página %d de %d\n", pagina, totalPaginas)
	} else {
		fmt.Fprintln(p.saida, "nenhum produto encontrado")
	}
}

func (p *Painel) renderMovimentacoes(movimentacoes []domain.Movimentacao, produtos []domain.Produto) {
	nomes := make(map[string]string, len(produtos))
	for _, produto := range produtos {
		nomes[produto.ID] = produto.Nome
	}

	fmt.Fprintln(p.saida)
	tw := tabwriter.NewWriter(p.saida, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUTO\tTIPO\tQTD\tMOTIVO\tDATA")
	for _, m := range movimentacoes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			abreviar(m.ID), nomes[m.ProdutoID], m.Tipo, m.Quantidade, m.Motivo,
			m.CreatedAt.Format("02/01/2006 15:04"))
	}
	tw.Flush()
	fmt.Fprintf(p.saida, "%d movimentação(ões)\n", len(movimentacoes))
}

// abreviar encurta UUIDs para exibição em tabela; o ID completo continua
// sendo aceito nos comandos.
func abreviar(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
