package painel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"goestoque/internal/domain"
)

// Executar roda o loop interativo do painel: lê comandos de in até EOF ou
// "sair", renderizando a tela ativa após cada ação.
func (p *Painel) Executar(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(p.saida, "goestoque — painel de controle de estoque (digite 'ajuda')")
	p.Render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(p.saida, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		linha := strings.TrimSpace(scanner.Text())
		if linha == "" {
			continue
		}

		partes := strings.Fields(linha)
		comando := strings.ToLower(partes[0])
		args := partes[1:]

		if comando == "sair" {
			break
		}
		p.executarComando(ctx, comando, args, linha)
	}
	return scanner.Err()
}

func (p *Painel) executarComando(ctx context.Context, comando string, args []string, linha string) {
	switch comando {
	case "ajuda":
		p.imprimirAjuda()

	case "estoque":
		p.DefinirVisao(VisaoEstoque)
		p.Render()

	case "movimentacoes":
		p.DefinirVisao(VisaoMovimentacoes)
		p.Render()

	case "buscar":
		// O termo só vira filtro após a quiescência do debounce; o Render
		// acontece no callback.
		p.DefinirBusca(strings.Join(args, " "))

	case "categoria":
		p.DefinirCategoria(strings.Join(args, " "))
		p.Render()

	case "abaixo":
		p.AlternarAbaixoMinimo()
		p.Render()

	case "prioritarios":
		p.AlternarPrioritarios()
		p.Render()

	case "pagina":
		if len(args) != 1 {
			fmt.Fprintln(p.saida, "uso: pagina <n>")
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(p.saida, "uso: pagina <n>")
			return
		}
		p.IrParaPagina(n)
		p.Render()

	case "proxima":
		p.ProximaPagina()
		p.Render()

	case "anterior":
		p.PaginaAnterior()
		p.Render()

	case "prioridade":
		if len(args) != 1 {
			fmt.Fprintln(p.saida, "uso: prioridade <sku|id>")
			return
		}
		produto, ok := p.encontrarProduto(args[0])
		if !ok {
			fmt.Fprintln(p.saida, "produto não encontrado")
			return
		}
		p.AlternarPrioridade(ctx, produto.ID)
		p.Render()

	case "criar":
		p.comandoCriar(ctx, linha)

	case "editar":
		p.comandoEditar(ctx, args)

	case "remover-produto":
		if len(args) != 1 {
			fmt.Fprintln(p.saida, "uso: remover-produto <sku|id>")
			return
		}
		produto, ok := p.encontrarProduto(args[0])
		if !ok {
			fmt.Fprintln(p.saida, "produto não encontrado")
			return
		}
		if err := p.svc.RemoverProduto(ctx, produto.ID); err != nil {
			fmt.Fprintln(p.saida, err.Error())
			return
		}
		p.Render()

	case "mover":
		p.comandoMover(ctx, args)

	case "editar-mov":
		p.comandoEditarMov(ctx, args)

	case "remover-mov":
		if len(args) != 1 {
			fmt.Fprintln(p.saida, "uso: remover-mov <id>")
			return
		}
		id, ok := p.encontrarMovimentacao(args[0])
		if !ok {
			fmt.Fprintln(p.saida, "movimentação não encontrada")
			return
		}
		if err := p.svc.RemoverMovimentacao(ctx, id); err != nil {
			fmt.Fprintln(p.saida, err.Error())
			return
		}
		p.Render()

	case "relatorio":
		if len(args) != 1 {
			fmt.Fprintln(p.saida, "uso: relatorio <arquivo.pdf>")
			return
		}
		p.comandoRelatorio(args[0])

	case "recarregar":
		if err := p.svc.CarregarInicial(ctx); err != nil {
			p.Render()
			return
		}
		p.Render()

	default:
		fmt.Fprintf(p.saida, "comando desconhecido: %s (digite 'ajuda')\n", comando)
	}
}

// comandoCriar aceita campos separados por '|':
//
//	criar Parafuso 6mm | 100 | Fixação | 50 | 0.15
//
// na ordem nome | quantidade | categoria | mínimo | valor unitário,
// sendo obrigatórios apenas nome e quantidade.
func (p *Painel) comandoCriar(ctx context.Context, linha string) {
	corpo := strings.TrimSpace(strings.TrimPrefix(linha, "criar"))
	campos := strings.Split(corpo, "|")
	if len(campos) < 2 {
		fmt.Fprintln(p.saida, "uso: criar <nome> | <quantidade> [| categoria | mínimo | valor]")
		return
	}

	quantidade, err := strconv.Atoi(strings.TrimSpace(campos[1]))
	if err != nil {
		fmt.Fprintln(p.saida, "quantidade inválida")
		return
	}

	novo := domain.NovoProduto{
		Nome:       strings.TrimSpace(campos[0]),
		Quantidade: quantidade,
	}
	if len(campos) > 2 {
		novo.Categoria = strings.TrimSpace(campos[2])
	}
	if len(campos) > 3 {
		if minimo, err := strconv.Atoi(strings.TrimSpace(campos[3])); err == nil {
			novo.EstoqueMinimo = &minimo
		}
	}
	if len(campos) > 4 {
		if valor, err := decimal.NewFromString(strings.TrimSpace(campos[4])); err == nil {
			novo.ValorUnitario = &valor
		}
	}

	criado, err := p.svc.CriarProduto(ctx, novo)
	if err != nil {
		fmt.Fprintln(p.saida, err.Error())
		return
	}
	fmt.Fprintf(p.saida, "produto criado: %s (%s)\n", criado.Nome, criado.SKU)
	p.Render()
}

// comandoEditar aceita pares campo=valor:
//
//	editar SKU-0001 nome=Parafuso 8mm qtd=120 min=40
func (p *Painel) comandoEditar(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(p.saida, "uso: editar <sku|id> campo=valor [...]  (campos: nome, qtd, min, cat, valor, loc, forn)")
		return
	}
	produto, ok := p.encontrarProduto(args[0])
	if !ok {
		fmt.Fprintln(p.saida, "produto não encontrado")
		return
	}

	var patch domain.AtualizacaoProduto
	for _, par := range juntarPares(args[1:]) {
		chave, valor, achou := strings.Cut(par, "=")
		if !achou {
			fmt.Fprintf(p.saida, "ignorando argumento sem '=': %s\n", par)
			continue
		}
		switch strings.ToLower(chave) {
		case "nome":
			v := valor
			patch.Nome = &v
		case "qtd":
			if n, err := strconv.Atoi(valor); err == nil {
				patch.Quantidade = &n
			}
		case "min":
			if n, err := strconv.Atoi(valor); err == nil {
				patch.EstoqueMinimo = &n
			}
		case "cat":
			v := valor
			patch.Categoria = &v
		case "valor":
			if d, err := decimal.NewFromString(valor); err == nil {
				patch.ValorUnitario = &d
			}
		case "loc":
			v := valor
			patch.Localizacao = &v
		case "forn":
			v := valor
			patch.Fornecedor = &v
		default:
			fmt.Fprintf(p.saida, "campo desconhecido: %s\n", chave)
		}
	}

	if _, err := p.svc.AtualizarProduto(ctx, produto.ID, patch); err != nil {
		fmt.Fprintln(p.saida, err.Error())
		return
	}
	p.Render()
}

// comandoMover registra uma movimentação:
//
//	mover SKU-0001 entrada 50 reposição do fornecedor
func (p *Painel) comandoMover(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(p.saida, "uso: mover <sku|id> <entrada|saida|ajuste> <qtd> [motivo...]")
		return
	}
	produto, ok := p.encontrarProduto(args[0])
	if !ok {
		fmt.Fprintln(p.saida, "produto não encontrado")
		return
	}
	quantidade, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Fprintln(p.saida, "quantidade inválida")
		return
	}

	nova := domain.NovaMovimentacao{
		ProdutoID:  produto.ID,
		Tipo:       domain.TipoMovimentacao(strings.ToLower(args[1])),
		Quantidade: quantidade,
		Motivo:     strings.Join(args[3:], " "),
	}
	criada, err := p.svc.RegistrarMovimentacao(ctx, nova)
	if err != nil {
		fmt.Fprintln(p.saida, err.Error())
		return
	}
	fmt.Fprintf(p.saida, "saldo de %s agora é %d\n", criada.Produto.Nome, criada.Produto.Quantidade)
	p.Render()
}

// comandoEditarMov atualiza quantidade e/ou motivo de uma movimentação:
//
//	editar-mov 3f1c2a4b 25 contagem revisada
func (p *Painel) comandoEditarMov(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(p.saida, "uso: editar-mov <id> <qtd> [motivo...]")
		return
	}
	id, ok := p.encontrarMovimentacao(args[0])
	if !ok {
		fmt.Fprintln(p.saida, "movimentação não encontrada")
		return
	}
	quantidade, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(p.saida, "quantidade inválida")
		return
	}

	patch := domain.AtualizacaoMovimentacao{Quantidade: &quantidade}
	if len(args) > 2 {
		motivo := strings.Join(args[2:], " ")
		patch.Motivo = &motivo
	}
	if _, err := p.svc.AtualizarMovimentacao(ctx, id, patch); err != nil {
		fmt.Fprintln(p.saida, err.Error())
		return
	}
	p.Render()
}

func (p *Painel) comandoRelatorio(arquivo string) {
	f, err := os.Create(arquivo)
	if err != nil {
		fmt.Fprintf(p.saida, "não foi possível criar %s: %v\n", arquivo, err)
		return
	}
	defer f.Close()

	if err := p.GerarRelatorio(f); err != nil {
		fmt.Fprintln(p.saida, err.Error())
		os.Remove(arquivo)
		return
	}
	fmt.Fprintf(p.saida, "relatório gravado em %s\n", arquivo)
}

// encontrarProduto resolve SKU ou ID (aceitando prefixo de ID) no catálogo local.
func (p *Painel) encontrarProduto(chave string) (domain.Produto, bool) {
	estado := p.svc.Estado()
	for _, produto := range estado.Produtos {
		if strings.EqualFold(produto.SKU, chave) || produto.ID == chave || strings.HasPrefix(produto.ID, chave) {
			return produto, true
		}
	}
	return domain.Produto{}, false
}

// encontrarMovimentacao resolve um ID (ou prefixo exibido na tabela).
func (p *Painel) encontrarMovimentacao(chave string) (string, bool) {
	estado := p.svc.Estado()
	for _, m := range estado.Movimentacoes {
		if m.ID == chave || strings.HasPrefix(m.ID, chave) {
			return m.ID, true
		}
	}
	return "", false
}

// juntarPares reagrupa args para que valores com espaço funcionem:
// ["nome=Parafuso", "8mm", "qtd=120"] vira ["nome=Parafuso 8mm", "qtd=120"].
func juntarPares(args []string) []string {
	var pares []string
	for _, arg := range args {
		if strings.Contains(arg, "=") || len(pares) == 0 {
			pares = append(pares, arg)
			continue
		}
		pares[len(pares)-1] += " " + arg
	}
	return pares
}

func (p *Painel) imprimirAjuda() {
	fmt.Fprint(p.saida, `comandos:
  estoque | movimentacoes        troca a visão
  buscar <termo>                 busca (com debounce) por nome, SKU ou categoria
  categoria [nome]               filtra por categoria (vazio limpa)
  abaixo                         alterna filtro "abaixo do mínimo"
  prioritarios                   alterna filtro de prioritários
  pagina <n> | proxima | anterior  navegação de páginas
  prioridade <sku|id>            alterna a flag de prioridade (otimista)
  criar <nome> | <qtd> [| cat | min | valor]
  editar <sku|id> campo=valor [...]
  remover-produto <sku|id>
  mover <sku|id> <entrada|saida|ajuste> <qtd> [motivo...]
  editar-mov <id> <qtd> [motivo...]
  remover-mov <id>               (ajustes não podem ser removidos)
  relatorio <arquivo.pdf>        PDF de reposição (abaixo do mínimo)
  recarregar                     refaz a carga em duas fases
  sair
`)
}
