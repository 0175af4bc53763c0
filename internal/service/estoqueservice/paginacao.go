package estoqueservice

import "goestoque/internal/domain"

// TotalPaginas calcula ceil(total/tamanho). Lista vazia tem zero páginas.
func TotalPaginas(total, tamanho int) int {
	if total <= 0 || tamanho <= 0 {
		return 0
	}
	return (total + tamanho - 1) / tamanho
}

// Pagina recorta a página solicitada (índice 1-based) da lista filtrada.
// Páginas fora de [1, TotalPaginas] retornam nil: a navegação inválida é
// tratada como no-op pelo chamador.
func Pagina(produtos []domain.Produto, pagina, tamanho int) []domain.Produto {
	total := TotalPaginas(len(produtos), tamanho)
	if pagina < 1 || pagina > total {
		return nil
	}

	inicio := (pagina - 1) * tamanho
	fim := inicio + tamanho
	if fim > len(produtos) {
		fim = len(produtos)
	}
	return produtos[inicio:fim]
}
