package simulador

import (
	"net/http"

	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP do simulador.
// Recebe o Handler já inicializado por injeção de dependências.
func NewRouter(h *Handler, log logger.Logger) http.Handler {

	// ServeMux padrão do net/http; o contrato é pequeno o bastante para
	// dispensar um mux de terceiros.
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/ping", PingHandler)

	// Produtos
	mux.HandleFunc("/api/produtos", h.ProdutosHandler)
	mux.HandleFunc("/api/produtos/", h.ProdutoPorIDHandler)

	// Movimentações
	mux.HandleFunc("/api/movimentacoes", h.MovimentacoesHandler)
	mux.HandleFunc("/api/movimentacoes/", h.MovimentacaoPorIDHandler)

	return middleware.RequestLogger(log)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
