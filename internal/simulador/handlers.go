package simulador

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// Handler agrupa os handlers HTTP do simulador, expondo o mesmo contrato da
// API de estoque real que o painel consome.
type Handler struct {
	Store  *Store
	Logger logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Store e o Logger.
func NewHandler(store *Store, log logger.Logger) *Handler {
	return &Handler{Store: store, Logger: log}
}

// responder processa erros e envia respostas padronizadas ao cliente.
func (h *Handler) responder(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category),
			map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// --- /api/produtos ---

// ProdutosHandler atende GET (listagem paginada estilo json-server, via
// _page/_limit) e POST (criação) em /api/produtos.
func (h *Handler) ProdutosHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		pagina := intQuery(r, "_page", 1)
		limite := intQuery(r, "_limit", 10)
		h.responder(w, r, h.Store.ListarProdutos(pagina, limite), nil, http.StatusOK)

	case http.MethodPost:
		var novo domain.NovoProduto
		if err := json.NewDecoder(r.Body).Decode(&novo); err != nil {
			h.responder(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
			return
		}
		if strings.TrimSpace(novo.Nome) == "" {
			h.responder(w, r, nil, apperror.NewValidationError("O nome do produto é obrigatório."), 0)
			return
		}
		if novo.Quantidade < 0 {
			h.responder(w, r, nil, apperror.NewValidationError("A quantidade inicial não pode ser negativa."), 0)
			return
		}
		h.responder(w, r, h.Store.CriarProduto(novo), nil, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// ProdutoPorIDHandler atende PATCH/PUT (edição parcial), DELETE e GET em
// /api/produtos/{id}.
func (h *Handler) ProdutoPorIDHandler(w http.ResponseWriter, r *http.Request) {
	id := ultimoSegmento(r.URL.Path)
	if id == "" {
		h.responder(w, r, nil, apperror.NewValidationError("ID do produto é obrigatório."), 0)
		return
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var patch domain.AtualizacaoProduto
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.responder(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
			return
		}
		atualizado, err := h.Store.AtualizarProduto(id, patch)
		h.responder(w, r, atualizado, err, http.StatusOK)

	case http.MethodDelete:
		err := h.Store.RemoverProduto(id)
		h.responder(w, r, nil, err, http.StatusNoContent)

	case http.MethodGet:
		produtos := h.Store.ListarProdutos(1, 1<<30)
		for _, p := range produtos {
			if p.ID == id {
				h.responder(w, r, p, nil, http.StatusOK)
				return
			}
		}
		h.responder(w, r, nil, apperror.NewNotFoundError(fmt.Sprintf("Produto %s não existe.", id)), 0)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// --- /api/movimentacoes ---

// MovimentacoesHandler atende GET (histórico) e POST (registro) em
// /api/movimentacoes. O POST retorna a movimentação criada e o produto com o
// saldo recalculado, como o painel espera.
func (h *Handler) MovimentacoesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.responder(w, r, h.Store.ListarMovimentacoes(), nil, http.StatusOK)

	case http.MethodPost:
		var nova domain.NovaMovimentacao
		if err := json.NewDecoder(r.Body).Decode(&nova); err != nil {
			h.responder(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
			return
		}
		m, p, err := h.Store.CriarMovimentacao(nova)
		if err != nil {
			h.responder(w, r, nil, err, 0)
			return
		}
		h.responder(w, r, domain.MovimentacaoCriada{Movimentacao: m, Produto: p}, nil, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// MovimentacaoPorIDHandler atende PATCH e DELETE em /api/movimentacoes/{id}.
func (h *Handler) MovimentacaoPorIDHandler(w http.ResponseWriter, r *http.Request) {
	id := ultimoSegmento(r.URL.Path)
	if id == "" {
		h.responder(w, r, nil, apperror.NewValidationError("ID da movimentação é obrigatório."), 0)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var patch domain.AtualizacaoMovimentacao
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.responder(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
			return
		}
		m, p, err := h.Store.AtualizarMovimentacao(id, patch)
		if err != nil {
			h.responder(w, r, nil, err, 0)
			return
		}
		h.responder(w, r, domain.MovimentacaoAtualizada{Movimentacao: m, Produto: p}, nil, http.StatusOK)

	case http.MethodDelete:
		p, err := h.Store.RemoverMovimentacao(id)
		if err != nil {
			h.responder(w, r, nil, err, 0)
			return
		}
		h.responder(w, r, domain.MovimentacaoRemovida{Produto: p}, nil, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// --- Auxiliares ---

func intQuery(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}

func ultimoSegmento(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
