package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do goestoque.
// Ela permite que o código externo (painel, handlers do simulador) acesse a
// Categoria e o status HTTP sugerido do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido
	Unwrap() error    // Permite encapsular o erro subjacente
}

// --- Tipos de Erro de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
// No cliente, bloqueia a submissão antes de qualquer requisição.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de regra de negócio
// (e.g., saldo insuficiente para uma saída de estoque).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura ---

// InternalError representa falhas inesperadas (rede, serialização, servidor).
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro de transporte HTTP)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro interno (falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewNetworkError é um atalho para criar um InternalError específico de
// falhas de transporte na comunicação com a API de estoque.
func NewNetworkError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (rede): %s", msg, err.Error()), err)
}

// APIError representa uma resposta não-2xx da API de estoque que não se
// encaixa na taxonomia de domínio (e.g., 502 de um proxy intermediário).
// Carrega o status retornado pelo servidor remoto.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string    { return fmt.Sprintf("Erro da API (%d): %s", e.Status, e.Msg) }
func (e *APIError) Category() string { return "API_ERROR" }
func (e *APIError) HTTPStatus() int  { return e.Status }
func (e *APIError) Unwrap() error    { return nil }

// NewAPIError traduz um status HTTP remoto para o erro tipado correspondente.
// Os status conhecidos viram erros de domínio; o restante vira APIError.
func NewAPIError(status int, msg string) AppError {
	switch status {
	case http.StatusBadRequest:
		return NewValidationError(msg)
	case http.StatusNotFound:
		return NewNotFoundError(msg)
	case http.StatusConflict:
		return NewConflictError(msg)
	default:
		return &APIError{Status: status, Msg: msg}
	}
}

// --- Helper para os Handlers do Simulador (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e
// mensagem do corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		// O erro é tipado (ValidationError, NotFoundError, etc.)
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
