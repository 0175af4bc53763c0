package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// Client é o wrapper fino sobre net/http usado para falar com a API de
// estoque. Não há retry nem backoff: cada falha é terminal por requisição,
// e cabe à camada de serviço decidir o que fazer com ela.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// New cria um cliente apontando para a baseURL da API (e.g., "http://localhost:8080").
func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// Get executa GET em path com a query informada, decodificando a resposta em out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post executa POST em path com body JSON, decodificando a resposta em out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Patch executa PATCH em path com body JSON, decodificando a resposta em out.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete executa DELETE em path. out pode ser nil quando o corpo é ignorado.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do monta e executa a requisição, traduzindo falhas para a taxonomia apperror.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("Falha ao serializar o payload da requisição.", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return apperror.NewInternalError("Falha ao montar a requisição HTTP.", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Cada requisição carrega um identificador próprio para correlação nos logs
	// (do painel e do servidor remoto).
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(fmt.Sprintf("Falha de rede em %s %s", method, path), err)
		return apperror.NewNetworkError(fmt.Sprintf("%s %s falhou", method, path), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Requisição à API concluída.", map[string]interface{}{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		// Resposta ignorada (e.g., DELETE /api/produtos/{id}).
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewInternalError("Falha ao decodificar a resposta da API.", err)
	}
	return nil
}

// decodeError tenta extrair o ErrorResponse padronizado do corpo; se o corpo
// não estiver nesse formato, o status HTTP sozinho dita o erro tipado.
func (c *Client) decodeError(resp *http.Response) error {
	var apiErr domain.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		return apperror.NewAPIError(resp.StatusCode, apiErr.Message)
	}
	return apperror.NewAPIError(resp.StatusCode, http.StatusText(resp.StatusCode))
}
