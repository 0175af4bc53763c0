package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"goestoque/internal/pkg/logger"
)

// statusRecorder captura o status e o tamanho da resposta para o log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// RequestLogger registra cada requisição atendida pelo simulador, propagando
// o X-Request-Id do cliente (ou gerando um) para correlação nos dois lados.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", requestID)

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			log.Info("Requisição atendida.", map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     recorder.status,
				"bytes":      recorder.bytes,
				"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
				"request_id": requestID,
			})
		})
	}
}
