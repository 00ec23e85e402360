package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-intelligence-api/pkg/metrics"
)

// Instrument mede a rota pelo padrão registrado, não pelo caminho concreto
func Instrument(m *metrics.Metrics, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			srw := newStatusResponseWriter(w)

			next.ServeHTTP(srw, r)

			m.RecordRequest(route, r.Method, srw.statusCode, started)
		})
	}
}
