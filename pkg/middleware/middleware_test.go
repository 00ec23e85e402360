package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-intelligence-api/pkg/log"
	"github.com/vfg2006/sales-intelligence-api/pkg/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func TestCors(t *testing.T) {
	tests := []struct {
		name     string
		origins  []string
		origin   string
		method   string
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:    "Origem liberada recebe cabeçalhos",
			origins: []string{"http://localhost:3000"},
			origin:  "http://localhost:3000",
			method:  http.MethodPost,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, http.StatusCreated, rec.Code)
			},
		},
		{
			name:    "Origem desconhecida segue sem cabeçalhos",
			origins: []string{"http://localhost:3000"},
			origin:  "https://outra.example.com",
			method:  http.MethodGet,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, http.StatusCreated, rec.Code)
			},
		},
		{
			name:    "Curinga libera qualquer origem",
			origins: []string{"*"},
			origin:  "https://painel.example.com",
			method:  http.MethodGet,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "https://painel.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:    "Preflight responde sem chamar o handler",
			origins: []string{"*"},
			origin:  "https://painel.example.com",
			method:  http.MethodOptions,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/analysis", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.origins)(okHandler()).ServeHTTP(rec, req)
			tt.validate(t, rec)
		})
	}
}

func TestLoggingMiddleware_IDDeCorrelacao(t *testing.T) {
	var seen string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(CorrelationHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(CorrelationHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analysis", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}

func TestInstrument(t *testing.T) {
	m := metrics.NewMetrics()
	counter := m.RequestsTotal.WithLabelValues("/v1/analysis/kpis", http.MethodPost, "201")
	before := testutil.ToFloat64(counter)

	handler := Instrument(m, "/v1/analysis/kpis")(okHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/analysis/kpis", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
