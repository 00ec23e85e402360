package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

func validAnalytics() Analytics {
	return Analytics{
		ForecastHorizon:    6,
		ForecastHorizonMin: 1,
		ForecastHorizonMax: 24,
		ForecastMode:       "seasonal",
		ClusterCount:       3,
		ClusterCountMin:    2,
		ClusterCountMax:    6,
		ChurnHighDays:      60,
		ChurnMediumDays:    30,
		Frequency:          "monthly",
		TopN:               10,
	}
}

func TestAnalytics_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Analytics)
		valid  bool
	}{
		{name: "Valores padrão", mutate: func(a *Analytics) {}, valid: true},
		{name: "Horizonte acima do limite", mutate: func(a *Analytics) { a.ForecastHorizon = 25 }},
		{name: "Horizonte zero", mutate: func(a *Analytics) { a.ForecastHorizon = 0 }},
		{name: "Limites de horizonte invertidos", mutate: func(a *Analytics) { a.ForecastHorizonMin = 30 }},
		{name: "Grupos abaixo de dois", mutate: func(a *Analytics) { a.ClusterCountMin = 1; a.ClusterCount = 1 }},
		{name: "Grupos acima do máximo", mutate: func(a *Analytics) { a.ClusterCount = 7 }},
		{name: "Teto de grupos acima de seis", mutate: func(a *Analytics) { a.ClusterCountMax = 8 }},
		{name: "Churn médio igual ao alto", mutate: func(a *Analytics) { a.ChurnMediumDays = 60 }},
		{name: "Frequência desconhecida", mutate: func(a *Analytics) { a.Frequency = "yearly" }},
		{name: "Top N zerado", mutate: func(a *Analytics) { a.TopN = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analytics := validAnalytics()
			tt.mutate(&analytics)

			err := analytics.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidValue)
		})
	}
}

func TestNewConfig_VariaveisDeAmbiente(t *testing.T) {
	t.Setenv("FORECAST_HORIZON", "12")
	t.Setenv("AGGREGATION_FREQUENCY", "weekly")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	config, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, config.Analytics.ForecastHorizon)
	assert.Equal(t, "weekly", config.Analytics.Frequency)
	assert.Equal(t, 3, config.Analytics.ClusterCount)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, config.Server.CORSOrigins)
	assert.Equal(t, int64(50<<20), config.Ingest.MaxUploadBytes())
}
