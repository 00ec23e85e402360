package forecasting

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func buildSeries(frequency domain.Frequency, start time.Time, values ...float64) domain.TimeSeries {
	series := domain.TimeSeries{Frequency: frequency}
	period := start
	for _, value := range values {
		series.Points = append(series.Points, domain.Point{PeriodStart: period, Value: value})
		period = frequency.Next(period)
	}
	return series
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("Seasonal")
	require.NoError(t, err)
	assert.Equal(t, ModeSeasonal, mode)

	_, err = ParseMode("arima")
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = New(Mode("arima"))
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestSeriesFrequency(t *testing.T) {
	assert.Equal(t, domain.FrequencyDaily, SeriesFrequency(ModeSeasonal, domain.FrequencyMonthly))
	assert.Equal(t, domain.FrequencyDaily, SeriesFrequency(ModeSeasonal, domain.FrequencyWeekly))
	assert.Equal(t, domain.FrequencyMonthly, SeriesFrequency(ModeTrend, domain.FrequencyMonthly))
}

func TestForecasters_Validacao(t *testing.T) {
	tests := []struct {
		name    string
		series  domain.TimeSeries
		horizon int
		err     error
	}{
		{
			name:    "Um único período é insuficiente",
			series:  buildSeries(domain.FrequencyMonthly, day(2024, 1, 1), 100),
			horizon: 3,
			err:     domain.ErrInsufficientData,
		},
		{
			name:    "Série vazia é insuficiente",
			series:  domain.TimeSeries{Frequency: domain.FrequencyDaily},
			horizon: 3,
			err:     domain.ErrInsufficientData,
		},
		{
			name:    "Horizonte zero é inválido",
			series:  buildSeries(domain.FrequencyMonthly, day(2024, 1, 1), 100, 200),
			horizon: 0,
			err:     domain.ErrInvalidValue,
		},
	}

	for _, mode := range []Mode{ModeTrend, ModeSeasonal} {
		forecaster, err := New(mode)
		require.NoError(t, err)

		for _, tt := range tests {
			t.Run(string(mode)+" - "+tt.name, func(t *testing.T) {
				_, err := forecaster.Forecast(tt.series, tt.horizon)
				assert.ErrorIs(t, err, tt.err)
			})
		}
	}
}

func TestTrendForecaster(t *testing.T) {
	tests := []struct {
		name     string
		series   domain.TimeSeries
		horizon  int
		validate func(t *testing.T, forecast *domain.Forecast)
	}{
		{
			name:    "Dois meses projetam reta",
			series:  buildSeries(domain.FrequencyMonthly, day(2024, 1, 1), 100, 200),
			horizon: 3,
			validate: func(t *testing.T, forecast *domain.Forecast) {
				require.Len(t, forecast.Points, 3)
				assert.Equal(t, day(2024, 3, 1), forecast.Points[0].PeriodStart)
				assert.InDelta(t, 300.0, forecast.Points[0].Value, 1e-9)
				assert.InDelta(t, 400.0, forecast.Points[1].Value, 1e-9)
				assert.InDelta(t, 500.0, forecast.Points[2].Value, 1e-9)
				assert.Equal(t, forecast.Points[2].Value, forecast.Points[2].Lower)
				assert.Equal(t, forecast.Points[2].Value, forecast.Points[2].Upper)
			},
		},
		{
			name:    "Tendência de queda não é truncada em zero",
			series:  buildSeries(domain.FrequencyWeekly, day(2024, 1, 1), 30, 20, 10),
			horizon: 3,
			validate: func(t *testing.T, forecast *domain.Forecast) {
				assert.InDelta(t, 0.0, forecast.Points[0].Value, 1e-9)
				assert.InDelta(t, -20.0, forecast.Points[2].Value, 1e-9)
				assert.Equal(t, day(2024, 1, 22), forecast.Points[0].PeriodStart)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast, err := NewTrendForecaster().Forecast(tt.series, tt.horizon)
			require.NoError(t, err)
			assert.Equal(t, string(ModeTrend), forecast.Mode)
			tt.validate(t, forecast)
		})
	}
}

func TestSeasonalForecaster(t *testing.T) {
	weekly := []float64{120, 80, 90, 100, 110, 150, 60}

	tests := []struct {
		name     string
		series   func() domain.TimeSeries
		horizon  int
		validate func(t *testing.T, forecast *domain.Forecast)
	}{
		{
			name: "Histórico curto cai para tendência pura",
			series: func() domain.TimeSeries {
				return buildSeries(domain.FrequencyDaily, day(2024, 1, 1), 10, 12, 14)
			},
			horizon: 2,
			validate: func(t *testing.T, forecast *domain.Forecast) {
				assert.Empty(t, forecast.Seasonalities)
				assert.InDelta(t, 16.0, forecast.Points[0].Value, 1e-6)
				assert.InDelta(t, 18.0, forecast.Points[1].Value, 1e-6)
			},
		},
		{
			name: "Série linear diária mantém a reta com sazonalidade semanal ativa",
			series: func() domain.TimeSeries {
				values := make([]float64, 60)
				for i := range values {
					values[i] = 10 + 2*float64(i)
				}
				return buildSeries(domain.FrequencyDaily, day(2024, 1, 1), values...)
			},
			horizon: 5,
			validate: func(t *testing.T, forecast *domain.Forecast) {
				assert.Equal(t, []string{"weekly"}, forecast.Seasonalities)
				for i, point := range forecast.Points {
					assert.InDelta(t, 10+2*float64(60+i), point.Value, 1e-6)
					assert.InDelta(t, point.Value, point.Lower, 1e-6)
				}
			},
		},
		{
			name: "Padrão semanal é reproduzido",
			series: func() domain.TimeSeries {
				values := make([]float64, 56)
				for i := range values {
					values[i] = weekly[i%7]
				}
				return buildSeries(domain.FrequencyDaily, day(2024, 1, 1), values...)
			},
			horizon: 14,
			validate: func(t *testing.T, forecast *domain.Forecast) {
				for i, point := range forecast.Points {
					assert.InDelta(t, weekly[(56+i)%7], point.Value, 1.0)
				}
			},
		},
		{
			name: "Série mensal curta não ativa sazonalidade anual",
			series: func() domain.TimeSeries {
				return buildSeries(domain.FrequencyMonthly, day(2023, 1, 1), 10, 30, 20, 50, 40, 60, 55, 70, 65, 80, 75, 90)
			},
			horizon: 3,
			validate: func(t *testing.T, forecast *domain.Forecast) {
				assert.Empty(t, forecast.Seasonalities)
				assert.Equal(t, day(2024, 1, 1), forecast.Points[0].PeriodStart)
				assert.Less(t, forecast.Points[0].Lower, forecast.Points[0].Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast, err := NewSeasonalForecaster().Forecast(tt.series(), tt.horizon)
			require.NoError(t, err)
			assert.Equal(t, string(ModeSeasonal), forecast.Mode)
			require.Len(t, forecast.Points, tt.horizon)
			tt.validate(t, forecast)
		})
	}
}

func TestSeasonalForecaster_BandaCresceComHorizonte(t *testing.T) {
	series := buildSeries(domain.FrequencyMonthly, day(2024, 1, 1), 10, 25, 15, 40, 30)

	forecast, err := NewSeasonalForecaster().Forecast(series, 4)
	require.NoError(t, err)

	for i := 1; i < len(forecast.Points); i++ {
		previous := forecast.Points[i-1].Upper - forecast.Points[i-1].Value
		current := forecast.Points[i].Upper - forecast.Points[i].Value
		assert.Greater(t, current, previous)
	}
}

func TestSummarize(t *testing.T) {
	forecast := domain.Forecast{Points: []domain.ForecastPoint{
		{PeriodStart: day(2024, 1, 1), Value: 10},
		{PeriodStart: day(2024, 2, 1), Value: 40},
		{PeriodStart: day(2024, 3, 1), Value: 10},
	}}

	summary := Summarize(forecast)

	assert.Equal(t, 60.0, summary.Total)
	assert.Equal(t, 20.0, summary.Mean)
	assert.Equal(t, day(2024, 2, 1), summary.PeakPeriod)
	assert.Equal(t, domain.ForecastSummary{}, Summarize(domain.Forecast{}))
}

func TestForecast_PropriedadesDoHorizonte(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	frequencies := []domain.Frequency{domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly}

	properties.Property("previsão tem exatamente h períodos contíguos após o último", prop.ForAll(
		func(values []float64, horizon int, frequencyIndex int, seasonal bool) bool {
			frequency := frequencies[frequencyIndex]
			series := buildSeries(frequency, day(2023, 1, 2), values...)

			var forecaster Forecaster = NewTrendForecaster()
			if seasonal {
				forecaster = NewSeasonalForecaster()
			}

			forecast, err := forecaster.Forecast(series, horizon)
			if err != nil || len(forecast.Points) != horizon {
				return false
			}

			previous := series.Points[len(series.Points)-1].PeriodStart
			for _, point := range forecast.Points {
				if !point.PeriodStart.Equal(frequency.Next(previous)) {
					return false
				}
				if point.Lower > point.Value || point.Value > point.Upper || math.IsNaN(point.Value) {
					return false
				}
				previous = point.PeriodStart
			}
			return true
		},
		gen.SliceOfN(40, gen.Float64Range(0, 10000)),
		gen.IntRange(1, 24),
		gen.IntRange(0, 2),
		gen.Bool(),
	))

	properties.Property("histórico e previsão se separam pelo rótulo", prop.ForAll(
		func(values []float64, horizon int) bool {
			series := buildSeries(domain.FrequencyMonthly, day(2022, 1, 1), values...)
			forecast, err := NewTrendForecaster().Forecast(series, horizon)
			if err != nil {
				return false
			}

			combined := domain.CombineSeries(series, *forecast)
			actual := domain.FilterByTag(combined, domain.TagActual)
			projected := domain.FilterByTag(combined, domain.TagForecast)

			return assert.ObjectsAreEqual(series.Points, actual) &&
				assert.ObjectsAreEqual(forecast.Series().Points, projected)
		},
		gen.SliceOfN(12, gen.Float64Range(0, 500)),
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}

func TestNew_ErroTipado(t *testing.T) {
	_, err := NewTrendForecaster().Forecast(buildSeries(domain.FrequencyDaily, day(2024, 1, 1), 1), 1)

	var insufficient *domain.InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Required)
	assert.Equal(t, 1, insufficient.Found)
}
