// Package forecasting projeta períodos futuros a partir de uma série temporal
package forecasting

import (
	"strings"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/aggregating"
)

type Mode string

const (
	ModeTrend    Mode = "trend"
	ModeSeasonal Mode = "seasonal"
)

// minPeriods é o mínimo de períodos distintos para qualquer ajuste
const minPeriods = 2

// Forecaster produz uma previsão contígua após o último período da série
type Forecaster interface {
	Forecast(series domain.TimeSeries, horizon int) (*domain.Forecast, error)
}

func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(value)) {
	case ModeTrend:
		return ModeTrend, nil
	case ModeSeasonal:
		return ModeSeasonal, nil
	default:
		return "", domain.NewInvalidValueError("forecast_mode", value, "expected trend or seasonal")
	}
}

// SeriesFrequency é a granularidade da série usada pelo modo.
// O modo sazonal trabalha sempre sobre vendas diárias, com banda por dia.
func SeriesFrequency(mode Mode, requested domain.Frequency) domain.Frequency {
	if mode == ModeSeasonal {
		return domain.FrequencyDaily
	}
	return requested
}

// New retorna o Forecaster do modo pedido
func New(mode Mode) (Forecaster, error) {
	switch mode {
	case ModeTrend:
		return NewTrendForecaster(), nil
	case ModeSeasonal:
		return NewSeasonalForecaster(), nil
	default:
		return nil, domain.NewInvalidValueError("forecast_mode", mode, "expected trend or seasonal")
	}
}

// BuildSeries soma a medida em períodos da frequência, com períodos vazios zerados
func BuildSeries(table *domain.Table, dateColumn, measure string, frequency domain.Frequency) (domain.TimeSeries, error) {
	return aggregating.PeriodSeries(table, dateColumn, measure, frequency)
}

func validate(series domain.TimeSeries, horizon int) error {
	if horizon < 1 {
		return domain.NewInvalidValueError("forecast_horizon", horizon, "must be at least 1")
	}
	if series.Len() < minPeriods {
		return domain.NewInsufficientDataError("forecast needs at least 2 distinct periods", minPeriods, series.Len())
	}
	return nil
}

// Summarize calcula total, média e pico da previsão
func Summarize(forecast domain.Forecast) domain.ForecastSummary {
	summary := domain.ForecastSummary{}
	if len(forecast.Points) == 0 {
		return summary
	}

	summary.PeakPeriod = forecast.Points[0].PeriodStart
	summary.PeakValue = forecast.Points[0].Value
	for _, point := range forecast.Points {
		summary.Total += point.Value
		if point.Value > summary.PeakValue {
			summary.PeakValue = point.Value
			summary.PeakPeriod = point.PeriodStart
		}
	}
	summary.Mean = summary.Total / float64(len(forecast.Points))

	return summary
}
