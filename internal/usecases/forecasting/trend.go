package forecasting

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// TrendForecaster ajusta uma regressão linear do valor contra o índice do período
type TrendForecaster struct{}

func NewTrendForecaster() *TrendForecaster {
	return &TrendForecaster{}
}

func (f *TrendForecaster) Forecast(series domain.TimeSeries, horizon int) (*domain.Forecast, error) {
	if err := validate(series, horizon); err != nil {
		return nil, err
	}

	n := series.Len()
	indexes := make([]float64, n)
	values := make([]float64, n)
	for i, point := range series.Points {
		indexes[i] = float64(i)
		values[i] = point.Value
	}

	intercept, slope := stat.LinearRegression(indexes, values, nil, false)

	logrus.WithFields(logrus.Fields{
		"periods":   n,
		"horizon":   horizon,
		"intercept": intercept,
		"slope":     slope,
	}).Debug("forecast: tendência ajustada")

	forecast := &domain.Forecast{
		Mode:      string(ModeTrend),
		Frequency: series.Frequency,
		Points:    make([]domain.ForecastPoint, 0, horizon),
	}

	period := series.Points[n-1].PeriodStart
	for step := 0; step < horizon; step++ {
		period = series.Frequency.Next(period)
		value := intercept + slope*float64(n+step)
		forecast.Points = append(forecast.Points, domain.ForecastPoint{
			PeriodStart: period,
			Value:       value,
			Lower:       value,
			Upper:       value,
		})
	}

	return forecast, nil
}
