package forecasting

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"gonum.org/v1/gonum/mat"
)

// Seasonality é um componente periódico representado por uma série de Fourier
type Seasonality struct {
	Name   string
	Period float64 // em dias
	Order  int
}

var defaultSeasonalities = []Seasonality{
	{Name: "weekly", Period: 7, Order: 3},
	{Name: "yearly", Period: 365.25, Order: 10},
	{Name: "daily", Period: 1, Order: 4},
}

const (
	// quantil normal de 90%, para intervalo de 80%
	intervalZ = 1.2815515655446004

	defaultRidge = 0.1
)

// SeasonalForecaster ajusta tendência linear mais componentes sazonais aditivos.
// Componentes sem histórico suficiente são desligados, caindo para tendência pura.
type SeasonalForecaster struct {
	seasonalities []Seasonality
	ridge         float64
}

func NewSeasonalForecaster() *SeasonalForecaster {
	return &SeasonalForecaster{
		seasonalities: defaultSeasonalities,
		ridge:         defaultRidge,
	}
}

type seasonalModel struct {
	origin  time.Time
	scale   float64
	active  []Seasonality
	coefs   []float64
	sigma   float64
	samples int
}

func (f *SeasonalForecaster) Forecast(series domain.TimeSeries, horizon int) (*domain.Forecast, error) {
	if err := validate(series, horizon); err != nil {
		return nil, err
	}

	model, err := f.fit(series, f.activeSeasonalities(series))
	if err != nil {
		logrus.WithError(err).Warn("forecast: ajuste sazonal falhou, usando apenas tendência")
		model, err = f.fit(series, nil)
		if err != nil {
			return nil, errors.Wrap(err, "fitting trend-only model")
		}
	}

	forecast := &domain.Forecast{
		Mode:      string(ModeSeasonal),
		Frequency: series.Frequency,
		Points:    make([]domain.ForecastPoint, 0, horizon),
	}
	for _, seasonality := range model.active {
		forecast.Seasonalities = append(forecast.Seasonalities, seasonality.Name)
	}

	period := series.Points[series.Len()-1].PeriodStart
	for step := 1; step <= horizon; step++ {
		period = series.Frequency.Next(period)
		value := model.predict(period)
		band := intervalZ * model.sigma * math.Sqrt(1+float64(step)/float64(model.samples))

		forecast.Points = append(forecast.Points, domain.ForecastPoint{
			PeriodStart: period,
			Value:       value,
			Lower:       value - band,
			Upper:       value + band,
		})
	}

	return forecast, nil
}

// activeSeasonalities mantém componentes cujo período excede o passo da série,
// com ao menos dois ciclos de histórico e amostras suficientes para os parâmetros
func (f *SeasonalForecaster) activeSeasonalities(series domain.TimeSeries) []Seasonality {
	step := series.Frequency.StepDays()
	first := series.Points[0].PeriodStart
	last := series.Points[series.Len()-1].PeriodStart
	span := daysBetween(first, last) + step

	params := 2
	active := make([]Seasonality, 0, len(f.seasonalities))
	for _, seasonality := range f.seasonalities {
		if seasonality.Period <= step || span < 2*seasonality.Period {
			continue
		}

		order := seasonality.Order
		if nyquist := int(seasonality.Period / (2 * step)); nyquist < order {
			order = nyquist
		}
		if order < 1 {
			continue
		}

		needed := 2 * order
		if series.Len() < 2*(params+needed) {
			continue
		}

		params += needed
		active = append(active, Seasonality{Name: seasonality.Name, Period: seasonality.Period, Order: order})
	}

	return active
}

func (f *SeasonalForecaster) fit(series domain.TimeSeries, active []Seasonality) (*seasonalModel, error) {
	origin := series.Points[0].PeriodStart
	scale := daysBetween(origin, series.Points[series.Len()-1].PeriodStart)
	if scale <= 0 {
		scale = 1
	}

	model := &seasonalModel{
		origin:  origin,
		scale:   scale,
		active:  active,
		samples: series.Len(),
	}

	rows := make([][]float64, series.Len())
	values := make([]float64, series.Len())
	for i, point := range series.Points {
		rows[i] = model.features(point.PeriodStart)
		values[i] = point.Value
	}

	coefs, err := ridgeFit(rows, values, f.ridge, 2)
	if err != nil {
		return nil, err
	}
	model.coefs = coefs

	sse := 0.0
	for i, row := range rows {
		residual := values[i] - dot(coefs, row)
		sse += residual * residual
	}
	dof := series.Len() - len(coefs)
	if dof < 1 {
		dof = 1
	}
	model.sigma = math.Sqrt(sse / float64(dof))

	logrus.WithFields(logrus.Fields{
		"periods":       series.Len(),
		"seasonalities": len(active),
		"sigma":         model.sigma,
	}).Debug("forecast: modelo sazonal ajustado")

	return model, nil
}

// features monta [1, t, sin/cos de cada componente] para a data
func (m *seasonalModel) features(date time.Time) []float64 {
	t := daysBetween(m.origin, date)
	row := []float64{1, t / m.scale}
	for _, seasonality := range m.active {
		for k := 1; k <= seasonality.Order; k++ {
			angle := 2 * math.Pi * float64(k) * t / seasonality.Period
			row = append(row, math.Sin(angle), math.Cos(angle))
		}
	}
	return row
}

func (m *seasonalModel) predict(date time.Time) float64 {
	return dot(m.coefs, m.features(date))
}

// ridgeFit resolve (XᵀX + λI)β = Xᵀy sem penalizar as primeiras free colunas
func ridgeFit(rows [][]float64, values []float64, lambda float64, free int) ([]float64, error) {
	n, p := len(rows), len(rows[0])

	x := mat.NewDense(n, p, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}

	var gram mat.Dense
	gram.Mul(x.T(), x)
	for j := free; j < p; j++ {
		gram.Set(j, j, gram.At(j, j)+lambda)
	}

	var moment mat.VecDense
	moment.MulVec(x.T(), mat.NewVecDense(n, values))

	var beta mat.VecDense
	if err := beta.SolveVec(&gram, &moment); err != nil {
		return nil, errors.Wrap(err, "solving normal equations")
	}

	coefs := make([]float64, p)
	for j := range coefs {
		coefs[j] = beta.AtVec(j)
	}
	return coefs, nil
}

func dot(a, b []float64) float64 {
	total := 0.0
	for i := range a {
		total += a[i] * b[i]
	}
	return total
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}
