package domain

import (
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func ParseFrequency(value string) (Frequency, error) {
	switch Frequency(value) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return Frequency(value), nil
	default:
		return "", NewInvalidValueError("aggregation_frequency", value, "expected daily, weekly or monthly")
	}
}

// Truncate retorna o início do período que contém a data.
// Semanas começam na segunda-feira e meses no dia 1.
func (f Frequency) Truncate(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	switch f {
	case FrequencyWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case FrequencyMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

// Next retorna o início do período seguinte
func (f Frequency) Next(periodStart time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return periodStart.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return periodStart.AddDate(0, 1, 0)
	default:
		return periodStart.AddDate(0, 0, 1)
	}
}

// StepDays é a largura nominal do período em dias
func (f Frequency) StepDays() float64 {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 365.25 / 12
	default:
		return 1
	}
}

type Point struct {
	PeriodStart time.Time `json:"period_start"`
	Value       float64   `json:"value"`
}

// TimeSeries tem períodos estritamente crescentes, um por bucket
type TimeSeries struct {
	Frequency Frequency `json:"frequency"`
	Points    []Point   `json:"points"`
}

func (s TimeSeries) Len() int {
	return len(s.Points)
}

func (s TimeSeries) Last() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

type ForecastPoint struct {
	PeriodStart time.Time `json:"period_start"`
	Value       float64   `json:"value"`
	Lower       float64   `json:"lower"`
	Upper       float64   `json:"upper"`
}

// Forecast contém apenas períodos posteriores ao último observado
type Forecast struct {
	Mode          string          `json:"mode"`
	Frequency     Frequency       `json:"frequency"`
	Points        []ForecastPoint `json:"points"`
	Seasonalities []string        `json:"seasonalities,omitempty"`
}

// Series descarta a banda de incerteza
func (f Forecast) Series() TimeSeries {
	points := make([]Point, len(f.Points))
	for i, point := range f.Points {
		points[i] = Point{PeriodStart: point.PeriodStart, Value: point.Value}
	}
	return TimeSeries{Frequency: f.Frequency, Points: points}
}

type SeriesTag string

const (
	TagActual   SeriesTag = "Actual"
	TagForecast SeriesTag = "Forecast"
)

type TaggedPoint struct {
	PeriodStart time.Time `json:"period_start"`
	Value       float64   `json:"value"`
	Tag         SeriesTag `json:"type"`
}

// CombineSeries concatena o histórico (Actual) com a previsão (Forecast)
func CombineSeries(history TimeSeries, forecast Forecast) []TaggedPoint {
	combined := make([]TaggedPoint, 0, len(history.Points)+len(forecast.Points))
	for _, point := range history.Points {
		combined = append(combined, TaggedPoint{PeriodStart: point.PeriodStart, Value: point.Value, Tag: TagActual})
	}
	for _, point := range forecast.Points {
		combined = append(combined, TaggedPoint{PeriodStart: point.PeriodStart, Value: point.Value, Tag: TagForecast})
	}
	return combined
}

func FilterByTag(points []TaggedPoint, tag SeriesTag) []Point {
	filtered := make([]Point, 0, len(points))
	for _, point := range points {
		if point.Tag == tag {
			filtered = append(filtered, Point{PeriodStart: point.PeriodStart, Value: point.Value})
		}
	}
	return filtered
}

type ForecastSummary struct {
	Total      float64   `json:"total"`
	Mean       float64   `json:"mean"`
	PeakPeriod time.Time `json:"peak_period"`
	PeakValue  float64   `json:"peak_value"`
}

type ForecastResult struct {
	History  TimeSeries      `json:"history"`
	Forecast Forecast        `json:"forecast"`
	Combined []TaggedPoint   `json:"combined"`
	Summary  ForecastSummary `json:"summary"`
}
