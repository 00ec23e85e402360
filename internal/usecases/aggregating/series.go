package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

// PeriodSeries soma a medida em buckets da frequência pedida, em ordem cronológica.
// Períodos sem linhas entre o primeiro e o último observados entram com valor zero.
func PeriodSeries(table *domain.Table, dateColumn, measure string, frequency domain.Frequency) (domain.TimeSeries, error) {
	series := domain.TimeSeries{Frequency: frequency, Points: []domain.Point{}}

	if !table.HasColumn(dateColumn) {
		return series, domain.NewMissingColumnError(dateColumn)
	}
	if !table.HasColumn(measure) {
		return series, domain.NewMissingColumnError(measure)
	}

	buckets := make(map[time.Time]float64)
	for row := 0; row < table.Len(); row++ {
		date, ok := table.Value(row, dateColumn).AsTime()
		if !ok {
			continue
		}

		period := frequency.Truncate(date.UTC())
		value, _ := table.Value(row, measure).AsNumber()
		buckets[period] += value
	}

	if len(buckets) == 0 {
		return series, nil
	}

	periods := make([]time.Time, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	last := periods[len(periods)-1]
	for period := periods[0]; !period.After(last); period = frequency.Next(period) {
		series.Points = append(series.Points, domain.Point{PeriodStart: period, Value: buckets[period]})
	}

	return series, nil
}
