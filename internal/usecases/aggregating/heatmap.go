package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

// Heatmap soma a medida por dia do mês e mês, preenchendo com zero
func Heatmap(table *domain.Table, dateColumn, measure string) (domain.Heatmap, error) {
	heatmap := domain.Heatmap{Days: []int{}, Months: []string{}, Cells: [][]float64{}}

	if !table.HasColumn(dateColumn) {
		return heatmap, domain.NewMissingColumnError(dateColumn)
	}
	if !table.HasColumn(measure) {
		return heatmap, domain.NewMissingColumnError(measure)
	}

	type cell struct {
		day   int
		month time.Month
	}
	sums := make(map[cell]float64)
	days := make(map[int]struct{})
	months := make(map[time.Month]struct{})

	for row := 0; row < table.Len(); row++ {
		date, ok := table.Value(row, dateColumn).AsTime()
		if !ok {
			continue
		}
		value, _ := table.Value(row, measure).AsNumber()

		key := cell{day: date.Day(), month: date.Month()}
		sums[key] += value
		days[key.day] = struct{}{}
		months[key.month] = struct{}{}
	}

	for day := range days {
		heatmap.Days = append(heatmap.Days, day)
	}
	sort.Ints(heatmap.Days)

	orderedMonths := make([]time.Month, 0, len(months))
	for month := range months {
		orderedMonths = append(orderedMonths, month)
	}
	sort.Slice(orderedMonths, func(i, j int) bool { return orderedMonths[i] < orderedMonths[j] })

	for _, month := range orderedMonths {
		heatmap.Months = append(heatmap.Months, month.String()[:3])
	}

	for _, day := range heatmap.Days {
		row := make([]float64, len(orderedMonths))
		for i, month := range orderedMonths {
			row[i] = sums[cell{day: day, month: month}]
		}
		heatmap.Cells = append(heatmap.Cells, row)
	}

	return heatmap, nil
}
