package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

// DailySummary agrega vendas, quantidade e pedidos distintos por dia observado
func DailySummary(table *domain.Table, columns KPIColumns) ([]domain.DailyRecord, error) {
	if !table.HasColumn(columns.Date) {
		return nil, domain.NewMissingColumnError(columns.Date)
	}
	if !table.HasColumn(columns.Sales) {
		return nil, domain.NewMissingColumnError(columns.Sales)
	}

	records := make(map[time.Time]*domain.DailyRecord)
	orders := make(map[time.Time]map[string]struct{})
	for row := 0; row < table.Len(); row++ {
		date, ok := table.Value(row, columns.Date).AsTime()
		if !ok {
			continue
		}

		day := domain.FrequencyDaily.Truncate(date.UTC())
		record, exists := records[day]
		if !exists {
			record = &domain.DailyRecord{Date: day}
			records[day] = record
			orders[day] = make(map[string]struct{})
		}

		if sales, ok := table.Value(row, columns.Sales).AsNumber(); ok {
			record.Sales += sales
		}
		if columns.Quantity != "" {
			if quantity, ok := table.Value(row, columns.Quantity).AsNumber(); ok {
				record.Quantity += quantity
			}
		}

		if columns.Order == "" || !table.HasColumn(columns.Order) {
			record.Orders++
			continue
		}
		if value := table.Value(row, columns.Order); !value.IsNull() {
			orders[day][value.Key()] = struct{}{}
		}
	}

	summary := make([]domain.DailyRecord, 0, len(records))
	for day, record := range records {
		if columns.Order != "" && table.HasColumn(columns.Order) {
			record.Orders = len(orders[day])
		}
		summary = append(summary, *record)
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Date.Before(summary[j].Date) })

	return summary, nil
}
