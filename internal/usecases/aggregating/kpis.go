package aggregating

import (
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

// KPIColumns identifica as colunas usadas nos indicadores. Apenas Sales é obrigatória.
type KPIColumns struct {
	Sales    string
	Date     string
	Quantity string
	Order    string
}

// ComputeKPIs calcula total, ticket médio e pedidos.
// Pedidos são distintos pela coluna de pedido quando informada, senão a contagem de linhas.
func ComputeKPIs(table *domain.Table, columns KPIColumns) (domain.KPISummary, error) {
	summary := domain.KPISummary{}

	if !table.HasColumn(columns.Sales) {
		return summary, domain.NewMissingColumnError(columns.Sales)
	}

	parsed := 0
	for row := 0; row < table.Len(); row++ {
		if value, ok := table.Value(row, columns.Sales).AsNumber(); ok {
			summary.TotalSales += value
			parsed++
		}
	}
	if parsed > 0 {
		summary.AverageOrderValue = summary.TotalSales / float64(parsed)
	}

	summary.Orders = table.Len()
	if columns.Order != "" && table.HasColumn(columns.Order) {
		orders := make(map[string]struct{})
		for row := 0; row < table.Len(); row++ {
			value := table.Value(row, columns.Order)
			if !value.IsNull() {
				orders[value.Key()] = struct{}{}
			}
		}
		summary.Orders = len(orders)
	}

	if columns.Quantity != "" && table.HasColumn(columns.Quantity) {
		total := 0.0
		for row := 0; row < table.Len(); row++ {
			if value, ok := table.Value(row, columns.Quantity).AsNumber(); ok {
				total += value
			}
		}
		summary.TotalQuantity = &total
	}

	if columns.Date != "" && table.HasColumn(columns.Date) {
		applyDailyKPIs(table, columns, &summary)
	}

	return summary, nil
}

func applyDailyKPIs(table *domain.Table, columns KPIColumns, summary *domain.KPISummary) {
	daily, err := DailySummary(table, columns)
	if err != nil || len(daily) == 0 {
		return
	}

	total := 0.0
	best := daily[0]
	for _, record := range daily {
		total += record.Sales
		if record.Sales > best.Sales {
			best = record
		}
	}

	first := daily[0].Date
	last := daily[len(daily)-1].Date

	summary.AverageDailySales = total / float64(len(daily))
	summary.BestDaySales = best.Sales
	summary.BestDay = &best.Date
	summary.FirstOrder = &first
	summary.LastOrder = &last
}
