package aggregating

import (
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

// Growth calcula a variação percentual do último período sobre o anterior.
// Com um único período a variação é zero; com período anterior zerado fica indefinida.
func Growth(series domain.TimeSeries) (domain.Growth, error) {
	last, ok := series.Last()
	if !ok {
		return domain.Growth{}, domain.NewInsufficientDataError("growth needs at least one period", 1, 0)
	}

	growth := domain.Growth{
		Frequency: series.Frequency,
		Period:    last.PeriodStart,
		Current:   last.Value,
	}

	if series.Len() == 1 {
		zero := 0.0
		growth.PercentChange = &zero
		return growth, nil
	}

	growth.Previous = series.Points[series.Len()-2].Value
	if growth.Previous != 0 {
		change := utils.RoundWithTwoDecimalPlace((growth.Current - growth.Previous) / growth.Previous * 100)
		growth.PercentChange = &change
	}

	return growth, nil
}
