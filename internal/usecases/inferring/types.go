package inferring

import (
	"strings"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

const typeThreshold = 0.8

// DetectColumnType classifica uma coluna sem tipo pelos valores não vazios.
// Data ou número exigem que ao menos 80% das amostras sejam convertidas.
func DetectColumnType(values []string) domain.ColumnType {
	total, dates, numbers := 0, 0, 0
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		total++

		if _, ok := utils.ParseDateFlexible(value); ok {
			dates++
		}
		if _, ok := utils.ParseNumber(value); ok {
			numbers++
		}
	}

	if total == 0 {
		return domain.ColumnText
	}

	threshold := float64(total) * typeThreshold
	if float64(dates) >= threshold {
		return domain.ColumnDate
	}
	if float64(numbers) >= threshold {
		return domain.ColumnNumeric
	}
	return domain.ColumnText
}
