// Package preprocessing normaliza a coluna de data e deriva campos de calendário
package preprocessing

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

// Colunas derivadas da data
const (
	ColumnYear      = "Year"
	ColumnMonth     = "Month"
	ColumnMonthName = "MonthName"
)

// Preprocess converte a coluna de data, descarta linhas com data inválida
// e adiciona Year, Month e MonthName. A tabela de entrada não é alterada.
// Sem coluna de data ou sem nenhuma data válida, a tabela volta inalterada.
func Preprocess(table *domain.Table, dateColumn string) (*domain.Table, domain.PreprocessingStats) {
	stats := domain.PreprocessingStats{
		DateColumn: dateColumn,
		InputRows:  table.Len(),
		OutputRows: table.Len(),
	}

	if table.Len() == 0 || dateColumn == "" || !table.HasColumn(dateColumn) {
		return table, stats
	}

	source := table.Values(dateColumn)
	parsed := make([]domain.Value, 0, len(source))
	valid := make([]bool, len(source))
	for i, value := range source {
		date, ok := value.AsTime()
		if !ok {
			continue
		}
		valid[i] = true
		parsed = append(parsed, domain.TimeValue(date))
	}

	if len(parsed) == 0 {
		logrus.WithField("date_column", dateColumn).Warn("preprocessing: nenhuma data válida, tabela mantida")
		return table, stats
	}

	working := table.Filter(func(row int) bool { return valid[row] })

	years := make([]domain.Value, len(parsed))
	months := make([]domain.Value, len(parsed))
	monthNames := make([]domain.Value, len(parsed))
	for i, value := range parsed {
		years[i] = domain.NumberValue(float64(value.Time.Year()))
		months[i] = domain.NumberValue(float64(value.Time.Month()))
		monthNames[i] = domain.TextValue(value.Time.Format("Jan"))
	}

	derived := []struct {
		column domain.Column
		values []domain.Value
	}{
		{column: domain.Column{Name: dateColumn, Type: domain.ColumnDate}, values: parsed},
		{column: domain.Column{Name: ColumnYear, Type: domain.ColumnNumeric}, values: years},
		{column: domain.Column{Name: ColumnMonth, Type: domain.ColumnNumeric}, values: months},
		{column: domain.Column{Name: ColumnMonthName, Type: domain.ColumnText}, values: monthNames},
	}

	var err error
	for _, d := range derived {
		working, err = working.WithColumn(d.column, d.values)
		if err != nil {
			// tamanhos vêm do mesmo filtro
			logrus.WithError(err).Error("preprocessing: erro ao derivar coluna")
			return table, stats
		}
	}

	stats.OutputRows = working.Len()
	stats.DroppedRows = stats.InputRows - stats.OutputRows
	stats.Derived = true

	logrus.WithFields(logrus.Fields{
		"date_column":  dateColumn,
		"input_rows":   stats.InputRows,
		"dropped_rows": stats.DroppedRows,
	}).Debug("preprocessing: datas normalizadas")

	return working, stats
}
