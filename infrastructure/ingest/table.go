package ingest

import (
	"fmt"
	"strings"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/inferring"
)

// BuildTable monta a tabela a partir das linhas cruas, detectando o tipo de cada coluna.
// Cabeçalhos vazios viram "Unnamed: i" e repetidos recebem sufixo ".n".
func BuildTable(header []string, records [][]string) (*domain.Table, error) {
	names := normalizeHeader(header)
	if len(names) == 0 {
		return nil, ErrEmptyFile
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(names))
		empty := true
		for i := range names {
			if i < len(record) {
				row[i] = strings.TrimSpace(record[i])
			}
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	columns := make([]domain.Column, len(names))
	samples := make([]string, len(rows))
	for i, name := range names {
		for r, row := range rows {
			samples[r] = row[i]
		}
		columns[i] = domain.Column{Name: name, Type: inferring.DetectColumnType(samples)}
	}

	values := make([][]domain.Value, len(rows))
	for r, row := range rows {
		values[r] = make([]domain.Value, len(names))
		for i, cell := range row {
			if cell == "" {
				values[r][i] = domain.NullValue()
				continue
			}
			values[r][i] = domain.TextValue(cell)
		}
	}

	return domain.NewTable(columns, values)
}

func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if count, ok := seen[name]; ok {
			seen[name] = count + 1
			name = fmt.Sprintf("%s.%d", name, count+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}
