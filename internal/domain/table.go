// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"fmt"
)

type ColumnType string

const (
	ColumnText    ColumnType = "text"
	ColumnNumeric ColumnType = "numeric"
	ColumnDate    ColumnType = "date"
)

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table é imutável: toda transformação devolve uma nova tabela.
// Um *Table nil se comporta como tabela vazia.
type Table struct {
	columns []Column
	index   map[string]int
	rows    [][]Value
}

func NewTable(columns []Column, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, column := range columns {
		if _, exists := index[column.Name]; exists {
			return nil, fmt.Errorf("duplicated column %q", column.Name)
		}
		index[column.Name] = i
	}

	copied := make([][]Value, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(columns))
		}
		copied[i] = append([]Value(nil), row...)
	}

	return &Table{
		columns: append([]Column(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func (t *Table) Columns() []Column {
	if t == nil {
		return nil
	}
	return append([]Column(nil), t.columns...)
}

func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.columns))
	for i, column := range t.columns {
		names[i] = column.Name
	}
	return names
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Value retorna a célula da linha para a coluna; nulo se a coluna não existe
func (t *Table) Value(row int, name string) Value {
	if t == nil || row < 0 || row >= len(t.rows) {
		return NullValue()
	}
	i, ok := t.index[name]
	if !ok {
		return NullValue()
	}
	return t.rows[row][i]
}

// Values retorna uma cópia da coluna
func (t *Table) Values(name string) []Value {
	if t == nil {
		return nil
	}
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	values := make([]Value, len(t.rows))
	for r, row := range t.rows {
		values[r] = row[i]
	}
	return values
}

// Filter mantém as linhas para as quais keep retorna true
func (t *Table) Filter(keep func(row int) bool) *Table {
	if t == nil {
		return nil
	}
	rows := make([][]Value, 0, len(t.rows))
	for i, row := range t.rows {
		if keep(i) {
			rows = append(rows, row)
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// WithColumn substitui a coluna de mesmo nome ou a adiciona ao final
func (t *Table) WithColumn(column Column, values []Value) (*Table, error) {
	if t.Len() != len(values) {
		return nil, fmt.Errorf("column %q has %d values, expected %d", column.Name, len(values), t.Len())
	}
	if t == nil {
		return NewTable([]Column{column}, nil)
	}

	position, exists := t.index[column.Name]
	columns := append([]Column(nil), t.columns...)
	index := t.index
	if exists {
		columns[position] = column
	} else {
		position = len(columns)
		columns = append(columns, column)
		index = make(map[string]int, len(columns))
		for i, c := range columns {
			index[c.Name] = i
		}
	}

	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		next := make([]Value, len(columns))
		copy(next, row)
		next[position] = values[i]
		rows[i] = next
	}

	return &Table{columns: columns, index: index, rows: rows}, nil
}
