package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	columns := []Column{{Name: "outlet", Type: ColumnText}, {Name: "amount", Type: ColumnNumeric}}

	tests := []struct {
		name     string
		columns  []Column
		rows     [][]Value
		wantErr  bool
		validate func(t *testing.T, table *Table)
	}{
		{
			name:    "Tabela válida",
			columns: columns,
			rows:    [][]Value{{TextValue("Loja A"), TextValue("10")}, {TextValue("Loja B"), NullValue()}},
			validate: func(t *testing.T, table *Table) {
				assert.Equal(t, 2, table.Len())
				assert.Equal(t, []string{"outlet", "amount"}, table.ColumnNames())
				assert.True(t, table.Value(1, "amount").IsNull())
				assert.True(t, table.Value(0, "inexistente").IsNull())
				assert.True(t, table.Value(9, "outlet").IsNull())
			},
		},
		{
			name:    "Colunas duplicadas",
			columns: []Column{{Name: "amount"}, {Name: "amount"}},
			wantErr: true,
		},
		{
			name:    "Linha com tamanho diferente",
			columns: columns,
			rows:    [][]Value{{TextValue("Loja A")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.columns, tt.rows)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, table)
		})
	}
}

func TestTable_Imutavel(t *testing.T) {
	table, err := NewTable(
		[]Column{{Name: "amount", Type: ColumnNumeric}},
		[][]Value{{TextValue("10")}, {TextValue("20")}},
	)
	require.NoError(t, err)

	filtered := table.Filter(func(row int) bool { return row == 1 })
	assert.Equal(t, 1, filtered.Len())
	assert.Equal(t, 2, table.Len())

	replaced, err := table.WithColumn(Column{Name: "amount", Type: ColumnNumeric}, []Value{NumberValue(1), NumberValue(2)})
	require.NoError(t, err)
	assert.Equal(t, KindNumber, replaced.Value(0, "amount").Kind)
	assert.Equal(t, KindText, table.Value(0, "amount").Kind)

	extended, err := table.WithColumn(Column{Name: "city", Type: ColumnText}, []Value{TextValue("Recife"), TextValue("Natal")})
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "city"}, extended.ColumnNames())
	assert.False(t, table.HasColumn("city"))

	_, err = table.WithColumn(Column{Name: "city"}, []Value{TextValue("Recife")})
	assert.Error(t, err)
}

func TestTable_Nil(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.Nil(t, table.ColumnNames())
	assert.False(t, table.HasColumn("amount"))
	assert.True(t, table.Value(0, "amount").IsNull())
}

func TestValue_JSON(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value Value
		json  string
		back  Value
	}{
		{name: "Texto", value: TextValue("Loja A"), json: `"Loja A"`, back: TextValue("Loja A")},
		{name: "Número", value: NumberValue(2.5), json: `2.5`, back: NumberValue(2.5)},
		{name: "Nulo", value: NullValue(), json: `null`, back: NullValue()},
		{name: "Data volta como texto", value: TimeValue(date), json: `"2024-05-01T00:00:00Z"`, back: TextValue("2024-05-01T00:00:00Z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))

			var back Value
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.back, back)
		})
	}
}

func TestValue_Conversoes(t *testing.T) {
	number, ok := TextValue("1,200.5").AsNumber()
	require.True(t, ok)
	assert.Equal(t, 1200.5, number)

	_, ok = TextValue("Loja A").AsNumber()
	assert.False(t, ok)

	date, ok := TextValue("2024-02-29").AsTime()
	require.True(t, ok)
	assert.Equal(t, time.February, date.Month())

	assert.True(t, TextValue("").IsNull())
	assert.Equal(t, "2024-02-29", TimeValue(date).String())
	assert.NotEqual(t, TextValue("1").Key(), NumberValue(1).Key())
}

func TestColumnRoleMap_JSON(t *testing.T) {
	roles := NewColumnRoleMap(map[Role]string{RoleDate: "order_date", RoleSales: "amount"})

	data, err := json.Marshal(roles)
	require.NoError(t, err)

	var decoded map[string]*string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, len(Roles))
	assert.Nil(t, decoded[string(RoleOutlet)])

	var back ColumnRoleMap
	require.NoError(t, json.Unmarshal(data, &back))
	column, ok := back.Column(RoleSales)
	assert.True(t, ok)
	assert.Equal(t, "amount", column)
	assert.Equal(t, roles.Missing(), back.Missing())
}

func TestSection(t *testing.T) {
	present := Present(KPISummary{TotalSales: 10})
	summary, ok := present.Get()
	assert.True(t, ok)
	assert.Equal(t, 10.0, summary.TotalSales)

	absent := Absent[KPISummary]("missing column: sales")
	_, ok = absent.Get()
	assert.False(t, ok)
	assert.Equal(t, SectionAbsent, absent.Status)

	data, err := json.Marshal(absent)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"absent","reason":"missing column: sales"}`, string(data))
}

func TestFrequency(t *testing.T) {
	wednesday := time.Date(2024, 5, 15, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency Frequency
		truncated time.Time
		next      time.Time
	}{
		{FrequencyDaily, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)},
		{FrequencyWeekly, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{FrequencyMonthly, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			truncated := tt.frequency.Truncate(wednesday)
			assert.Equal(t, tt.truncated, truncated)
			assert.Equal(t, tt.next, tt.frequency.Next(truncated))
		})
	}

	_, err := ParseFrequency("yearly")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestErros(t *testing.T) {
	insufficient := NewInsufficientDataError("forecast history", 2, 1)
	assert.ErrorIs(t, insufficient, ErrInsufficientData)
	assert.Equal(t, "ANL_001", insufficient.ErrorCode())
	assert.Contains(t, insufficient.Error(), "required 2, found 1")

	missing := NewMissingColumnError("outlet")
	assert.ErrorIs(t, missing, ErrMissingColumn)
	assert.Equal(t, "ANL_002", missing.ErrorCode())

	assert.NoError(t, CheckRange("cluster_count", 3, 2, 6))
	err := CheckRange("cluster_count", 7, 2, 6)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "between 2 and 6")
}
