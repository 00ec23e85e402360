package inferring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

func TestInferRoles(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		expected map[domain.Role]string
	}{
		{
			name:    "Colunas típicas de pedidos - todos os papéis encontrados",
			columns: []string{"Order_Date", "SKU", "Brand", "City", "State", "Outlet_Name", "Sales_Rep", "Total_Quantity", "Amount"},
			expected: map[domain.Role]string{
				domain.RoleDate:     "Order_Date",
				domain.RoleSales:    "Amount",
				domain.RoleQuantity: "Total_Quantity",
				domain.RoleSKU:      "SKU",
				domain.RoleBrand:    "Brand",
				domain.RoleCity:     "City",
				domain.RoleState:    "State",
				domain.RoleOutlet:   "Outlet_Name",
				domain.RoleRep:      "Sales_Rep",
			},
		},
		{
			name:    "Prioridade da palavra-chave vence a ordem das colunas",
			columns: []string{"created_date", "order_date"},
			expected: map[domain.Role]string{
				domain.RoleDate: "order_date",
			},
		},
		{
			name:    "Mesma palavra-chave em duas colunas - vence a primeira coluna",
			columns: []string{"delivery_date", "invoice_date"},
			expected: map[domain.Role]string{
				domain.RoleDate: "delivery_date",
			},
		},
		{
			name:    "Comparação sem diferenciar maiúsculas",
			columns: []string{"NET_AMOUNT", "QTY", "Retailer"},
			expected: map[domain.Role]string{
				domain.RoleSales:    "NET_AMOUNT",
				domain.RoleQuantity: "QTY",
				domain.RoleOutlet:   "Retailer",
			},
		},
		{
			name:     "Nenhuma coluna reconhecida - todos ausentes",
			columns:  []string{"foo", "bar"},
			expected: map[domain.Role]string{},
		},
		{
			name:     "Lista vazia - todos ausentes",
			columns:  nil,
			expected: map[domain.Role]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := InferRoles(tt.columns)

			for _, role := range domain.Roles {
				column, ok := roles.Column(role)
				expected, shouldExist := tt.expected[role]
				assert.Equal(t, shouldExist, ok, "papel %s", role)
				assert.Equal(t, expected, column, "papel %s", role)
			}
		})
	}
}

func TestInferTableRoles_TabelaNil(t *testing.T) {
	var table *domain.Table

	roles := InferTableRoles(table)

	assert.ElementsMatch(t, domain.Roles, roles.Missing())
}

func TestDescribe(t *testing.T) {
	table, err := domain.NewTable([]domain.Column{
		{Name: "date", Type: domain.ColumnDate},
		{Name: "store", Type: domain.ColumnText},
	}, nil)
	require.NoError(t, err)

	report := Describe(table)

	assert.Len(t, report.Columns, 2)
	column, ok := report.Roles.Column(domain.RoleOutlet)
	assert.True(t, ok)
	assert.Equal(t, "store", column)
	assert.NotContains(t, report.Missing, domain.RoleDate)
	assert.Contains(t, report.Missing, domain.RoleSales)
}

func TestDetectColumnType(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected domain.ColumnType
	}{
		{name: "Datas ISO", values: []string{"2024-01-01", "2024-02-15", ""}, expected: domain.ColumnDate},
		{name: "Números com um valor inválido acima do limiar", values: []string{"1", "2.5", "3", "4", "n/a"}, expected: domain.ColumnNumeric},
		{name: "Números abaixo do limiar", values: []string{"1", "x", "y"}, expected: domain.ColumnText},
		{name: "Texto", values: []string{"Loja A", "Loja B"}, expected: domain.ColumnText},
		{name: "Coluna vazia", values: []string{"", " "}, expected: domain.ColumnText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectColumnType(tt.values))
		})
	}
}
