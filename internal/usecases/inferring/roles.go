// Package inferring mapeia nomes de colunas para papéis semânticos
package inferring

import (
	"strings"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

type roleRule struct {
	role     domain.Role
	keywords []string
}

// A ordem das palavras-chave define a prioridade dentro de cada papel
var roleRules = []roleRule{
	{role: domain.RoleDate, keywords: []string{"order_date", "date", "created_date", "invoice_date"}},
	{role: domain.RoleSales, keywords: []string{"amount", "sales", "sales_value", "net_amount", "value"}},
	{role: domain.RoleQuantity, keywords: []string{"total_quantity", "quantity", "qty", "units"}},
	{role: domain.RoleSKU, keywords: []string{"sku", "product_code", "product", "item"}},
	{role: domain.RoleBrand, keywords: []string{"brand"}},
	{role: domain.RoleCity, keywords: []string{"city", "town"}},
	{role: domain.RoleState, keywords: []string{"state", "region"}},
	{role: domain.RoleOutlet, keywords: []string{"outlet", "store", "retailer", "shop"}},
	{role: domain.RoleRep, keywords: []string{"sales_rep", "rep", "salesman", "user", "executive"}},
}

// InferRoles aplica as regras sobre os nomes das colunas.
// A primeira palavra-chave que casa com alguma coluna vence; empate fica com a primeira coluna.
func InferRoles(columns []string) domain.ColumnRoleMap {
	lowered := make([]string, len(columns))
	for i, column := range columns {
		lowered[i] = strings.ToLower(strings.TrimSpace(column))
	}

	assignments := make(map[domain.Role]string, len(roleRules))
	for _, rule := range roleRules {
		if column, ok := matchRule(rule, columns, lowered); ok {
			assignments[rule.role] = column
		}
	}

	return domain.NewColumnRoleMap(assignments)
}

func matchRule(rule roleRule, columns, lowered []string) (string, bool) {
	for _, keyword := range rule.keywords {
		for i, name := range lowered {
			if name != "" && strings.Contains(name, keyword) {
				return columns[i], true
			}
		}
	}
	return "", false
}

// InferTableRoles infere os papéis a partir das colunas da tabela
func InferTableRoles(table *domain.Table) domain.ColumnRoleMap {
	return InferRoles(table.ColumnNames())
}

// Describe monta o relatório de esquema da tabela
func Describe(table *domain.Table) domain.SchemaReport {
	roles := InferTableRoles(table)
	columns := table.Columns()
	if columns == nil {
		columns = []domain.Column{}
	}

	return domain.SchemaReport{
		Columns: columns,
		Roles:   roles,
		Missing: roles.Missing(),
	}
}
