package domain

// Role é o significado semântico atribuído a uma coluna
type Role string

const (
	RoleDate     Role = "date"
	RoleSales    Role = "sales"
	RoleQuantity Role = "quantity"
	RoleSKU      Role = "sku"
	RoleBrand    Role = "brand"
	RoleCity     Role = "city"
	RoleState    Role = "state"
	RoleOutlet   Role = "outlet"
	RoleRep      Role = "rep"
)

// Roles lista os papéis canônicos na ordem de apresentação
var Roles = []Role{
	RoleDate,
	RoleSales,
	RoleQuantity,
	RoleSKU,
	RoleBrand,
	RoleCity,
	RoleState,
	RoleOutlet,
	RoleRep,
}

// ColumnRoleMap associa cada papel a no máximo uma coluna. Ausência não é erro.
type ColumnRoleMap struct {
	columns map[Role]string
}

func NewColumnRoleMap(assignments map[Role]string) ColumnRoleMap {
	columns := make(map[Role]string, len(assignments))
	for role, column := range assignments {
		if column != "" {
			columns[role] = column
		}
	}
	return ColumnRoleMap{columns: columns}
}

func (m ColumnRoleMap) Column(role Role) (string, bool) {
	column, ok := m.columns[role]
	return column, ok
}

// Missing retorna os papéis sem coluna atribuída
func (m ColumnRoleMap) Missing() []Role {
	missing := make([]Role, 0)
	for _, role := range Roles {
		if _, ok := m.columns[role]; !ok {
			missing = append(missing, role)
		}
	}
	return missing
}

// MarshalJSON serializa todos os papéis, com null para os ausentes
func (m ColumnRoleMap) MarshalJSON() ([]byte, error) {
	out := make(map[Role]*string, len(Roles))
	for _, role := range Roles {
		if column, ok := m.columns[role]; ok {
			out[role] = &column
		} else {
			out[role] = nil
		}
	}
	return json.Marshal(out)
}

func (m *ColumnRoleMap) UnmarshalJSON(data []byte) error {
	var in map[Role]*string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	assignments := make(map[Role]string, len(in))
	for role, column := range in {
		if column != nil {
			assignments[role] = *column
		}
	}
	*m = NewColumnRoleMap(assignments)
	return nil
}

type SchemaReport struct {
	Columns []Column      `json:"columns"`
	Roles   ColumnRoleMap `json:"roles"`
	Missing []Role        `json:"missing_roles"`
}
