// Package segmenting agrupa lojas em segmentos de comportamento com k-means
package segmenting

import (
	"sort"
	"strings"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

const (
	FeatureTotalSales    = "Total_Sales"
	FeatureTotalQuantity = "Total_Quantity"
)

// Measure soma a coluna por entidade sob o nome Name
type Measure struct {
	Name   string
	Column string
}

type FeatureLayout struct {
	Entity   string
	Measures []Measure
}

// LayoutFromRoles monta os atributos padrão a partir dos papéis inferidos
func LayoutFromRoles(roles domain.ColumnRoleMap) (FeatureLayout, error) {
	outlet, ok := roles.Column(domain.RoleOutlet)
	if !ok {
		return FeatureLayout{}, domain.NewMissingColumnError(string(domain.RoleOutlet))
	}

	layout := FeatureLayout{Entity: outlet}
	if sales, ok := roles.Column(domain.RoleSales); ok {
		layout.Measures = append(layout.Measures, Measure{Name: FeatureTotalSales, Column: sales})
	}
	if quantity, ok := roles.Column(domain.RoleQuantity); ok {
		layout.Measures = append(layout.Measures, Measure{Name: FeatureTotalQuantity, Column: quantity})
	}
	return layout, nil
}

// PrepareFeatures agrega as medidas por entidade.
// Medidas cuja coluna não existe são ignoradas; entidades sem nenhum valor numérico são excluídas.
func PrepareFeatures(table *domain.Table, layout FeatureLayout) (domain.FeatureSet, error) {
	if !table.HasColumn(layout.Entity) {
		return domain.FeatureSet{}, domain.NewMissingColumnError(layout.Entity)
	}

	measures := make([]Measure, 0, len(layout.Measures))
	for _, measure := range layout.Measures {
		if table.HasColumn(measure.Column) {
			measures = append(measures, measure)
		}
	}
	if len(measures) == 0 {
		return domain.FeatureSet{}, domain.NewInsufficientDataError("no feature column available for segmentation", 1, 0)
	}

	type accumulator struct {
		sums   []float64
		parsed bool
	}

	entities := make(map[string]*accumulator)
	for row := 0; row < table.Len(); row++ {
		value := table.Value(row, layout.Entity)
		if value.IsNull() {
			continue
		}
		entity := strings.TrimSpace(value.String())

		acc, ok := entities[entity]
		if !ok {
			acc = &accumulator{sums: make([]float64, len(measures))}
			entities[entity] = acc
		}

		for i, measure := range measures {
			if number, ok := table.Value(row, measure.Column).AsNumber(); ok {
				acc.sums[i] += number
				acc.parsed = true
			}
		}
	}

	features := domain.FeatureSet{Names: make([]string, len(measures))}
	for i, measure := range measures {
		features.Names[i] = measure.Name
	}

	names := make([]string, 0, len(entities))
	for entity, acc := range entities {
		if acc.parsed {
			names = append(names, entity)
		}
	}
	sort.Strings(names)

	for _, entity := range names {
		features.Rows = append(features.Rows, domain.EntityFeatures{Entity: entity, Values: entities[entity].sums})
	}

	if features.Len() == 0 {
		return features, domain.NewInsufficientDataError("no entity with numeric features", 1, 0)
	}

	return features, nil
}
