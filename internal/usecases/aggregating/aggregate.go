// Package aggregating agrupa linhas da tabela e reduz uma medida por grupo
package aggregating

import (
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

type Operation string

const (
	OpSum           Operation = "sum"
	OpMean          Operation = "mean"
	OpCount         Operation = "count"
	OpDistinctCount Operation = "nunique"
)

func ParseOperation(value string) (Operation, error) {
	switch Operation(strings.ToLower(value)) {
	case OpSum, OpMean, OpCount, OpDistinctCount:
		return Operation(strings.ToLower(value)), nil
	case "distinct_count", "distinct":
		return OpDistinctCount, nil
	default:
		return "", domain.NewInvalidValueError("operation", value, "expected sum, mean, count or nunique")
	}
}

type keyOrder int

const (
	orderFirstSeen keyOrder = iota
	orderNumeric
	orderChronological
)

type groupState struct {
	keys     []domain.Value
	ranks    []int
	firstRow int
	rows     int
	sum      float64
	parsed   int
	distinct map[string]struct{}
}

// Aggregate agrupa pelas chaves e reduz a medida com a operação pedida.
// Chaves de data ou numéricas são ordenadas pelo valor; chaves de texto pela primeira aparição.
// Linhas com chave nula são ignoradas. Para count, measure vazio conta linhas.
func Aggregate(table *domain.Table, groupKeys []string, measure string, op Operation) ([]domain.Group, error) {
	if len(groupKeys) == 0 {
		return nil, domain.NewInvalidValueError("group_keys", groupKeys, "at least one key is required")
	}
	op, err := ParseOperation(string(op))
	if err != nil {
		return nil, err
	}

	orders := make([]keyOrder, len(groupKeys))
	for i, key := range groupKeys {
		column, ok := table.Column(key)
		if !ok {
			return nil, domain.NewMissingColumnError(key)
		}
		orders[i] = orderFor(column.Type)
	}
	if measure == "" && op != OpCount {
		return nil, domain.NewInvalidValueError("measure", measure, "measure column is required")
	}
	if measure != "" && !table.HasColumn(measure) {
		return nil, domain.NewMissingColumnError(measure)
	}

	firstSeen := make([]map[string]int, len(groupKeys))
	for i := range firstSeen {
		firstSeen[i] = make(map[string]int)
	}

	states := make(map[string]*groupState)
	sequence := make([]*groupState, 0)

	for row := 0; row < table.Len(); row++ {
		keys, ok := rowKeys(table, row, groupKeys, orders)
		if !ok {
			continue
		}

		var composite strings.Builder
		ranks := make([]int, len(keys))
		for i, key := range keys {
			id := key.Key()
			rank, seen := firstSeen[i][id]
			if !seen {
				rank = len(firstSeen[i])
				firstSeen[i][id] = rank
			}
			ranks[i] = rank
			composite.WriteString(id)
			composite.WriteByte(0)
		}

		state, exists := states[composite.String()]
		if !exists {
			state = &groupState{keys: keys, ranks: ranks, firstRow: row, distinct: make(map[string]struct{})}
			states[composite.String()] = state
			sequence = append(sequence, state)
		}

		state.rows++
		if measure == "" {
			continue
		}

		value := table.Value(row, measure)
		switch op {
		case OpSum, OpMean:
			if number, ok := value.AsNumber(); ok {
				state.sum += number
				state.parsed++
			}
		case OpCount:
			if !value.IsNull() {
				state.parsed++
			}
		case OpDistinctCount:
			if !value.IsNull() {
				state.distinct[value.Key()] = struct{}{}
			}
		}
	}

	sort.SliceStable(sequence, func(i, j int) bool {
		return compareKeys(sequence[i], sequence[j], orders) < 0
	})

	groups := make([]domain.Group, len(sequence))
	for i, state := range sequence {
		groups[i] = domain.Group{
			Keys:     state.keys,
			Value:    reduce(state, measure, op),
			Rows:     state.rows,
			FirstRow: state.firstRow,
		}
	}

	return groups, nil
}

func orderFor(columnType domain.ColumnType) keyOrder {
	switch columnType {
	case domain.ColumnDate:
		return orderChronological
	case domain.ColumnNumeric:
		return orderNumeric
	default:
		return orderFirstSeen
	}
}

func rowKeys(table *domain.Table, row int, groupKeys []string, orders []keyOrder) ([]domain.Value, bool) {
	keys := make([]domain.Value, len(groupKeys))
	for i, key := range groupKeys {
		value := table.Value(row, key)
		if value.IsNull() {
			return nil, false
		}

		switch orders[i] {
		case orderChronological:
			date, ok := value.AsTime()
			if !ok {
				return nil, false
			}
			value = domain.TimeValue(date)
		case orderNumeric:
			number, ok := value.AsNumber()
			if !ok {
				return nil, false
			}
			value = domain.NumberValue(number)
		}

		keys[i] = value
	}
	return keys, true
}

func compareKeys(a, b *groupState, orders []keyOrder) int {
	for i, order := range orders {
		var cmp int
		switch order {
		case orderChronological:
			cmp = compareTimes(a.keys[i].Time, b.keys[i].Time)
		case orderNumeric:
			cmp = compareFloats(a.keys[i].Num, b.keys[i].Num)
		default:
			cmp = a.ranks[i] - b.ranks[i]
		}
		if cmp != 0 {
			return cmp
		}
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func reduce(state *groupState, measure string, op Operation) float64 {
	switch op {
	case OpSum:
		return state.sum
	case OpMean:
		if state.parsed == 0 {
			return 0
		}
		return state.sum / float64(state.parsed)
	case OpCount:
		if measure == "" {
			return float64(state.rows)
		}
		return float64(state.parsed)
	case OpDistinctCount:
		return float64(len(state.distinct))
	default:
		return 0
	}
}

// TopN ordena por valor decrescente. Empates seguem a primeira linha de cada grupo
// na entrada, qualquer que seja a ordem das chaves.
func TopN(groups []domain.Group, n int) []domain.Group {
	if n <= 0 {
		return []domain.Group{}
	}

	ranked := append([]domain.Group(nil), groups...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].FirstRow < ranked[j].FirstRow
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopBy soma a medida por chave e retorna os n maiores
func TopBy(table *domain.Table, key, measure string, n int) ([]domain.Group, error) {
	groups, err := Aggregate(table, []string{key}, measure, OpSum)
	if err != nil {
		return nil, err
	}
	return TopN(groups, n), nil
}
