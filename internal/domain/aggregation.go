package domain

import "time"

// Group é o resultado de uma agregação: valores das chaves na ordem pedida.
// FirstRow é a primeira linha de entrada do grupo e desempata rankings.
type Group struct {
	Keys     []Value `json:"keys"`
	Value    float64 `json:"value"`
	Rows     int     `json:"rows"`
	FirstRow int     `json:"-"`
}

// Label junta as chaves para exibição
func (g Group) Label() string {
	label := ""
	for i, key := range g.Keys {
		if i > 0 {
			label += " / "
		}
		label += key.String()
	}
	return label
}

type KPISummary struct {
	TotalSales        float64    `json:"total_sales"`
	AverageOrderValue float64    `json:"average_order_value"`
	Orders            int        `json:"orders"`
	AverageDailySales float64    `json:"average_daily_sales"`
	BestDaySales      float64    `json:"best_day_sales"`
	BestDay           *time.Time `json:"best_day,omitempty"`
	FirstOrder        *time.Time `json:"first_order,omitempty"`
	LastOrder         *time.Time `json:"last_order,omitempty"`
	TotalQuantity     *float64   `json:"total_quantity,omitempty"`
}

// Heatmap soma a medida por dia do mês (linhas) e mês (colunas)
type Heatmap struct {
	Days   []int       `json:"days"`
	Months []string    `json:"months"`
	Cells  [][]float64 `json:"cells"`
}

// Growth compara os dois últimos períodos da série
type Growth struct {
	Frequency     Frequency `json:"frequency"`
	Period        time.Time `json:"period"`
	Current       float64   `json:"current"`
	Previous      float64   `json:"previous"`
	PercentChange *float64  `json:"percent_change"`
}

type DailyRecord struct {
	Date     time.Time `json:"date"`
	Sales    float64   `json:"sales"`
	Quantity float64   `json:"quantity"`
	Orders   int       `json:"orders"`
}
