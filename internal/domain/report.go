package domain

import "time"

// AnalysisSettings é o pacote de configuração recebido a cada chamada
type AnalysisSettings struct {
	ForecastHorizon int       `json:"forecast_horizon"`
	ForecastMode    string    `json:"forecast_mode"`
	ClusterCount    int       `json:"cluster_count"`
	ChurnHighDays   int       `json:"churn_high_days"`
	ChurnMediumDays int       `json:"churn_medium_days"`
	Frequency       Frequency `json:"aggregation_frequency"`
	TopN            int       `json:"top_n"`
}

type PreprocessingStats struct {
	DateColumn  string `json:"date_column,omitempty"`
	InputRows   int    `json:"input_rows"`
	OutputRows  int    `json:"output_rows"`
	DroppedRows int    `json:"dropped_rows"`
	Derived     bool   `json:"derived"`
}

type AnalysisReport struct {
	ID               string                    `json:"id"`
	GeneratedAt      time.Time                 `json:"generated_at"`
	AsOf             time.Time                 `json:"as_of"`
	Settings         AnalysisSettings          `json:"settings"`
	Schema           SchemaReport              `json:"schema"`
	Preprocessing    PreprocessingStats        `json:"preprocessing"`
	KPIs             Section[KPISummary]       `json:"kpis"`
	SalesTrend       Section[TimeSeries]       `json:"sales_trend"`
	Growth           Section[Growth]           `json:"growth"`
	Heatmap          Section[Heatmap]          `json:"heatmap"`
	Rankings         map[Role]Section[[]Group] `json:"rankings"`
	QuantityRankings map[Role]Section[[]Group] `json:"quantity_rankings"`
	Forecast         Section[ForecastResult]   `json:"forecast"`
	Segments         Section[Segmentation]     `json:"segments"`
	Churn            Section[ChurnReport]      `json:"churn"`
}

// ReportDigest é o resumo mantido em memória pelo agendador
type ReportDigest struct {
	ReportID        string           `json:"report_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Rows            int              `json:"rows"`
	TotalSales      *float64         `json:"total_sales,omitempty"`
	NextPeriodValue *float64         `json:"next_period_value,omitempty"`
	Segments        int              `json:"segments"`
	RiskTierCounts  map[RiskTier]int `json:"risk_tier_counts,omitempty"`
	AbsentSections  []string         `json:"absent_sections"`
}
