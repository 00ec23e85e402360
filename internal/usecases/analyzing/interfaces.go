package analyzing

import (
	"context"
	"time"

	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_analyzer.go -package=mocks

// Analyzer executa o pipeline completo ou cada etapa isolada sobre uma tabela em memória
type Analyzer interface {
	// Analyze produz o relatório completo; seções sem papel ou sem dados ficam ausentes
	Analyze(ctx context.Context, table *domain.Table, settings domain.AnalysisSettings, asOf time.Time) (*domain.AnalysisReport, error)

	// Schema infere os papéis das colunas
	Schema(table *domain.Table) domain.SchemaReport

	KPIs(table *domain.Table) (*domain.KPISummary, error)
	Aggregate(table *domain.Table, request AggregateRequest) ([]domain.Group, error)
	Forecast(table *domain.Table, settings domain.AnalysisSettings) (*domain.ForecastResult, error)
	Segments(table *domain.Table, settings domain.AnalysisSettings) (*domain.Segmentation, error)
	Churn(table *domain.Table, settings domain.AnalysisSettings, asOf time.Time) (*domain.ChurnReport, error)

	// DefaultSettings retorna o pacote de configuração padrão
	DefaultSettings() domain.AnalysisSettings
	ValidateSettings(settings domain.AnalysisSettings) error
}

// AggregateRequest descreve uma agregação ad hoc; TopN zero devolve todos os grupos
type AggregateRequest struct {
	GroupBy   []string `json:"group_by"`
	Measure   string   `json:"measure"`
	Operation string   `json:"operation"`
	TopN      int      `json:"top_n"`
}
