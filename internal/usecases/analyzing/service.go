// Package analyzing orquestra o pipeline de análise e monta o relatório por seções
package analyzing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/internal/config"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/inferring"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/preprocessing"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/scoring"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/segmenting"
	"github.com/vfg2006/sales-intelligence-api/pkg/metrics"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

// Etapas do relatório completo, na ordem de execução
const (
	StageSchema     = "schema"
	StagePreprocess = "preprocess"
	StageKPIs       = "kpis"
	StageTrend      = "trend"
	StageRankings   = "rankings"
	StageForecast   = "forecast"
	StageSegments   = "segments"
	StageChurn      = "churn"
)

var Stages = []string{
	StageSchema,
	StagePreprocess,
	StageKPIs,
	StageTrend,
	StageRankings,
	StageForecast,
	StageSegments,
	StageChurn,
}

// rankingRoles são as dimensões ranqueadas por vendas no relatório
var rankingRoles = []domain.Role{
	domain.RoleSKU,
	domain.RoleBrand,
	domain.RoleCity,
	domain.RoleState,
	domain.RoleOutlet,
	domain.RoleRep,
}

// quantityRankingRoles são ranqueadas também por unidades vendidas
var quantityRankingRoles = []domain.Role{
	domain.RoleSKU,
	domain.RoleRep,
}

// StageHook é chamado ao fim de cada etapa do relatório completo
type StageHook func(stage string)

type Option func(*Service)

func WithStageHook(hook StageHook) Option {
	return func(s *Service) {
		s.hook = hook
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	cfg     config.Analytics
	metrics *metrics.Metrics
	hook    StageHook
	now     func() time.Time
}

func NewService(cfg config.Analytics, opts ...Option) Analyzer {
	service := &Service{
		cfg:     cfg,
		metrics: metrics.NewMetrics(),
		hook:    func(string) {},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// prepared é a tabela já pré-processada junto com os papéis inferidos
type prepared struct {
	table *domain.Table
	roles domain.ColumnRoleMap
	stats domain.PreprocessingStats
}

func (p prepared) column(role domain.Role) (string, error) {
	column, ok := p.roles.Column(role)
	if !ok {
		return "", fmt.Errorf("%w: no column inferred for role %s", domain.ErrMissingColumn, role)
	}
	return column, nil
}

// dateColumn exige o papel de data e ao menos uma data válida
func (p prepared) dateColumn() (string, error) {
	column, err := p.column(domain.RoleDate)
	if err != nil {
		return "", err
	}
	if !p.stats.Derived {
		return "", domain.NewInsufficientDataError(fmt.Sprintf("no parsable dates in column %q", column), 1, 0)
	}
	return column, nil
}

func (s *Service) prepare(table *domain.Table) prepared {
	roles := inferring.InferTableRoles(table)
	dateColumn, _ := roles.Column(domain.RoleDate)
	working, stats := preprocessing.Preprocess(table, dateColumn)
	return prepared{table: working, roles: roles, stats: stats}
}

func (s *Service) Analyze(ctx context.Context, table *domain.Table, settings domain.AnalysisSettings, asOf time.Time) (*domain.AnalysisReport, error) {
	if err := s.ValidateSettings(settings); err != nil {
		return nil, err
	}

	report := &domain.AnalysisReport{
		ID:               utils.GenerateID(),
		GeneratedAt:      s.now().UTC(),
		AsOf:             utils.StartOfDay(asOf),
		Settings:         settings,
		Rankings:         make(map[domain.Role]domain.Section[[]domain.Group], len(rankingRoles)),
		QuantityRankings: make(map[domain.Role]domain.Section[[]domain.Group], len(quantityRankingRoles)),
	}
	s.metrics.RecordRows(table.Len())

	log := logrus.WithFields(logrus.Fields{
		"report_id": report.ID,
		"rows":      table.Len(),
	})
	log.Info("analysis: iniciando relatório")

	var p prepared
	steps := []struct {
		stage string
		run   func()
	}{
		{StageSchema, func() { report.Schema = inferring.Describe(table) }},
		{StagePreprocess, func() {
			p = s.prepare(table)
			report.Preprocessing = p.stats
		}},
		{StageKPIs, func() {
			report.KPIs = section(s.metrics, "kpis", func() (domain.KPISummary, error) { return s.kpis(p) })
		}},
		{StageTrend, func() {
			report.SalesTrend = section(s.metrics, "sales_trend", func() (domain.TimeSeries, error) { return s.trend(p, settings.Frequency) })
			report.Growth = section(s.metrics, "growth", func() (domain.Growth, error) {
				series, ok := report.SalesTrend.Get()
				if !ok {
					return domain.Growth{}, domain.NewInsufficientDataError(report.SalesTrend.Reason, 1, 0)
				}
				return aggregating.Growth(series)
			})
			report.Heatmap = section(s.metrics, "heatmap", func() (domain.Heatmap, error) { return s.heatmap(p) })
		}},
		{StageRankings, func() {
			for _, role := range rankingRoles {
				report.Rankings[role] = section(s.metrics, "ranking_"+string(role), func() ([]domain.Group, error) {
					return s.ranking(p, role, domain.RoleSales, settings.TopN)
				})
			}
			for _, role := range quantityRankingRoles {
				report.QuantityRankings[role] = section(s.metrics, "quantity_ranking_"+string(role), func() ([]domain.Group, error) {
					return s.ranking(p, role, domain.RoleQuantity, settings.TopN)
				})
			}
		}},
		{StageForecast, func() {
			report.Forecast = section(s.metrics, "forecast", func() (domain.ForecastResult, error) { return s.forecast(p, settings) })
		}},
		{StageSegments, func() {
			report.Segments = section(s.metrics, "segments", func() (domain.Segmentation, error) { return s.segments(p, settings.ClusterCount) })
		}},
		{StageChurn, func() {
			report.Churn = section(s.metrics, "churn", func() (domain.ChurnReport, error) { return s.churn(p, settings, asOf) })
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("analysis: relatório cancelado")
			return nil, err
		}

		started := time.Now()
		step.run()
		s.metrics.ObserveStage(step.stage, started)
		s.hook(step.stage)
	}

	log.WithField("absent_sections", AbsentSections(report)).Info("analysis: relatório concluído")

	return report, nil
}

// section converte erros de dados ou de papel ausente em seção ausente.
// Qualquer outro erro também vira ausência, mas é registrado como falha.
func section[T any](m *metrics.Metrics, name string, compute func() (T, error)) domain.Section[T] {
	value, err := compute()
	if err == nil {
		m.RecordSection(name, true)
		return domain.Present(value)
	}

	m.RecordSection(name, false)
	if !isScoped(err) {
		logrus.WithError(err).WithField("section", name).Error("analysis: falha inesperada na seção")
	}
	return domain.Absent[T](err.Error())
}

func isScoped(err error) bool {
	return errors.Is(err, domain.ErrInsufficientData) || errors.Is(err, domain.ErrMissingColumn)
}

func (s *Service) Schema(table *domain.Table) domain.SchemaReport {
	return inferring.Describe(table)
}

func (s *Service) KPIs(table *domain.Table) (*domain.KPISummary, error) {
	summary, err := s.kpis(s.prepare(table))
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Aggregate agrupa a tabela pré-processada, permitindo Year, Month e MonthName como chaves
func (s *Service) Aggregate(table *domain.Table, request AggregateRequest) ([]domain.Group, error) {
	p := s.prepare(table)

	operation := request.Operation
	if operation == "" {
		operation = string(aggregating.OpSum)
	}
	op, err := aggregating.ParseOperation(operation)
	if err != nil {
		return nil, err
	}
	if request.TopN < 0 {
		return nil, domain.NewInvalidValueError("top_n", request.TopN, "must not be negative")
	}

	groups, err := aggregating.Aggregate(p.table, request.GroupBy, request.Measure, op)
	if err != nil {
		return nil, err
	}
	if request.TopN > 0 {
		return aggregating.TopN(groups, request.TopN), nil
	}
	return groups, nil
}

func (s *Service) Forecast(table *domain.Table, settings domain.AnalysisSettings) (*domain.ForecastResult, error) {
	if err := s.ValidateSettings(settings); err != nil {
		return nil, err
	}
	result, err := s.forecast(s.prepare(table), settings)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) Segments(table *domain.Table, settings domain.AnalysisSettings) (*domain.Segmentation, error) {
	if err := s.ValidateSettings(settings); err != nil {
		return nil, err
	}
	segmentation, err := s.segments(s.prepare(table), settings.ClusterCount)
	if err != nil {
		return nil, err
	}
	return &segmentation, nil
}

func (s *Service) Churn(table *domain.Table, settings domain.AnalysisSettings, asOf time.Time) (*domain.ChurnReport, error) {
	if err := s.ValidateSettings(settings); err != nil {
		return nil, err
	}
	report, err := s.churn(s.prepare(table), settings, asOf)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) kpis(p prepared) (domain.KPISummary, error) {
	sales, err := p.column(domain.RoleSales)
	if err != nil {
		return domain.KPISummary{}, err
	}

	columns := aggregating.KPIColumns{Sales: sales}
	if date, err := p.dateColumn(); err == nil {
		columns.Date = date
	}
	if quantity, ok := p.roles.Column(domain.RoleQuantity); ok {
		columns.Quantity = quantity
	}
	return aggregating.ComputeKPIs(p.table, columns)
}

func (s *Service) trend(p prepared, frequency domain.Frequency) (domain.TimeSeries, error) {
	date, err := p.dateColumn()
	if err != nil {
		return domain.TimeSeries{}, err
	}
	sales, err := p.column(domain.RoleSales)
	if err != nil {
		return domain.TimeSeries{}, err
	}
	return aggregating.PeriodSeries(p.table, date, sales, frequency)
}

func (s *Service) heatmap(p prepared) (domain.Heatmap, error) {
	date, err := p.dateColumn()
	if err != nil {
		return domain.Heatmap{}, err
	}
	sales, err := p.column(domain.RoleSales)
	if err != nil {
		return domain.Heatmap{}, err
	}
	return aggregating.Heatmap(p.table, date, sales)
}

// ranking soma a coluna do papel measure por dimensão e devolve os n maiores
func (s *Service) ranking(p prepared, role, measure domain.Role, n int) ([]domain.Group, error) {
	dimension, err := p.column(role)
	if err != nil {
		return nil, err
	}
	column, err := p.column(measure)
	if err != nil {
		return nil, err
	}
	return aggregating.TopBy(p.table, dimension, column, n)
}

func (s *Service) forecast(p prepared, settings domain.AnalysisSettings) (domain.ForecastResult, error) {
	mode, err := forecasting.ParseMode(settings.ForecastMode)
	if err != nil {
		return domain.ForecastResult{}, err
	}
	forecaster, err := forecasting.New(mode)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	series, err := s.trend(p, forecasting.SeriesFrequency(mode, settings.Frequency))
	if err != nil {
		return domain.ForecastResult{}, err
	}

	forecast, err := forecaster.Forecast(series, settings.ForecastHorizon)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	return domain.ForecastResult{
		History:  series,
		Forecast: *forecast,
		Combined: domain.CombineSeries(series, *forecast),
		Summary:  forecasting.Summarize(*forecast),
	}, nil
}

func (s *Service) segments(p prepared, k int) (domain.Segmentation, error) {
	layout, err := segmenting.LayoutFromRoles(p.roles)
	if err != nil {
		return domain.Segmentation{}, err
	}
	features, err := segmenting.PrepareFeatures(p.table, layout)
	if err != nil {
		return domain.Segmentation{}, err
	}

	options := segmenting.DefaultOptions()
	options.Seed = s.cfg.ClusterSeed
	options.Restarts = s.cfg.ClusterRestarts
	options.MaxClusters = s.cfg.ClusterCountMax
	if s.cfg.LabelPolicy != "" {
		options.LabelPolicy = segmenting.LabelPolicy(s.cfg.LabelPolicy)
	}

	segmentation, err := segmenting.Segment(features, k, options)
	if err != nil {
		return domain.Segmentation{}, err
	}
	return *segmentation, nil
}

func (s *Service) churn(p prepared, settings domain.AnalysisSettings, asOf time.Time) (domain.ChurnReport, error) {
	outlet, err := p.column(domain.RoleOutlet)
	if err != nil {
		return domain.ChurnReport{}, err
	}
	date, err := p.dateColumn()
	if err != nil {
		return domain.ChurnReport{}, err
	}

	report, err := scoring.ScoreChurn(p.table, outlet, date, asOf, thresholdsFrom(settings))
	if err != nil {
		return domain.ChurnReport{}, err
	}
	return *report, nil
}
