package analyzing

import (
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

// AbsentSections lista as seções ausentes na ordem do relatório
func AbsentSections(report *domain.AnalysisReport) []string {
	absent := make([]string, 0)
	add := func(name string, ok bool) {
		if !ok {
			absent = append(absent, name)
		}
	}

	add("kpis", report.KPIs.OK())
	add("sales_trend", report.SalesTrend.OK())
	add("growth", report.Growth.OK())
	add("heatmap", report.Heatmap.OK())
	for _, role := range rankingRoles {
		add("ranking_"+string(role), report.Rankings[role].OK())
	}
	for _, role := range quantityRankingRoles {
		add("quantity_ranking_"+string(role), report.QuantityRankings[role].OK())
	}
	add("forecast", report.Forecast.OK())
	add("segments", report.Segments.OK())
	add("churn", report.Churn.OK())

	return absent
}

// Digest resume o relatório para o agendador e para a saída curta da CLI
func Digest(report *domain.AnalysisReport) domain.ReportDigest {
	digest := domain.ReportDigest{
		ReportID:       report.ID,
		GeneratedAt:    report.GeneratedAt,
		Rows:           report.Preprocessing.OutputRows,
		AbsentSections: AbsentSections(report),
	}

	if kpis, ok := report.KPIs.Get(); ok {
		total := kpis.TotalSales
		digest.TotalSales = &total
	}
	if forecast, ok := report.Forecast.Get(); ok && len(forecast.Forecast.Points) > 0 {
		next := forecast.Forecast.Points[0].Value
		digest.NextPeriodValue = &next
	}
	if segmentation, ok := report.Segments.Get(); ok {
		for _, summary := range segmentation.Summaries {
			if summary.Size > 0 {
				digest.Segments++
			}
		}
	}
	if churn, ok := report.Churn.Get(); ok {
		digest.RiskTierCounts = churn.TierCounts
	}

	return digest
}
