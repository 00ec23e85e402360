// Package scoring classifica lojas em faixas de risco pela recência da última compra
package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

const (
	DefaultHighDays   = 60
	DefaultMediumDays = 30
)

// Thresholds define as faixas: High acima de HighDays, Medium acima de MediumDays
type Thresholds struct {
	HighDays   int `json:"high_days"`
	MediumDays int `json:"medium_days"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{HighDays: DefaultHighDays, MediumDays: DefaultMediumDays}
}

// Validate exige 0 <= MediumDays < HighDays
func (t Thresholds) Validate() error {
	if t.MediumDays < 0 {
		return domain.NewInvalidValueError("churn_medium_days", t.MediumDays, "must not be negative")
	}
	if t.MediumDays >= t.HighDays {
		return domain.NewInvalidValueError("churn_high_days", t.HighDays, "must be greater than churn_medium_days")
	}
	return nil
}

func (t Thresholds) Tier(days int) domain.RiskTier {
	switch {
	case days > t.HighDays:
		return domain.RiskHigh
	case days > t.MediumDays:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// DaysSince conta dias inteiros entre a última atividade e a meia-noite de asOf, nunca negativo
func DaysSince(lastActivity, asOf time.Time) int {
	days := int(math.Floor(utils.StartOfDay(asOf).Sub(lastActivity.UTC()).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// ScoreChurn calcula a última atividade de cada entidade e sua faixa de risco.
// Entidades sem nenhuma data válida ficam de fora.
func ScoreChurn(table *domain.Table, entityColumn, dateColumn string, asOf time.Time, thresholds Thresholds) (*domain.ChurnReport, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	if !table.HasColumn(entityColumn) {
		return nil, domain.NewMissingColumnError(entityColumn)
	}
	if !table.HasColumn(dateColumn) {
		return nil, domain.NewMissingColumnError(dateColumn)
	}

	lastActivity := make(map[string]time.Time)
	for row := 0; row < table.Len(); row++ {
		entityValue := table.Value(row, entityColumn)
		if entityValue.IsNull() {
			continue
		}
		date, ok := table.Value(row, dateColumn).AsTime()
		if !ok {
			continue
		}

		entity := strings.TrimSpace(entityValue.String())
		if last, seen := lastActivity[entity]; !seen || date.After(last) {
			lastActivity[entity] = date
		}
	}

	report := &domain.ChurnReport{
		AsOf:       utils.StartOfDay(asOf),
		HighDays:   thresholds.HighDays,
		MediumDays: thresholds.MediumDays,
		Records:    make([]domain.RiskRecord, 0, len(lastActivity)),
	}

	for entity, last := range lastActivity {
		days := DaysSince(last, asOf)
		report.Records = append(report.Records, domain.RiskRecord{
			Entity:                entity,
			LastActivity:          last,
			DaysSinceLastActivity: days,
			Tier:                  thresholds.Tier(days),
		})
	}

	sort.Slice(report.Records, func(i, j int) bool {
		a, b := report.Records[i], report.Records[j]
		if a.DaysSinceLastActivity != b.DaysSinceLastActivity {
			return a.DaysSinceLastActivity > b.DaysSinceLastActivity
		}
		return a.Entity < b.Entity
	})
	report.TierCounts = TierCounts(report.Records)

	logrus.WithFields(logrus.Fields{
		"entities": len(report.Records),
		"high":     report.TierCounts[domain.RiskHigh],
		"as_of":    report.AsOf.Format(time.DateOnly),
	}).Debug("churn: risco calculado")

	return report, nil
}

func TierCounts(records []domain.RiskRecord) map[domain.RiskTier]int {
	counts := map[domain.RiskTier]int{
		domain.RiskLow:    0,
		domain.RiskMedium: 0,
		domain.RiskHigh:   0,
	}
	for _, record := range records {
		counts[record.Tier]++
	}
	return counts
}
