package scoring

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

var asOf = time.Date(2024, 6, 30, 15, 45, 0, 0, time.UTC)

func activityTable(t *testing.T, rows ...[2]string) *domain.Table {
	t.Helper()

	values := make([][]domain.Value, len(rows))
	for i, row := range rows {
		values[i] = []domain.Value{domain.TextValue(row[0]), domain.TextValue(row[1])}
	}

	table, err := domain.NewTable([]domain.Column{
		{Name: "outlet", Type: domain.ColumnText},
		{Name: "order_date", Type: domain.ColumnDate},
	}, values)
	require.NoError(t, err)
	return table
}

func daysBefore(days int) string {
	return time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days).Format(time.DateOnly)
}

func TestThresholds_Tier(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		name     string
		days     int
		expected domain.RiskTier
	}{
		{name: "61 dias é alto", days: 61, expected: domain.RiskHigh},
		{name: "60 dias ainda é médio", days: 60, expected: domain.RiskMedium},
		{name: "45 dias é médio", days: 45, expected: domain.RiskMedium},
		{name: "30 dias ainda é baixo", days: 30, expected: domain.RiskLow},
		{name: "20 dias é baixo", days: 20, expected: domain.RiskLow},
		{name: "Zero dias é baixo", days: 0, expected: domain.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, thresholds.Tier(tt.days))
		})
	}
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name       string
		thresholds Thresholds
		valid      bool
	}{
		{name: "Padrão", thresholds: DefaultThresholds(), valid: true},
		{name: "Médio zero", thresholds: Thresholds{HighDays: 1, MediumDays: 0}, valid: true},
		{name: "Médio negativo", thresholds: Thresholds{HighDays: 10, MediumDays: -1}},
		{name: "Médio igual ao alto", thresholds: Thresholds{HighDays: 30, MediumDays: 30}},
		{name: "Médio acima do alto", thresholds: Thresholds{HighDays: 10, MediumDays: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.thresholds.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidValue)
		})
	}
}

func TestScoreChurn(t *testing.T) {
	table := activityTable(t,
		[2]string{"Loja A", daysBefore(90)},
		[2]string{"Loja A", daysBefore(61)},
		[2]string{"Loja B", daysBefore(45)},
		[2]string{"Loja C", daysBefore(20)},
		[2]string{"Loja D", daysBefore(60)},
		[2]string{"Loja E", daysBefore(30)},
		[2]string{"Loja F", "sem data"},
		[2]string{"", daysBefore(5)},
		[2]string{"Loja G", "2024-07-10"},
	)

	report, err := ScoreChurn(table, "outlet", "order_date", asOf, DefaultThresholds())
	require.NoError(t, err)

	type row struct {
		entity string
		days   int
		tier   domain.RiskTier
	}
	got := make([]row, len(report.Records))
	for i, record := range report.Records {
		got[i] = row{record.Entity, record.DaysSinceLastActivity, record.Tier}
	}

	assert.Equal(t, []row{
		{"Loja A", 61, domain.RiskHigh},
		{"Loja D", 60, domain.RiskMedium},
		{"Loja B", 45, domain.RiskMedium},
		{"Loja E", 30, domain.RiskLow},
		{"Loja C", 20, domain.RiskLow},
		{"Loja G", 0, domain.RiskLow},
	}, got)

	assert.Equal(t, map[domain.RiskTier]int{domain.RiskHigh: 1, domain.RiskMedium: 2, domain.RiskLow: 3}, report.TierCounts)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), report.AsOf)
}

func TestScoreChurn_Erros(t *testing.T) {
	table := activityTable(t, [2]string{"Loja A", daysBefore(1)})

	_, err := ScoreChurn(table, "store", "order_date", asOf, DefaultThresholds())
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	_, err = ScoreChurn(table, "outlet", "date", asOf, DefaultThresholds())
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	_, err = ScoreChurn(table, "outlet", "order_date", asOf, Thresholds{HighDays: 10, MediumDays: 20})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestDaysSince_IgnoraHorarioDeReferencia(t *testing.T) {
	last := time.Date(2024, 6, 29, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(last, asOf))
	assert.Equal(t, 1, DaysSince(time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC), asOf))
}

func TestScoreChurn_PropriedadeDasFaixas(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("faixa segue os limites estritos", prop.ForAll(
		func(days, medium, gap int) bool {
			thresholds := Thresholds{HighDays: medium + gap, MediumDays: medium}
			tier := thresholds.Tier(days)

			switch {
			case days > thresholds.HighDays:
				return tier == domain.RiskHigh
			case days > thresholds.MediumDays:
				return tier == domain.RiskMedium
			default:
				return tier == domain.RiskLow
			}
		},
		gen.IntRange(0, 400),
		gen.IntRange(0, 180),
		gen.IntRange(1, 180),
	))

	properties.Property("dias nunca são negativos e a faixa é monotônica", prop.ForAll(
		func(offset int) bool {
			last := asOf.AddDate(0, 0, -offset)
			days := DaysSince(last, asOf)
			later := DaysSince(last.AddDate(0, 0, -1), asOf)
			return days >= 0 && later >= days
		},
		gen.IntRange(-30, 400),
	))

	properties.TestingRun(t)
}
