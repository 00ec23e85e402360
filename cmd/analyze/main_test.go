package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
)

const ordersCSV = `order_date,outlet,amount,quantity
2024-01-10,Loja Norte,100,2
2024-02-10,Loja Norte,120,3
2024-03-10,Loja Norte,130,3
2024-04-10,Loja Norte,150,4
2024-01-15,Loja Sul,400,8
2024-02-15,Loja Sul,420,9
2024-03-15,Loja Sul,410,8
2024-04-15,Loja Sul,450,10
2024-01-20,Loja Leste,50,1
2024-02-20,Loja Leste,40,1
`

func writeOrders(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vendas.csv")
	require.NoError(t, os.WriteFile(path, []byte(ordersCSV), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyze_Comandos(t *testing.T) {
	file := writeOrders(t)

	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, stdout string)
	}{
		{
			name: "Relatório completo",
			args: []string{"report", file, "--as-of", "2024-05-01", "--horizon", "2", "--mode", "trend"},
			validate: func(t *testing.T, stdout string) {
				var report domain.AnalysisReport
				require.NoError(t, json.Unmarshal([]byte(stdout), &report))
				assert.Equal(t, 2, report.Settings.ForecastHorizon)
				assert.True(t, report.KPIs.OK())
				forecast, ok := report.Forecast.Get()
				require.True(t, ok)
				assert.Len(t, forecast.Forecast.Points, 2)
			},
		},
		{
			name: "Resumo curto",
			args: []string{"report", file, "--digest", "--as-of", "2024-05-01"},
			validate: func(t *testing.T, stdout string) {
				var digest domain.ReportDigest
				require.NoError(t, json.Unmarshal([]byte(stdout), &digest))
				require.NotNil(t, digest.TotalSales)
				assert.Equal(t, 2270.0, *digest.TotalSales)
				assert.Equal(t, 10, digest.Rows)
			},
		},
		{
			name: "Esquema",
			args: []string{"schema", file},
			validate: func(t *testing.T, stdout string) {
				var schema domain.SchemaReport
				require.NoError(t, json.Unmarshal([]byte(stdout), &schema))
				assert.Len(t, schema.Columns, 4)
			},
		},
		{
			name: "Churn com data de referência",
			args: []string{"churn", file, "--as-of", "2024-05-01"},
			validate: func(t *testing.T, stdout string) {
				var churn domain.ChurnReport
				require.NoError(t, json.Unmarshal([]byte(stdout), &churn))
				require.NotEmpty(t, churn.Records)
				assert.Equal(t, "Loja Leste", churn.Records[0].Entity)
				assert.Equal(t, domain.RiskHigh, churn.Records[0].Tier)
			},
		},
		{
			name: "Segmentos em dois grupos",
			args: []string{"segments", file, "--clusters", "2"},
			validate: func(t *testing.T, stdout string) {
				var segmentation domain.Segmentation
				require.NoError(t, json.Unmarshal([]byte(stdout), &segmentation))
				assert.Len(t, segmentation.Summaries, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			require.NoError(t, err)
			tt.validate(t, stdout)
		})
	}
}

func TestAnalyze_BarraDeProgresso(t *testing.T) {
	stdout, stderr, err := run(t, "report", writeOrders(t), "--progress", "--digest")
	require.NoError(t, err)

	assert.Contains(t, stdout, "report_id")
	assert.NotEmpty(t, stderr)
}

func TestAnalyze_Erros(t *testing.T) {
	file := writeOrders(t)

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{name: "Horizonte fora do limite", args: []string{"forecast", file, "--horizon", "99"}, err: domain.ErrInvalidValue},
		{name: "Data de referência inválida", args: []string{"churn", file, "--as-of", "ontem"}, err: domain.ErrInvalidValue},
		{name: "Arquivo inexistente", args: []string{"kpis", filepath.Join(t.TempDir(), "nada.csv")}, err: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
