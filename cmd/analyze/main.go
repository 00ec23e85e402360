// Package main implementa o analyze, CLI que roda o pipeline de análise sobre um arquivo local ou URL
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-intelligence-api/infrastructure/ingest"
	"github.com/vfg2006/sales-intelligence-api/internal/config"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-intelligence-api/pkg/log"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options guarda as flags compartilhadas entre os subcomandos
type options struct {
	horizon     int
	mode        string
	clusters    int
	churnHigh   int
	churnMedium int
	frequency   string
	topN        int
	asOf        string
	progress    bool
	digest      bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "analyze",
		Short: "Run the sales analytics pipeline over a CSV or XLSX file",
		Long: `analyze reads a CSV or XLSX export of business transactions and prints
the analysis as JSON. Defaults come from the same environment variables used by the API.

Examples:
  # Full report
  analyze report vendas.csv

  # Short digest of a remote export with a progress bar
  analyze report https://exports.example.com/vendas.xlsx --digest --progress

  # Weekly trend forecast for 8 periods
  analyze forecast vendas.csv --frequency weekly --mode trend --horizon 8`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.IntVar(&opts.horizon, "horizon", 0, "forecast horizon in periods")
	flags.StringVar(&opts.mode, "mode", "", "forecast mode: trend or seasonal")
	flags.IntVar(&opts.clusters, "clusters", 0, "number of outlet segments")
	flags.IntVar(&opts.churnHigh, "churn-high", 0, "days without orders for High risk")
	flags.IntVar(&opts.churnMedium, "churn-medium", 0, "days without orders for Medium risk")
	flags.StringVar(&opts.frequency, "frequency", "", "aggregation frequency: daily, weekly or monthly")
	flags.IntVar(&opts.topN, "top-n", 0, "entries per ranking")
	flags.StringVar(&opts.asOf, "as-of", "", "reference date for churn (default: today)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.Configure(opts.logLevel)
		logrus.SetOutput(cmd.ErrOrStderr())
	}

	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newSchemaCmd(opts))
	root.AddCommand(newKPIsCmd(opts))
	root.AddCommand(newForecastCmd(opts))
	root.AddCommand(newSegmentsCmd(opts))
	root.AddCommand(newChurnCmd(opts))

	return root
}

// session junta o que cada subcomando precisa para rodar
type session struct {
	analyzer analyzing.Analyzer
	table    *domain.Table
	settings domain.AnalysisSettings
	asOf     time.Time
}

func newSession(cmd *cobra.Command, opts *options, source string, serviceOpts ...analyzing.Option) (*session, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	analyzer := analyzing.NewService(cfg.Analytics, serviceOpts...)
	settings := applyFlags(cmd, opts, analyzer.DefaultSettings())

	asOf := time.Now()
	if opts.asOf != "" {
		parsed, ok := utils.ParseDateFlexible(opts.asOf)
		if !ok {
			return nil, domain.NewInvalidValueError("as_of", opts.asOf, "unrecognized date")
		}
		asOf = parsed
	}

	table, err := ingest.NewFileLoader(cfg.Ingest.MaxUploadBytes()).LoadSource(source)
	if err != nil {
		return nil, err
	}

	return &session{analyzer: analyzer, table: table, settings: settings, asOf: asOf}, nil
}

// applyFlags sobrescreve apenas as flags informadas na linha de comando
func applyFlags(cmd *cobra.Command, opts *options, settings domain.AnalysisSettings) domain.AnalysisSettings {
	changed := cmd.Flags().Changed
	if changed("horizon") {
		settings.ForecastHorizon = opts.horizon
	}
	if changed("mode") {
		settings.ForecastMode = opts.mode
	}
	if changed("clusters") {
		settings.ClusterCount = opts.clusters
	}
	if changed("churn-high") {
		settings.ChurnHighDays = opts.churnHigh
	}
	if changed("churn-medium") {
		settings.ChurnMediumDays = opts.churnMedium
	}
	if changed("frequency") {
		settings.Frequency = domain.Frequency(opts.frequency)
	}
	if changed("top-n") {
		settings.TopN = opts.topN
	}
	return settings
}

func writeJSON(w io.Writer, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// stageBar mostra o avanço das etapas no stderr
func stageBar(cmd *cobra.Command) (*progressbar.ProgressBar, analyzing.Option) {
	bar := progressbar.NewOptions(len(analyzing.Stages),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	return bar, analyzing.WithStageHook(func(stage string) {
		bar.Describe(stage)
		_ = bar.Add(1)
	})
}
