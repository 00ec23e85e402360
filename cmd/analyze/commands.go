package main

import (
	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/analyzing"
)

func newReportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file-or-url>",
		Short: "Print the full analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var serviceOpts []analyzing.Option
			if opts.progress {
				bar, hook := stageBar(cmd)
				defer bar.Finish()
				serviceOpts = append(serviceOpts, hook)
			}

			s, err := newSession(cmd, opts, args[0], serviceOpts...)
			if err != nil {
				return err
			}

			report, err := s.analyzer.Analyze(cmd.Context(), s.table, s.settings, s.asOf)
			if err != nil {
				return err
			}

			if opts.digest {
				return writeJSON(cmd.OutOrStdout(), analyzing.Digest(report))
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show stage progress on stderr")
	cmd.Flags().BoolVar(&opts.digest, "digest", false, "print only the short digest")
	return cmd
}

func newSchemaCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file-or-url>",
		Short: "Print column types and inferred roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), s.analyzer.Schema(s.table))
		},
	}
}

func newKPIsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "kpis <file-or-url>",
		Short: "Print the KPI summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, args[0])
			if err != nil {
				return err
			}
			kpis, err := s.analyzer.KPIs(s.table)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), kpis)
		},
	}
}

func newForecastCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast <file-or-url>",
		Short: "Print the sales forecast with its uncertainty band",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, args[0])
			if err != nil {
				return err
			}
			forecast, err := s.analyzer.Forecast(s.table, s.settings)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), forecast)
		},
	}
}

func newSegmentsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "segments <file-or-url>",
		Short: "Print the outlet segmentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, args[0])
			if err != nil {
				return err
			}
			segmentation, err := s.analyzer.Segments(s.table, s.settings)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), segmentation)
		},
	}
}

func newChurnCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "churn <file-or-url>",
		Short: "Print churn risk per outlet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, args[0])
			if err != nil {
				return err
			}
			churn, err := s.analyzer.Churn(s.table, s.settings, s.asOf)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), churn)
		},
	}
}
