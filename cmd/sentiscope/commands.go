package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/aggregate"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/monitoring"
	"github.com/spacesedan/sentiscope/internal/normalize"
	"github.com/spacesedan/sentiscope/internal/pipeline"
	"github.com/spacesedan/sentiscope/internal/report"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "sentiscope",
		Short:         "Aspect-level sentiment reports for product reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAnalyzeCmd(cfg),
		newAnalyzeFileCmd(cfg),
		newReportCmd(cfg),
		newExportCmd(cfg),
		newHealthCmd(cfg),
	)
	return root
}

// progressHooks prints the loading state the way an interactive front end would toggle it.
func progressHooks(w io.Writer) pipeline.Hooks {
	return pipeline.Hooks{
		OnStart: func(op string) {
			fmt.Fprintf(w, "%s: working...\n", op)
		},
		OnSuccess: func(op string) {
			fmt.Fprintf(w, "%s: done\n", op)
		},
		OnFailure: func(op string, err error) {
			fmt.Fprintf(w, "%s: failed: %v\n", op, err)
		},
	}
}

func newAnalyzeCmd(cfg config.Config) *cobra.Command {
	var (
		text    string
		product string
		aspects []string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a single review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			review, err := normalize.NormalizeSingle(text, product, aspects)
			if err != nil {
				return err
			}
			return submitAndSummarize(cmd, cfg, []models.Review{review})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "review text")
	cmd.Flags().StringVar(&product, "product", "", "product name")
	cmd.Flags().StringSliceVar(&aspects, "aspect", nil, "aspect to condition on (repeatable)")
	return cmd
}

func newAnalyzeFileCmd(cfg config.Config) *cobra.Command {
	var aspects []string

	cmd := &cobra.Command{
		Use:   "analyze-file <path>",
		Short: "Analyze every review in a text or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := normalize.LoadFile(args[0], aspects)
			if err != nil {
				return err
			}
			return submitAndSummarize(cmd, cfg, reviews)
		},
	}

	cmd.Flags().StringSliceVar(&aspects, "aspect", nil, "aspect applied to every review (repeatable)")
	return cmd
}

func submitAndSummarize(cmd *cobra.Command, cfg config.Config, reviews []models.Review) error {
	a, err := newApp(cmd.Context(), cfg, progressHooks(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer a.Close()

	batch, err := a.runner.Submit(cmd.Context(), reviews)
	if err != nil {
		return err
	}

	summary, _, err := aggregate.Aggregate(batch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %d review(s). %s\n", len(reviews), aggregate.SummaryText(summary))
	fmt.Fprintln(cmd.OutOrStdout(), "Run `sentiscope report` for the full breakdown.")
	return nil
}

func newReportCmd(cfg config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the report for the last submission",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), cfg, pipeline.Hooks{})
			if err != nil {
				return err
			}
			defer a.Close()

			rep, ok, err := a.runner.Report(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No analysis results yet. Run `sentiscope analyze` first.")
				return nil
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			fmt.Fprint(out, report.Markdown(rep))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newExportCmd(cfg config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the last report as a paginated PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg
			if out != "" {
				c.ExportDir = out
			}

			a, err := newApp(cmd.Context(), c, progressHooks(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := a.runner.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output directory (defaults to EXPORT_DIR)")
	return cmd
}

func newHealthCmd(cfg config.Config) *cobra.Command {
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the configured analysis backend is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := newBackend(cfg)
			if err != nil {
				return err
			}

			if watch > 0 {
				out := cmd.OutOrStdout()
				var healthy atomic.Bool
				monitoring.MonitorAnalyzerHealth(cmd.Context(), backend, watch, &healthy, func(ok bool) {
					fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.Kitchen), healthLine(backend.Name(), ok))
				})
				return nil
			}

			if !monitoring.CheckAnalyzer(cmd.Context(), backend) {
				return errors.New(healthLine(backend.Name(), false))
			}
			fmt.Fprintln(cmd.OutOrStdout(), healthLine(backend.Name(), true))
			return nil
		},
	}

	cmd.Flags().DurationVar(&watch, "watch", 0, "keep probing at this interval until interrupted, printing each change")
	return cmd
}

func healthLine(backend string, healthy bool) string {
	if healthy {
		return backend + " backend is healthy"
	}
	return backend + " backend is unhealthy"
}
