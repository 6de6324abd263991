package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
	"github.com/MKhiriev/go-note-sync/internal/metrics"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	GroupID: "sync",
	Short:   "Show the session state and client metrics",
	Args:    cobra.NoArgs,
	RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		out := cmd.OutOrStdout()
		snap := a.Services().Session.Snapshot()

		if snap.LoggedIn {
			fmt.Fprintf(out, "Logged in as %s\n", snap.Username)
		} else {
			fmt.Fprintln(out, "Logged out")
		}
		fmt.Fprintf(out, "State: %s\n", snap.State)
		fmt.Fprintf(out, "Notes: %d\n", len(a.Services().Notes.List()))
		if !snap.CurrentErr.IsNone() {
			fmt.Fprintf(out, "Last error: %s\n", snap.CurrentErr.Message())
		}

		if verbose, _ := cmd.Flags().GetBool("metrics"); !verbose {
			return nil
		}
		families, err := metrics.Gather()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		fmt.Fprintln(out)
		printMetrics(out, families)
		return nil
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		info := buildInfo()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), info)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Build version: %s\n", info.BuildVersion())
		fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", info.BuildDate())
		fmt.Fprintf(cmd.OutOrStdout(), "Build commit: %s\n", info.BuildCommit())
	},
}

func init() {
	statusCmd.Flags().Bool("metrics", false, "Also print the metrics collected by this run")
	versionCmd.Flags().Bool("short", false, "Print the build info on one line")
	rootCmd.AddCommand(statusCmd, versionCmd)
}

// printMetrics writes counters and gauges as "name{labels} value" lines.
// Histograms are summarised by their sample count.
func printMetrics(w io.Writer, families []*dto.MetricFamily) {
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	for _, f := range families {
		for _, m := range f.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch f.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s%s %g\n", f.GetName(), labels, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(w, "%s%s %g\n", f.GetName(), labels, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				fmt.Fprintf(w, "%s_count%s %d\n", f.GetName(), labels, m.GetHistogram().GetSampleCount())
			}
		}
	}
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
