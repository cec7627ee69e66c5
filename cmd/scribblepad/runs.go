package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/scribblepad/internal/export"
	"github.com/san-kum/scribblepad/internal/storage"
)

var (
	plotPNG   string
	csvOutput string
)

func newRunsCmd() *cobra.Command {
	runs := &cobra.Command{
		Use:   "runs",
		Short: "manage recorded runs",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata and plot the trace",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&plotPNG, "png", "", "also write x/y/z over time to this PNG")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().ExportJSON(os.Stdout, args[0])
		},
	}

	csvCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	csvCmd.Flags().StringVarP(&csvOutput, "out", "o", "", "output file (default stdout)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store().Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}

	runs.AddCommand(listCmd, showCmd, exportCmd, csvCmd, deleteCmd)
	return runs
}

func store() *storage.Store {
	return storage.New(cfg.Storage.DataDir)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tDT\tSAMPLES\tSTATUS")
	for _, run := range runs {
		status := "ok"
		if run.Diverged {
			status = "diverged"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Samples,
			status,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := store()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("steps: %d (every %d, %d samples)\n", meta.Steps, meta.SampleEvery, meta.Samples)
	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(meta.Metrics))
		for name := range meta.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.6f\n", name, meta.Metrics[name])
		}
	}
	printTracePlots(samples)

	if plotPNG == "" {
		return nil
	}
	return writeFile(plotPNG, func(w io.Writer) error {
		return traceChart(meta, samples).WritePNG(w)
	})
}

func traceChart(meta *storage.RunMetadata, samples []storage.Sample) export.Chart {
	t := make([]float64, len(samples))
	x := make([]float64, len(samples))
	y := make([]float64, len(samples))
	z := make([]float64, len(samples))
	for i, s := range samples {
		t[i], x[i], y[i], z[i] = s.Time, s.State.X, s.State.Y, s.State.Z
	}
	return export.Chart{
		Title:  meta.Preset + " " + meta.ID,
		XLabel: "t",
		YLabel: "state",
		Width:  10,
		Height: 4,
		Series: []export.Series{
			{Label: "x", X: t, Y: x},
			{Label: "y", X: t, Y: y},
			{Label: "z", X: t, Y: z},
		},
	}
}

func exportCSV(cmd *cobra.Command, args []string) error {
	samples, err := store().LoadTrace(args[0])
	if err != nil {
		return err
	}
	if csvOutput == "" {
		return storage.WriteCSV(os.Stdout, samples)
	}
	return writeFile(csvOutput, func(w io.Writer) error {
		return storage.WriteCSV(w, samples)
	})
}
