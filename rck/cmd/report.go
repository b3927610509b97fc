package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ackslab/rck/datarecording"
	"github.com/spf13/cobra"
)

const recordingExt = ".sqlite3"

func newReportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "report RECORDING",
		Short: "Summarize a recorded skirmish.",
		Long: "`report RECORDING` reads a database written by `skirmish " +
			"--record` and prints the properties of the run and how many " +
			"turns, crossings and narrative lines it holds.",
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}

	c.Flags().Bool("narrative", false, "Also print the recorded action log")
	c.Flags().Int("limit", 0, "Print at most this many narrative lines, 0 prints all")

	return c
}

func runReport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if filepath.Ext(path) != recordingExt {
		path += recordingExt
	}

	reader, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	reader.MapTable(datarecording.ExecTable, datarecording.ExecInfo{})
	reader.MapTable(datarecording.DispatchTable, datarecording.DispatchEntry{})
	reader.MapTable(datarecording.CrossingTable, datarecording.CrossingEntry{})
	reader.MapTable(datarecording.NarrativeTable, datarecording.NarrativeEntry{})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()

	if err := printExecInfo(ctx, out, reader); err != nil {
		return err
	}

	dispatched, err := count(ctx, reader, datarecording.DispatchTable, "")
	if err != nil {
		return err
	}

	interrupted, err := count(ctx, reader, datarecording.DispatchTable, "Interrupt = 1")
	if err != nil {
		return err
	}

	crossings, err := count(ctx, reader, datarecording.CrossingTable, "")
	if err != nil {
		return err
	}

	lines, err := count(ctx, reader, datarecording.NarrativeTable, "")
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Turns: %d, %d interrupted\n", dispatched, interrupted)
	fmt.Fprintf(out, "Crossings: %d\n", crossings)
	fmt.Fprintf(out, "Narrative lines: %d\n", lines)

	if narrative, _ := cmd.Flags().GetBool("narrative"); narrative {
		limit, _ := cmd.Flags().GetInt("limit")
		return printNarrative(ctx, out, reader, limit)
	}

	return nil
}

func printExecInfo(ctx context.Context, out io.Writer, reader datarecording.DataReader) error {
	results, _, err := reader.Query(ctx, datarecording.ExecTable,
		datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return fmt.Errorf("read %s: %w", datarecording.ExecTable, err)
	}

	for _, r := range results {
		info := r.(*datarecording.ExecInfo)
		fmt.Fprintf(out, "%-18s %s\n", info.Property+":", info.Value)
	}

	return nil
}

func count(
	ctx context.Context,
	reader datarecording.DataReader,
	table, where string,
) (int, error) {
	_, total, err := reader.Query(ctx, table,
		datarecording.QueryParams{Where: where, Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", table, err)
	}

	return total, nil
}

func printNarrative(
	ctx context.Context,
	out io.Writer,
	reader datarecording.DataReader,
	limit int,
) error {
	results, _, err := reader.Query(ctx, datarecording.NarrativeTable,
		datarecording.QueryParams{OrderBy: "Seq", Limit: limit})
	if err != nil {
		return fmt.Errorf("read %s: %w", datarecording.NarrativeTable, err)
	}

	for _, r := range results {
		e := r.(*datarecording.NarrativeEntry)
		fmt.Fprintf(out, "[%10.2f] %s\n", e.Time, e.Line)
	}

	return nil
}
