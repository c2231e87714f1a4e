package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/klarakrnjic/Transcribus-project/internal/config"
	"github.com/klarakrnjic/Transcribus-project/internal/database"
	"github.com/klarakrnjic/Transcribus-project/internal/report"
)

// shortIDLength is how many characters of a run ID the listing shows.
// Any unique prefix is accepted wherever a run ID is expected.
const shortIDLength = 8

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect runs saved with analyze --save",
		Long: `History lists, shows and compares analysis runs stored in the history
database. Runs are stored when analyze is called with --save.

A run is addressed by its ID or any unique prefix of it.

Examples:
  # List the ten most recent runs
  htrdiff history list --limit 10

  # Show a stored run
  htrdiff history show 3f2a91c0

  # Compare the error counts of two runs
  htrdiff history diff 3f2a91c0 b7d01e44`,
	}

	cmd.PersistentFlags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryDiffCmd())
	cmd.AddCommand(newHistoryDeleteCmd())

	return cmd
}

// openHistory opens the existing history database for cmd.
func openHistory(cmd *cobra.Command) (*database.HistoryDB, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newHistoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}

			db, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeRunList(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}

func writeRunList(w io.Writer, runs []database.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No saved runs found.\n\nUse 'htrdiff analyze --save' to store a run.")
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			formatTime(r.CreatedAt),
			strconv.Itoa(r.Pages),
			strconv.Itoa(r.Stats.Total()),
			r.Reference,
			r.Hypothesis,
		})
	}
	_, err := fmt.Fprintln(w, report.RenderTable(report.StyleFor(w),
		[]string{"ID", "Created", "Pages", "Errors", "Reference", "Hypothesis"},
		rows,
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight},
	))
	return err
}

func newHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			var err error
			if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
				return err
			}
			if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
				return err
			}
			if cfg.JSONReport && cfg.MarkdownReport {
				return config.ErrConflictingReportFormats
			}
			cfg.Verbose = getVerboseFlag(cmd)

			db, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := db.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return outputReport(cfg, result, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output the run in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output the run as a Markdown report")
	return cmd
}

func newHistoryDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from-run-id> <to-run-id>",
		Short: "Compare the error counts of two saved runs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			diff, err := db.DiffRuns(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return writeRunDiff(cmd.OutOrStdout(), diff)
		},
	}
}

func writeRunDiff(w io.Writer, diff *database.RunDiff) error {
	fmt.Fprintf(w, "From: %s  %s\n", shortID(diff.From.ID), formatTime(diff.From.CreatedAt))
	fmt.Fprintf(w, "To:   %s  %s\n", shortID(diff.To.ID), formatTime(diff.To.CreatedAt))
	if !diff.SameInputs {
		fmt.Fprintln(w, "Note: the runs compared different documents.")
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(diff.Deltas)+1)
	var from, to int
	for _, d := range diff.Deltas {
		rows = append(rows, []string{
			d.Category.Label(),
			strconv.Itoa(d.From),
			strconv.Itoa(d.To),
			formatDelta(d.Delta()),
		})
		from += d.From
		to += d.To
	}
	rows = append(rows, []string{"Total", strconv.Itoa(from), strconv.Itoa(to), formatDelta(to - from)})

	_, err := fmt.Fprintln(w, report.RenderTable(report.StyleFor(w),
		[]string{"Category", "From", "To", "Change"},
		rows,
		[]report.Alignment{report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignRight},
	))
	return err
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDelta(d int) string {
	if d > 0 {
		return "+" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}
