package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/khrees2412/screener/internal/history"
	"github.com/khrees2412/screener/pkg/models"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the session's screening history",
	Long:  "List, summarise, export and clear the candidates screened in the current session",
}

var listHistoryCmd = &cobra.Command{
	Use:   "list",
	Short: "List screened candidates grouped by verdict",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}
		verdict, err := parseVerdictFlag(mustString(cmd, "verdict"))
		if err != nil {
			return err
		}

		records, err := a.Screener.History(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(w, "No candidates screened yet. Try 'screener evaluate' or 'screener bulk <file.csv>'")
			return nil
		}

		filtered := records
		if verdict != "" {
			filtered = history.Filter(records, verdict)
		}
		if len(filtered) == 0 {
			fmt.Fprintf(w, "No candidates with verdict '%s'\n", verdict)
			return nil
		}

		fmt.Fprintln(w, titleStyle.Render("Screening History"))

		// Group by verdict, strongest first
		groups := make(map[models.Verdict][]models.ScreeningRecord)
		for _, rec := range filtered {
			groups[rec.Result.Verdict] = append(groups[rec.Result.Verdict], rec)
		}
		for i := len(models.Verdicts) - 1; i >= 0; i-- {
			v := models.Verdicts[i]
			group := groups[v]
			if len(group) == 0 {
				continue
			}

			fmt.Fprintf(w, "\n%s (%d)\n", renderVerdict(v), len(group))
			for j, rec := range group {
				printRow(w, j+1, rec)
				fmt.Fprintf(w, "     %s %s | %s\n",
					labelStyle.Render("Source:"), rec.Source,
					mutedStyle.Render(rec.CreatedAt.Local().Format("Jan 2, 2006 15:04")),
				)
			}
		}

		fmt.Fprintf(w, "\n%s %d of %d\n", labelStyle.Render("Candidates:"), len(filtered), len(records))
		return nil
	},
}

var exportHistoryCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history as CSV",
	Long:  "Write every candidate in the session to CSV. Export is never filtered by verdict.",
	Example: `  screener history export
  screener history export --output history.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		var n int
		err = writeOutput(cmd, output, func(w io.Writer) error {
			var err error
			n, err = a.Screener.ExportHistory(cmd.Context(), w)
			return err
		})
		if err != nil {
			return err
		}
		if output != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d candidates to %s\n", n, output)
		}
		return nil
	},
}

var statsHistoryCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the screening history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}

		records, err := a.Screener.History(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(w, "No candidates screened yet. Try 'screener evaluate' or 'screener bulk <file.csv>'")
			return nil
		}

		stats := history.Summarize(records)

		fmt.Fprintln(w, titleStyle.Render("Screening Statistics"))

		fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Overview"))
		fmt.Fprintf(w, "  Total Candidates: %d\n", stats.Total)
		fmt.Fprintf(w, "  Average Score: %.1f\n", stats.AverageScore)
		fmt.Fprintf(w, "  Top Candidate: %s (%d)\n", stats.TopCandidate, stats.TopScore)

		fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Verdicts"))
		for i := len(models.Verdicts) - 1; i >= 0; i-- {
			v := models.Verdicts[i]
			count := stats.ByVerdict[v]
			share := float64(count) / float64(stats.Total) * 100
			fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", renderVerdict(v), count, share)
		}

		fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Sources"))
		sources := make([]string, 0, len(stats.BySource))
		for s := range stats.BySource {
			sources = append(sources, string(s))
		}
		sort.Strings(sources)
		for _, s := range sources {
			fmt.Fprintf(w, "  %s: %d\n", s, stats.BySource[models.Source(s)])
		}
		return nil
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every candidate from the session history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Clear history of session %s", a.Config.Session),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
				return err
			}
		}

		if err := a.Screener.ClearHistory(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(listHistoryCmd)
	historyCmd.AddCommand(exportHistoryCmd)
	historyCmd.AddCommand(statsHistoryCmd)
	historyCmd.AddCommand(clearHistoryCmd)

	listHistoryCmd.Flags().StringP("verdict", "v", "", "only list candidates with this verdict")
	exportHistoryCmd.Flags().StringP("output", "o", "-", "file to write, or - for stdout")
	clearHistoryCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}
