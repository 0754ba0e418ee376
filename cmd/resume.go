package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/khrees2412/screener/internal/screener"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <file>...",
	Short: "Screen PDF or DOCX résumés",
	Long: `Extract skills, experience and qualification from each résumé and score it.

A résumé that cannot be read is reported and the remaining files are still
screened.`,
	Example: `  screener resume ~/Downloads/ada_obi.pdf
  screener resume ./cvs/*.docx --verdict strong`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}
		verdict, err := parseVerdictFlag(mustString(cmd, "verdict"))
		if err != nil {
			return err
		}

		// Read each file up front; unreadable files become failed outcomes
		outcomes := make([]screener.DocumentOutcome, len(args))
		var docs []screener.Document
		var slots []int
		for i, path := range args {
			name := filepath.Base(path)
			data, err := os.ReadFile(path)
			if err != nil {
				outcomes[i] = screener.DocumentOutcome{Name: name, Err: err}
				continue
			}
			docs = append(docs, screener.Document{Name: name, Data: data})
			slots = append(slots, i)
		}

		screened, err := a.Screener.ScreenDocuments(cmd.Context(), docs)
		for j, outcome := range screened {
			outcomes[slots[j]] = outcome
		}
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render("Résumé Screening"))

		ok, failed := 0, 0
		for _, outcome := range outcomes {
			if !outcome.OK() {
				failed++
				fmt.Fprintf(w, "  ✗ %s %s\n", valueStyle.Render(outcome.Name), errorStyle.Render(outcome.Err.Error()))
				continue
			}
			ok++
			if verdict != "" && outcome.Record.Result.Verdict != verdict {
				continue
			}
			fmt.Fprintf(w, "  ✓ %s %s %s %s\n",
				valueStyle.Render(outcome.Name),
				outcome.Record.Input.DisplayName(),
				mutedStyle.Render(fmt.Sprintf("[%d/100]", outcome.Record.Result.Score)),
				renderVerdict(outcome.Record.Result.Verdict),
			)
			fmt.Fprintf(w, "    %s %s | %s %d | %s %s\n",
				labelStyle.Render("Skills:"), skillsOrNone(outcome.Record.Input.Skills),
				labelStyle.Render("Years:"), outcome.Record.Input.ExperienceYears,
				labelStyle.Render("Qualification:"), qualificationOrNone(outcome.Record.Input.Qualification),
			)
		}

		fmt.Fprintf(w, "\n%s %d screened, %d failed\n", labelStyle.Render("Files:"), ok, failed)
		return nil
	},
}

func addResumeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("verdict", "v", "", "only list candidates with this verdict")
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	addResumeFlags(resumeCmd)
}
