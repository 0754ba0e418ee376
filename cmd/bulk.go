package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/khrees2412/screener/internal/history"
	"github.com/spf13/cobra"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk <file.csv>",
	Short: "Screen a CSV of candidates",
	Long: `Score every row of a CSV upload and record the results in the session.

The file needs Name, Skills and Experience (Years) columns; Qualification is
optional. A file that breaks the column contract is rejected before any row
is recorded.`,
	Example: `  screener bulk candidates.csv
  screener bulk candidates.csv --output screened.csv
  screener bulk candidates.csv --output - > screened.csv
  screener bulk candidates.csv --verdict strong`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		verdict, err := parseVerdictFlag(mustString(cmd, "verdict"))
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		result, err := a.Screener.ScreenCSV(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		if output != "" {
			if err := writeOutput(cmd, output, result.WriteCSV); err != nil {
				return err
			}
			if output == "-" {
				return nil
			}
		}

		w := cmd.OutOrStdout()
		records := result.Records
		if verdict != "" {
			records = history.Filter(records, verdict)
		}

		fmt.Fprintln(w, titleStyle.Render("Screening Results"))
		if len(records) == 0 {
			if verdict != "" {
				fmt.Fprintf(w, "No %s candidates in %s\n", verdict, args[0])
			} else {
				fmt.Fprintf(w, "No candidates in %s\n", args[0])
			}
		}
		for i, rec := range records {
			printRow(w, i+1, rec)
		}
		fmt.Fprintf(w, "\n%s %d\n", labelStyle.Render("Candidates screened:"), len(result.Records))
		if output != "" {
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Results written to:"), output)
		}
		return nil
	},
}

// writeOutput sends write to stdout for "-" or to a newly created file
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func mustString(cmd *cobra.Command, name string) string {
	s, _ := cmd.Flags().GetString(name)
	return s
}

func addBulkFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "write the scored CSV to a file, or - for stdout")
	cmd.Flags().StringP("verdict", "v", "", "only list candidates with this verdict")
}

func init() {
	rootCmd.AddCommand(bulkCmd)
	addBulkFlags(bulkCmd)
}
