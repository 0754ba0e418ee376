package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/khrees2412/screener/internal/app"
	"github.com/khrees2412/screener/internal/evaluator"
	"github.com/khrees2412/screener/pkg/models"
)

// parseVerdictFlag accepts an empty value as "no filter"
func parseVerdictFlag(s string) (models.Verdict, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	v, ok := models.ParseVerdict(s)
	if !ok {
		return "", fmt.Errorf("%w: verdict %q must be one of %v", app.ErrInvalidArgument, s, models.Verdicts)
	}
	return v, nil
}

func skillsOrNone(skills []string) string {
	if len(skills) == 0 {
		return mutedStyle.Render("none")
	}
	return models.JoinSkills(skills)
}

func qualificationOrNone(q models.Qualification) string {
	if !q.IsKnown() {
		return mutedStyle.Render("none")
	}
	return string(q)
}

// printEvaluation renders one evaluation with its formula breakdown
func printEvaluation(w io.Writer, rec models.ScreeningRecord, mode evaluator.Mode) {
	fmt.Fprintln(w, titleStyle.Render(rec.Input.DisplayName()))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Skills:"), valueStyle.Render(skillsOrNone(rec.Input.Skills)))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Experience:"), valueStyle.Render(fmt.Sprintf("%d years", rec.Input.ExperienceYears)))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Qualification:"), valueStyle.Render(qualificationOrNone(rec.Input.Qualification)))

	b := evaluator.Explain(rec.Input)
	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Breakdown"))
	fmt.Fprintf(w, "  Skills:        %3d\n", b.Skills)
	fmt.Fprintf(w, "  Experience:    %3d\n", b.Experience)
	fmt.Fprintf(w, "  Qualification: %3d\n", b.Qualification)
	if mode != evaluator.ModeDeterministic {
		fmt.Fprintf(w, "  %s\n", mutedStyle.Render(fmt.Sprintf("(%s scoring: formula total %d)", mode, evaluator.Clamp(b.Raw))))
	}

	fmt.Fprintf(w, "\n%s %d/100\n", labelStyle.Render("Score:"), rec.Result.Score)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Verdict:"), verdictStyles[rec.Result.Verdict].Render(rec.Result.Verdict.Label()))
}

// printRow renders a record on a single line for lists
func printRow(w io.Writer, i int, rec models.ScreeningRecord) {
	fmt.Fprintf(w, "  %d. %s %s %s\n",
		i,
		valueStyle.Render(rec.Input.DisplayName()),
		mutedStyle.Render(fmt.Sprintf("[%d/100]", rec.Result.Score)),
		renderVerdict(rec.Result.Verdict),
	)
}
