package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/khrees2412/screener/internal/app"
	"github.com/khrees2412/screener/internal/evaluator"
	"github.com/khrees2412/screener/pkg/models"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const noQualification = "None"

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single candidate",
	Long:  "Score one candidate entered with flags or through an interactive form",
	Example: `  screener evaluate --name "Ada Obi" --skills "Python, SQL" --experience 6 --qualification MSc
  screener evaluate --interactive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}

		var input models.CandidateInput
		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			input, err = promptCandidate()
		} else {
			input, err = candidateFromFlags(cmd)
		}
		if err != nil {
			return err
		}

		rec, err := a.Screener.EvaluateManual(cmd.Context(), input)
		if err != nil {
			return err
		}

		mode, _ := evaluator.ParseMode(a.Config.Scoring.Mode)
		printEvaluation(cmd.OutOrStdout(), rec, mode)
		return nil
	},
}

func candidateFromFlags(cmd *cobra.Command) (models.CandidateInput, error) {
	name, _ := cmd.Flags().GetString("name")
	skills, _ := cmd.Flags().GetString("skills")
	years, _ := cmd.Flags().GetInt("experience")
	qualification, _ := cmd.Flags().GetString("qualification")

	if years < 0 {
		return models.CandidateInput{}, fmt.Errorf("%w: experience must not be negative", app.ErrInvalidArgument)
	}
	q := models.ParseQualification(qualification)
	if qualification != "" && !q.IsKnown() {
		return models.CandidateInput{}, fmt.Errorf("%w: qualification %q must be one of %v", app.ErrInvalidArgument, qualification, models.Qualifications)
	}

	return models.CandidateInput{
		Name:            name,
		Skills:          models.SplitSkills(skills),
		ExperienceYears: years,
		Qualification:   q,
	}, nil
}

func validateYears(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number of years")
	}
	if n < 0 {
		return errors.New("years must not be negative")
	}
	return nil
}

// promptCandidate collects a candidate through a promptui form
func promptCandidate() (models.CandidateInput, error) {
	namePrompt := promptui.Prompt{Label: "Name"}
	name, err := namePrompt.Run()
	if err != nil {
		return models.CandidateInput{}, err
	}

	skillsPrompt := promptui.Prompt{Label: "Skills (comma separated)"}
	skills, err := skillsPrompt.Run()
	if err != nil {
		return models.CandidateInput{}, err
	}

	yearsPrompt := promptui.Prompt{
		Label:    "Years of experience",
		Default:  "0",
		Validate: validateYears,
	}
	yearsText, err := yearsPrompt.Run()
	if err != nil {
		return models.CandidateInput{}, err
	}
	years, _ := strconv.Atoi(strings.TrimSpace(yearsText))

	items := []string{noQualification}
	for _, q := range models.Qualifications {
		items = append(items, string(q))
	}
	qualificationPrompt := promptui.Select{
		Label: "Highest qualification",
		Items: items,
	}
	_, selected, err := qualificationPrompt.Run()
	if err != nil {
		return models.CandidateInput{}, err
	}

	q := models.QualificationUnknown
	if selected != noQualification {
		q = models.Qualification(selected)
	}

	return models.CandidateInput{
		Name:            name,
		Skills:          models.SplitSkills(skills),
		ExperienceYears: years,
		Qualification:   q,
	}, nil
}

func addCandidateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "candidate name")
	cmd.Flags().StringP("skills", "s", "", "comma separated skills")
	cmd.Flags().IntP("experience", "e", 0, "years of experience")
	cmd.Flags().StringP("qualification", "q", "", fmt.Sprintf("highest qualification %v", models.Qualifications))
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().BoolP("interactive", "i", false, "enter the candidate through prompts")
	addCandidateFlags(evaluateCmd)
}
