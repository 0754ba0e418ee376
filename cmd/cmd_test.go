package cmd

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khrees2412/screener/internal/app"
	"github.com/khrees2412/screener/internal/config"
	"github.com/khrees2412/screener/internal/evaluator"
	"github.com/khrees2412/screener/internal/history"
	"github.com/khrees2412/screener/internal/screener"
	"github.com/khrees2412/screener/pkg/models"
	"go.uber.org/zap"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdictFlag(t *testing.T) {
	v, err := parseVerdictFlag("")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = parseVerdictFlag("strong")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictStrong, v)

	_, err = parseVerdictFlag("excellent")
	assert.ErrorIs(t, err, app.ErrInvalidArgument)
}

func candidateCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addCandidateFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestCandidateFromFlags(t *testing.T) {
	input, err := candidateFromFlags(candidateCmd(t,
		"--name", "Ada Obi",
		"--skills", "Python, SQL, python",
		"--experience", "6",
		"--qualification", "M.Sc",
	))
	require.NoError(t, err)
	assert.Equal(t, models.CandidateInput{
		Name:            "Ada Obi",
		Skills:          []string{"Python", "SQL"},
		ExperienceYears: 6,
		Qualification:   models.QualificationMSc,
	}, input)

	tests := []struct {
		name string
		args []string
	}{
		{"negative experience", []string{"--experience", "-1"}},
		{"unknown qualification", []string{"--qualification", "diploma of awesome"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := candidateFromFlags(candidateCmd(t, tt.args...))
			assert.ErrorIs(t, err, app.ErrInvalidArgument)
		})
	}
}

func TestValidateYears(t *testing.T) {
	assert.NoError(t, validateYears(" 4 "))
	assert.Error(t, validateYears("four"))
	assert.Error(t, validateYears("-2"))
}

func TestPrintEvaluation(t *testing.T) {
	rec := models.ScreeningRecord{
		Input: models.CandidateInput{
			Name:            "Ada",
			Skills:          []string{"Python", "SQL"},
			ExperienceYears: 6,
			Qualification:   models.QualificationMSc,
		},
		Result: models.EvaluationResult{Score: 75, Verdict: models.VerdictStrong},
	}

	var buf bytes.Buffer
	printEvaluation(&buf, rec, evaluator.ModeDeterministic)
	out := buf.String()
	assert.Contains(t, out, "Python, SQL")
	assert.Contains(t, out, "75/100")
	assert.Contains(t, out, "Strong Candidate (Shortlist)")
	assert.NotContains(t, out, "formula total")

	buf.Reset()
	printEvaluation(&buf, rec, evaluator.ModePerturbed)
	assert.Contains(t, buf.String(), "formula total 75")
}

func TestWriteOutput(t *testing.T) {
	cmd := &cobra.Command{}
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	write := func(w io.Writer) error {
		_, err := io.WriteString(w, "Name\n")
		return err
	}

	require.NoError(t, writeOutput(cmd, "-", write))
	assert.Equal(t, "Name\n", stdout.String())

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeOutput(cmd, path, write))
	assert.FileExists(t, path)

	assert.Error(t, writeOutput(cmd, filepath.Join(t.TempDir(), "missing", "out.csv"), write))
}

// runCommand runs a command's RunE against an in-memory session
func runCommand(t *testing.T, run func(*cobra.Command, []string) error, addFlags func(*cobra.Command), store history.Store, flags []string, args ...string) (string, error) {
	t.Helper()

	cmd := &cobra.Command{Use: "test", RunE: run}
	addFlags(cmd)
	require.NoError(t, cmd.ParseFlags(flags))

	a := &app.App{
		Config:   &config.Config{Session: "default", Scoring: config.ScoringConfig{Mode: "deterministic"}},
		Logger:   zap.NewNop(),
		Store:    store,
		Screener: screener.New(evaluator.NewDeterministic(), store, zap.NewNop()),
	}
	cmd.SetContext(app.SetAppInContext(context.Background(), a))

	var out bytes.Buffer
	cmd.SetOut(&out)
	err := run(cmd, args)
	return out.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func docx(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
		text + `</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const upload = "Name,Skills,Experience (Years),Qualification\nAda,\"Python, SQL\",6,MSC\nBola,,1,\n"

func TestBulkToStdoutWritesOnlyCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "candidates.csv", []byte(upload))

	out, err := runCommand(t, bulkCmd.RunE, addBulkFlags, history.NewMemoryStore(), []string{"--output", "-"}, path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Skills,Experience (Years),Qualification,Score,Screening Result\n"+
		"Ada,\"Python, SQL\",6,MSC,75,Strong\n"+
		"Bola,,1,,5,Weak\n", out)
}

func TestBulkListing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "candidates.csv", []byte(upload))
	store := history.NewMemoryStore()

	out, err := runCommand(t, bulkCmd.RunE, addBulkFlags, store, []string{"--verdict", "strong"}, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.NotContains(t, out, "Bola")
	assert.Contains(t, out, "Candidates screened: 2")

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	empty := writeFile(t, dir, "empty.csv", []byte("Name,Skills,Experience (Years)\n"))
	out, err = runCommand(t, bulkCmd.RunE, addBulkFlags, history.NewMemoryStore(), nil, empty)
	require.NoError(t, err)
	assert.Contains(t, out, "No candidates in "+empty)
}

func TestResumeKeepsFileOrderAcrossFailures(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "ada_obi.docx", docx(t, "Python, SQL and Machine Learning. 6 years. MSc.")),
		filepath.Join(dir, "missing.pdf"),
		writeFile(t, dir, "notes.txt", []byte("Python")),
		writeFile(t, dir, "bola.docx", docx(t, "Excel, 1 years")),
	}
	store := history.NewMemoryStore()

	out, err := runCommand(t, resumeCmd.RunE, addResumeFlags, store, nil, paths...)
	require.NoError(t, err)

	ada := strings.Index(out, "✓ ada_obi.docx")
	missing := strings.Index(out, "✗ missing.pdf")
	notes := strings.Index(out, "✗ notes.txt")
	bola := strings.Index(out, "✓ bola.docx")
	require.True(t, ada >= 0 && missing >= 0 && notes >= 0 && bola >= 0, out)
	assert.True(t, ada < missing && missing < notes && notes < bola, out)
	assert.Contains(t, out, "2 screened, 2 failed")

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ada Obi", records[0].Input.Name)
	assert.Equal(t, 85, records[0].Result.Score)
	assert.Equal(t, "Bola", records[1].Input.Name)
}
