// Package csvio implements the bulk upload and export CSV contracts.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/khrees2412/screener/pkg/models"
)

// Column names of the CSV contract
const (
	ColName          = "Name"
	ColSkills        = "Skills"
	ColExperience    = "Experience (Years)"
	ColQualification = "Qualification"
	ColScore         = "Score"
	ColResult        = "Screening Result"
)

// RequiredColumns must be present in every uploaded file
var RequiredColumns = []string{ColName, ColSkills, ColExperience}

// HistoryColumns is the column layout of a history export
var HistoryColumns = []string{ColName, ColSkills, ColExperience, ColQualification, ColScore, ColResult}

// header names accepted in place of the canonical ones
var aliases = map[string]string{
	"Experience": ColExperience,
	"Education":  ColQualification,
}

// ValidationError reports a file that breaks the column contract.
// No row of such a file is processed.
type ValidationError struct {
	Missing []string
	Line    int
	Column  string
	Value   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	if e.Line > 0 && e.Column == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: column %q value %q: %s", e.Line, e.Column, e.Value, e.Reason)
	}
	return e.Reason
}

// Table is a parsed upload: the original header and raw rows are kept so
// results can echo every input column
type Table struct {
	Header     []string
	Rows       [][]string
	Lines      []int
	Candidates []models.CandidateInput
	index      map[string]int
}

// Column returns the position of a canonical column, or -1
func (t *Table) Column(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func readHeader(cr *csv.Reader) ([]string, map[string]int, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, &ValidationError{Missing: RequiredColumns}
	}
	if err != nil {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("read header: %v", err)}
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		header[i] = h
		if canonical, ok := aliases[h]; ok {
			h = canonical
		}
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return header, index, nil
}

func requireColumns(index map[string]int, cols []string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseYears accepts non-negative whole numbers written as "6" or, as
// spreadsheet tools do, "6.0"
func parseYears(s string) (int, error) {
	whole, frac, dotted := strings.Cut(s, ".")
	if dotted && (frac == "" || strings.Trim(frac, "0") != "") {
		return 0, errors.New("must be a whole number")
	}
	n, err := strconv.Atoi(whole)
	if err != nil {
		return 0, errors.New("must be a whole number")
	}
	if n < 0 || strings.HasPrefix(whole, "-") {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

// ReadCandidates parses and validates an upload. The whole file is
// checked before anything is returned: a missing column or a bad
// experience value anywhere fails the file.
func ReadCandidates(r io.Reader) (*Table, error) {
	cr := newReader(r)

	header, index, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(index, RequiredColumns); err != nil {
		return nil, err
	}

	t := &Table{Header: header, index: index}
	qualCol := t.Column(ColQualification)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		if isBlank(row) {
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(row) > len(header) {
			return nil, &ValidationError{Line: line, Reason: fmt.Sprintf("row has %d fields but the header has %d", len(row), len(header))}
		}

		raw := field(row, index[ColExperience])
		years, err := parseYears(raw)
		if err != nil {
			return nil, &ValidationError{Line: line, Column: ColExperience, Value: raw, Reason: err.Error()}
		}

		t.Rows = append(t.Rows, row)
		t.Lines = append(t.Lines, line)
		t.Candidates = append(t.Candidates, models.CandidateInput{
			Name:            field(row, index[ColName]),
			Skills:          models.SplitSkills(field(row, index[ColSkills])),
			ExperienceYears: years,
			Qualification:   models.ParseQualification(field(row, qualCol)),
		})
	}

	return t, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// WriteResults echoes every input column and appends Score and
// Screening Result. Columns of those names already in the input are
// overwritten in place.
func WriteResults(w io.Writer, t *Table, results []models.EvaluationResult) error {
	if len(results) != len(t.Rows) {
		return fmt.Errorf("have %d results for %d rows", len(results), len(t.Rows))
	}

	header := append([]string(nil), t.Header...)
	scoreCol, resultCol := t.Column(ColScore), t.Column(ColResult)
	if scoreCol < 0 {
		scoreCol = len(header)
		header = append(header, ColScore)
	}
	if resultCol < 0 {
		resultCol = len(header)
		header = append(header, ColResult)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		out := make([]string, len(header))
		copy(out, row)
		out[scoreCol] = strconv.Itoa(results[i].Score)
		out[resultCol] = string(results[i].Verdict)
		if err := cw.Write(out); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistory exports records with the HistoryColumns layout
func WriteHistory(w io.Writer, records []models.ScreeningRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HistoryColumns); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Input.Name,
			models.JoinSkills(rec.Input.Skills),
			strconv.Itoa(rec.Input.ExperienceYears),
			string(rec.Input.Qualification),
			strconv.Itoa(rec.Result.Score),
			string(rec.Result.Verdict),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadHistory parses a history export back into records
func ReadHistory(r io.Reader) ([]models.ScreeningRecord, error) {
	t, err := ReadCandidates(r)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(t.index, []string{ColScore, ColResult}); err != nil {
		return nil, err
	}

	records := make([]models.ScreeningRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		line := t.Lines[i]
		raw := field(row, t.Column(ColScore))
		score, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ValidationError{Line: line, Column: ColScore, Value: raw, Reason: "must be an integer"}
		}
		raw = field(row, t.Column(ColResult))
		verdict, ok := models.ParseVerdict(raw)
		if !ok {
			return nil, &ValidationError{Line: line, Column: ColResult, Value: raw, Reason: "unknown verdict"}
		}
		records = append(records, models.ScreeningRecord{
			Input:  t.Candidates[i],
			Result: models.EvaluationResult{Score: score, Verdict: verdict},
		})
	}
	return records, nil
}
