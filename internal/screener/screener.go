// Package screener runs evaluations and records them in a session history.
package screener

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/khrees2412/screener/internal/csvio"
	"github.com/khrees2412/screener/internal/evaluator"
	"github.com/khrees2412/screener/internal/extractor"
	"github.com/khrees2412/screener/internal/history"
	"github.com/khrees2412/screener/internal/logger"
	"github.com/khrees2412/screener/pkg/models"
	"go.uber.org/zap"
)

const maxLoggedText = 200

// Service evaluates candidates and appends every result to the store it
// was given. It never owns the store.
type Service struct {
	scorer *evaluator.Scorer
	store  history.Store
	logger *zap.Logger
	now    func() time.Time
}

// New wires a Service
func New(scorer *evaluator.Scorer, store history.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		scorer: scorer,
		store:  store,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) record(ctx context.Context, input models.CandidateInput, source models.Source) (models.ScreeningRecord, error) {
	input = input.Normalize()
	rec := models.ScreeningRecord{
		Input:     input,
		Result:    s.scorer.Score(input),
		Source:    source,
		CreatedAt: s.now(),
	}
	if err := s.store.Append(ctx, rec); err != nil {
		return rec, fmt.Errorf("record screening: %w", err)
	}

	s.logger.Debug("candidate evaluated",
		zap.String("name", input.DisplayName()),
		zap.String("source", string(source)),
		zap.Int("score", rec.Result.Score),
		zap.String("verdict", string(rec.Result.Verdict)),
	)
	return rec, nil
}

// EvaluateManual scores a candidate entered by hand
func (s *Service) EvaluateManual(ctx context.Context, input models.CandidateInput) (models.ScreeningRecord, error) {
	return s.record(ctx, input, models.SourceManual)
}

// BulkResult is a screened upload: the parsed table and one record per row
type BulkResult struct {
	Table   *csvio.Table
	Records []models.ScreeningRecord
}

// Results returns the evaluation results in row order
func (b *BulkResult) Results() []models.EvaluationResult {
	out := make([]models.EvaluationResult, len(b.Records))
	for i, rec := range b.Records {
		out[i] = rec.Result
	}
	return out
}

// WriteCSV writes the upload back out with Score and Screening Result
func (b *BulkResult) WriteCSV(w io.Writer) error {
	return csvio.WriteResults(w, b.Table, b.Results())
}

// ScreenCSV validates an upload and scores every row. A file that breaks
// the column contract is rejected before any row is recorded.
func (s *Service) ScreenCSV(ctx context.Context, r io.Reader) (*BulkResult, error) {
	table, err := csvio.ReadCandidates(r)
	if err != nil {
		s.logger.Warn("rejected candidate upload", zap.Error(err))
		return nil, err
	}

	result := &BulkResult{Table: table}
	for _, input := range table.Candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rec, err := s.record(ctx, input, models.SourceBulk)
		if err != nil {
			return result, err
		}
		result.Records = append(result.Records, rec)
	}

	s.logger.Info("screened candidate upload", zap.Int("rows", len(result.Records)))
	return result, nil
}

// Document is one uploaded résumé
type Document struct {
	Name string
	Data []byte
}

// DocumentOutcome is the per-file result of a multi-document screening.
// Exactly one of Record or Err is meaningful.
type DocumentOutcome struct {
	Name   string
	Record models.ScreeningRecord
	Err    error
}

// OK reports whether the document was screened
func (o DocumentOutcome) OK() bool {
	return o.Err == nil
}

// ScreenDocuments extracts and scores each document in turn. A document
// that cannot be read is reported in its outcome and the rest still run.
// The returned error is only set when the history itself fails.
func (s *Service) ScreenDocuments(ctx context.Context, docs []Document) ([]DocumentOutcome, error) {
	outcomes := make([]DocumentOutcome, 0, len(docs))
	failed := 0

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		input, err := s.extract(doc)
		if err != nil {
			s.logger.Warn("skipping document", zap.String("file", doc.Name), zap.Error(err))
			outcomes = append(outcomes, DocumentOutcome{Name: doc.Name, Err: err})
			failed++
			continue
		}

		rec, err := s.record(ctx, input, models.SourceDocument)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, DocumentOutcome{Name: doc.Name, Record: rec})
	}

	s.logger.Info("screened documents",
		zap.Int("total", len(docs)),
		zap.Int("failed", failed),
	)
	return outcomes, nil
}

func (s *Service) extract(doc Document) (models.CandidateInput, error) {
	format, err := extractor.DetectFormat(doc.Name)
	if err != nil {
		return models.CandidateInput{}, err
	}

	text, err := extractor.ExtractText(doc.Name, doc.Data, format)
	if err != nil {
		return models.CandidateInput{}, err
	}
	s.logger.Debug("extracted document text",
		zap.String("file", doc.Name),
		zap.Int("chars", len(text)),
		zap.String("text", logger.TruncateForLog(text, maxLoggedText)),
	)

	input := extractor.ParseFields(text)
	input.Name = extractor.NameFromFile(doc.Name)
	return input, nil
}

// History returns the full session history
func (s *Service) History(ctx context.Context) ([]models.ScreeningRecord, error) {
	return s.store.List(ctx)
}

// ClearHistory empties the session history
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.logger.Info("history cleared")
	return nil
}

// ExportHistory writes the full history, regardless of any filtered view
func (s *Service) ExportHistory(ctx context.Context, w io.Writer) (int, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), csvio.WriteHistory(w, records)
}
