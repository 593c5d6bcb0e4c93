package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-matcher/internal/db"
	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/jonathan/career-matcher/internal/parsing"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the analyses running for one batch request.
const batchConcurrency = 4

// AnalyzeRequest is the body of POST /analyze.
// Pointers distinguish a missing field from an empty string.
type AnalyzeRequest struct {
	ResumeText           *string `json:"resumeText" validate:"required"`
	JobDescriptionText   *string `json:"jobDescriptionText" validate:"required"`
	JobDescriptionFormat string  `json:"jobDescriptionFormat,omitempty" validate:"omitempty,oneof=text html"`
	Label                string  `json:"label,omitempty" validate:"max=200"`
}

// BatchJob is one job description in a batch request.
type BatchJob struct {
	Label                string  `json:"label,omitempty" validate:"max=200"`
	JobDescriptionText   *string `json:"jobDescriptionText" validate:"required"`
	JobDescriptionFormat string  `json:"jobDescriptionFormat,omitempty" validate:"omitempty,oneof=text html"`
}

// BatchRequest is the body of POST /analyze/batch.
type BatchRequest struct {
	ResumeText *string    `json:"resumeText" validate:"required"`
	Jobs       []BatchJob `json:"jobs" validate:"required,min=1,dive"`
}

// BatchResult is one entry of a batch response, in request order.
type BatchResult struct {
	Label           string                    `json:"label"`
	Result          matching.Result           `json:"result"`
	Band            matching.Band             `json:"band"`
	Recommendations []matching.Recommendation `json:"recommendations"`
}

// BatchResponse is the body returned by POST /analyze/batch.
type BatchResponse struct {
	Results []BatchResult `json:"results"`
}

// handleAnalyze scores one resume against one job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.analyze(r.Context(), *req.ResumeText, *req.JobDescriptionText, req.JobDescriptionFormat, req.Label)
	if err != nil {
		s.analyzeFailed(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report.Result)
}

// handleAnalyzeBatch scores one resume against several job descriptions concurrently.
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Jobs) > s.maxBatch {
		s.writeError(w, r, &ErrValidation{Field: "jobs", Message: fmt.Sprintf("must have at most %d entries", s.maxBatch)})
		return
	}

	results := make([]BatchResult, len(req.Jobs))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)

	for i, job := range req.Jobs {
		label := job.Label
		if label == "" {
			label = fmt.Sprintf("job-%d", i+1)
		}
		g.Go(func() error {
			report, err := s.analyze(ctx, *req.ResumeText, *job.JobDescriptionText, job.JobDescriptionFormat, label)
			if err != nil {
				var ve *ErrValidation
				if errors.As(err, &ve) {
					ve.Field = fmt.Sprintf("jobs[%d].%s", i, ve.Field)
				}
				return err
			}
			results[i] = BatchResult{
				Label:           label,
				Result:          report.Result,
				Band:            report.Band,
				Recommendations: report.Recommendations,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.analyzeFailed(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results})
}

// analyze prepares the job description, consults the cache, runs the matcher
// and records the outcome in history when a store is configured.
func (s *Server) analyze(ctx context.Context, resume, jobDescription, format, label string) (matching.Report, error) {
	f, err := parsing.ParseFormat(format)
	if err != nil {
		return matching.Report{}, &ErrValidation{Field: "jobDescriptionFormat", Message: err.Error()}
	}
	text, err := parsing.Prepare(jobDescription, f)
	if err != nil {
		return matching.Report{}, &ErrValidation{Field: "jobDescriptionText", Message: err.Error()}
	}

	fingerprint := matching.Fingerprint(resume, text)
	report, ok := s.cache.get(fingerprint)
	if ok {
		s.log.Debug("analysis cache hit", zap.String("fingerprint", fingerprint[:12]))
	} else {
		report, err = s.matcher.ReportContext(ctx, resume, text)
		if err != nil {
			return matching.Report{}, err
		}
		s.cache.put(fingerprint, report)
	}

	s.record(ctx, label, text, fingerprint, &report)
	return report, nil
}

// record saves report to history unless the same inputs were already stored
// under the same label. Failures are logged, never returned: history is best
// effort and must not fail an analysis.
func (s *Server) record(ctx context.Context, label, jobDescription, fingerprint string, report *matching.Report) {
	if s.store == nil {
		return
	}
	existing, err := s.store.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		s.log.Warn("failed to look up analysis", zap.Error(err))
	} else if existing != nil && existing.Label == label {
		s.log.Debug("analysis already recorded", zap.String("id", existing.ID.String()))
		return
	}
	saved, err := s.store.SaveAnalysis(ctx, db.NewAnalysisInput(label, jobDescription, fingerprint, report))
	if err != nil {
		s.log.Warn("failed to save analysis", zap.Error(err))
		return
	}
	s.log.Debug("analysis saved", zap.String("id", saved.ID.String()), zap.Int("score", saved.Score))
}

// analyzeFailed handles errors from analyze. A cancelled request gets no
// body since the client has already gone.
func (s *Server) analyzeFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.log.Info("analysis abandoned", zap.String("path", r.URL.Path), zap.Error(err))
		return
	}
	s.writeError(w, r, err)
}
