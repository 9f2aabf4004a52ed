package resumes

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumind-backend/internal/ai"
	"resumind-backend/internal/convert"
	"resumind-backend/internal/extract"
	"resumind-backend/internal/feedback"
	"resumind-backend/internal/prompt"
	"resumind-backend/internal/shared/metrics"
	"resumind-backend/internal/shared/storage/blob"
	"resumind-backend/internal/shared/telemetry"
)

// Runner executes the analysis pipeline. Dependencies are injected so tests
// can substitute any of them.
type Runner struct {
	Blob    blob.Store
	Records *RecordStore
	AI      ai.Client

	// Convert and Extract default to the package implementations.
	Convert func(ctx context.Context, fileName string, data []byte) (string, []byte, error)
	Extract func(ctx context.Context, data []byte) (string, error)
}

// NewRunner constructs a Runner with the default conversion and extraction
// steps.
func NewRunner(store blob.Store, records *RecordStore, client ai.Client) *Runner {
	return &Runner{
		Blob:    store,
		Records: records,
		AI:      client,
		Convert: convert.FirstPagePNG,
		Extract: extract.Text,
	}
}

// RunInput carries one upload through the pipeline.
type RunInput struct {
	FileName       string
	Data           []byte
	CompanyName    string
	JobTitle       string
	JobDescription string

	// Progress, when set, receives each stage transition with its
	// human-readable status line.
	Progress func(stage Stage, status string)
}

// Run moves an upload through the full pipeline: store the original, render
// a first-page preview, extract the text, write a placeholder record, ask
// the completion service for feedback, validate its shape, and overwrite the
// record with the result. Each step is attempted exactly once; the first
// failure ends the run with a RunError naming the step family.
//
// The placeholder record is written before the completion call, so a run
// that dies mid-analysis still leaves a visible record with empty feedback.
func (r *Runner) Run(ctx context.Context, in RunInput) (Record, error) {
	metrics.IncRunStarted()
	started := time.Now()

	rec, err := r.run(ctx, in)
	elapsed := float64(time.Since(started).Milliseconds())
	metrics.ObserveRunDurationMs(elapsed)
	if err != nil {
		if re, ok := err.(*RunError); ok {
			metrics.IncRunFailed(string(re.Kind))
			telemetry.Error("run.failed", map[string]any{
				"kind":        string(re.Kind),
				"stage":       string(re.Stage),
				"error":       re.Err.Error(),
				"duration_ms": elapsed,
			})
		}
		return rec, err
	}

	metrics.IncRunCompleted()
	telemetry.Info("run.complete", map[string]any{
		"resume_id":   rec.ID,
		"duration_ms": elapsed,
	})
	return rec, nil
}

func (r *Runner) run(ctx context.Context, in RunInput) (Record, error) {
	report := func(stage Stage) {
		status := StatusText(stage)
		telemetry.Info("run.status", map[string]any{
			"stage":  string(stage),
			"status": status,
		})
		if in.Progress != nil {
			in.Progress(stage, status)
		}
	}

	report(StageUploading)
	resumePath, _, _, err := r.Blob.Upload(ctx, in.FileName, bytes.NewReader(in.Data))
	if err != nil {
		return Record{}, runErr(KindUploadFailed, StageUploading, err)
	}

	report(StageConverting)
	previewName, previewData, err := r.Convert(ctx, in.FileName, in.Data)
	if err != nil {
		return Record{}, runErr(KindConversionFailed, StageConverting, err)
	}

	report(StageExtracting)
	resumeText, err := r.Extract(ctx, in.Data)
	if err != nil {
		return Record{}, runErr(KindExtractionFailed, StageExtracting, err)
	}
	if strings.TrimSpace(resumeText) == "" {
		return Record{}, runErr(KindExtractionFailed, StageExtracting, fmt.Errorf("no extractable text"))
	}

	report(StageUploadingPreview)
	imagePath, _, _, err := r.Blob.Upload(ctx, previewName, bytes.NewReader(previewData))
	if err != nil {
		return Record{}, runErr(KindUploadFailed, StageUploadingPreview, err)
	}

	report(StageCreatingRecord)
	rec := Record{
		ID:             uuid.NewString(),
		ResumePath:     resumePath,
		ImagePath:      imagePath,
		CompanyName:    strings.TrimSpace(in.CompanyName),
		JobTitle:       strings.TrimSpace(in.JobTitle),
		JobDescription: strings.TrimSpace(in.JobDescription),
	}
	if err := r.Records.Put(ctx, rec); err != nil {
		return Record{}, runErr(KindPersistenceFailed, StageCreatingRecord, err)
	}

	report(StageAnalyzing)
	instructions := prompt.BuildInstructions(prompt.Input{
		JobTitle:       rec.JobTitle,
		JobDescription: rec.JobDescription,
		ResumeText:     resumeText,
	})
	msg, err := r.AI.Complete(ctx, instructions)
	if err != nil {
		return rec, runErr(KindAnalysisFailed, StageAnalyzing, err)
	}
	if msg.Content.Empty() {
		return rec, runErr(KindAnalysisFailed, StageAnalyzing, fmt.Errorf("empty completion content"))
	}

	report(StageParsingFeedback)
	parsed, err := feedback.Parse(msg.Content.Text())
	if err != nil {
		return rec, runErr(KindInvalidFeedbackShape, StageParsingFeedback, err)
	}

	report(StagePersisting)
	rec.Feedback = feedback.Optional{Value: &parsed}
	if err := r.Records.Put(ctx, rec); err != nil {
		return rec, runErr(KindPersistenceFailed, StagePersisting, err)
	}

	report(StageComplete)
	return rec, nil
}
