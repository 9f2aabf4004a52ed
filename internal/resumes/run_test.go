package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"resumind-backend/internal/ai"
	"resumind-backend/internal/shared/storage/kv"
)

type stubBlob struct {
	objects  map[string][]byte
	uploads  []string
	failName string
}

func newStubBlob() *stubBlob {
	return &stubBlob{objects: map[string][]byte{}}
}

func (s *stubBlob) Upload(ctx context.Context, fileName string, r io.Reader) (string, int64, string, error) {
	if s.failName != "" && strings.Contains(fileName, s.failName) {
		return "", 0, "", fmt.Errorf("upload rejected")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	ref := "blob/" + fileName
	s.objects[ref] = data
	s.uploads = append(s.uploads, fileName)
	return ref, int64(len(data)), "application/octet-stream", nil
}

func (s *stubBlob) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	data, ok := s.objects[ref]
	if !ok {
		return nil, fmt.Errorf("no such object %s", ref)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type stubAI struct {
	reply ai.Message
	err   error
	calls int
}

func (s *stubAI) Complete(ctx context.Context, instructions string) (ai.Message, error) {
	s.calls++
	if s.err != nil {
		return ai.Message{}, s.err
	}
	return s.reply, nil
}

func validFeedbackJSON() string {
	return `{
		"overallScore": 82,
		"ATS": {"score": 78, "tips": [{"type": "good", "tip": "Clear section headers"}]},
		"toneAndStyle": {"score": 80, "tips": [{"type": "improve", "tip": "Tighten summary", "explanation": "The opening paragraph runs long."}]},
		"content": {"score": 75, "tips": [{"type": "good", "tip": "Quantified impact", "explanation": "Numbers back up the claims."}]},
		"structure": {"score": 85, "tips": [{"type": "good", "tip": "Reverse chronological", "explanation": "Easy to scan."}]},
		"skills": {"score": 70, "tips": [{"type": "improve", "tip": "Group by category", "explanation": "A flat list buries the relevant skills."}]}
	}`
}

func newTestRunner(store *stubBlob, records *RecordStore, client ai.Client) *Runner {
	r := NewRunner(store, records, client)
	r.Convert = func(ctx context.Context, fileName string, data []byte) (string, []byte, error) {
		return "resume.png", []byte("png-bytes"), nil
	}
	r.Extract = func(ctx context.Context, data []byte) (string, error) {
		return "Jordan Lee\nBackend engineer, 8 years.", nil
	}
	return r
}

func runInput() RunInput {
	return RunInput{
		FileName:       "resume.pdf",
		Data:           []byte("%PDF-1.4 fake"),
		CompanyName:    "Acme",
		JobTitle:       "Backend Engineer",
		JobDescription: "Go and Postgres",
	}
}

func TestRunHappyPath(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{reply: ai.Message{Role: "assistant", Content: ai.TextContent(validFeedbackJSON())}}
	runner := newTestRunner(store, records, client)

	rec, err := runner.Run(context.Background(), runInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated id")
	}
	if rec.ResumePath != "blob/resume.pdf" || rec.ImagePath != "blob/resume.png" {
		t.Fatalf("unexpected blob refs: %q %q", rec.ResumePath, rec.ImagePath)
	}
	if !rec.Feedback.Populated() {
		t.Fatalf("expected populated feedback")
	}
	if rec.Feedback.Value.OverallScore != 82 {
		t.Fatalf("unexpected overall score %d", rec.Feedback.Value.OverallScore)
	}

	stored, err := records.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !stored.Feedback.Populated() {
		t.Fatalf("stored record missing feedback")
	}

	all, err := records.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one record after overwrite, got %d", len(all))
	}
}

func TestRunProgressOrder(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{reply: ai.Message{Role: "assistant", Content: ai.TextContent(validFeedbackJSON())}}
	runner := newTestRunner(store, records, client)

	var seen []Stage
	in := runInput()
	in.Progress = func(stage Stage, status string) {
		seen = append(seen, stage)
		if status == "" {
			t.Errorf("empty status for stage %s", stage)
		}
	}
	if _, err := runner.Run(context.Background(), in); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []Stage{
		StageUploading, StageConverting, StageExtracting, StageUploadingPreview,
		StageCreatingRecord, StageAnalyzing, StageParsingFeedback, StagePersisting, StageComplete,
	}
	if len(seen) != len(want) {
		t.Fatalf("stage count: got %d want %d (%v)", len(seen), len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("stage %d: got %s want %s", i, seen[i], want[i])
		}
	}
}

func TestRunNoExtractableText(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{}
	runner := newTestRunner(store, records, client)
	runner.Extract = func(ctx context.Context, data []byte) (string, error) {
		return "  \n\t ", nil
	}

	_, err := runner.Run(context.Background(), runInput())
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if re.Kind != KindExtractionFailed || re.Stage != StageExtracting {
		t.Fatalf("got kind=%s stage=%s", re.Kind, re.Stage)
	}
	if client.calls != 0 {
		t.Fatalf("completion service called on extraction failure")
	}

	all, _ := records.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("no record should exist before the creating step, got %d", len(all))
	}
}

func TestRunConversionFailure(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	runner := newTestRunner(store, records, &stubAI{})
	runner.Convert = func(ctx context.Context, fileName string, data []byte) (string, []byte, error) {
		return "", nil, fmt.Errorf("render engine crashed")
	}

	_, err := runner.Run(context.Background(), runInput())
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if re.Kind != KindConversionFailed || re.Stage != StageConverting {
		t.Fatalf("got kind=%s stage=%s", re.Kind, re.Stage)
	}
}

func TestRunUploadFailure(t *testing.T) {
	store := newStubBlob()
	store.failName = ".pdf"
	records := NewRecordStore(kv.NewMemoryStore())
	runner := newTestRunner(store, records, &stubAI{})

	_, err := runner.Run(context.Background(), runInput())
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if re.Kind != KindUploadFailed || re.Stage != StageUploading {
		t.Fatalf("got kind=%s stage=%s", re.Kind, re.Stage)
	}
}

func TestRunAnalysisFailureKeepsPlaceholder(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{err: fmt.Errorf("provider unavailable")}
	runner := newTestRunner(store, records, client)

	rec, err := runner.Run(context.Background(), runInput())
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if re.Kind != KindAnalysisFailed || re.Stage != StageAnalyzing {
		t.Fatalf("got kind=%s stage=%s", re.Kind, re.Stage)
	}
	if client.calls != 1 {
		t.Fatalf("completion service should be attempted exactly once, got %d", client.calls)
	}

	stored, err := records.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("placeholder record should survive the failure: %v", err)
	}
	if stored.Feedback.Populated() {
		t.Fatalf("placeholder record must carry empty feedback")
	}
}

func TestRunInvalidFeedbackShape(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{reply: ai.Message{Role: "assistant", Content: ai.TextContent("I could not produce JSON, sorry.")}}
	runner := newTestRunner(store, records, client)

	rec, err := runner.Run(context.Background(), runInput())
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if re.Kind != KindInvalidFeedbackShape || re.Stage != StageParsingFeedback {
		t.Fatalf("got kind=%s stage=%s", re.Kind, re.Stage)
	}
	if client.calls != 1 {
		t.Fatalf("no retry allowed after malformed feedback, got %d calls", client.calls)
	}

	stored, err := records.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("placeholder record should survive the failure: %v", err)
	}
	if stored.Feedback.Populated() {
		t.Fatalf("malformed feedback must not be persisted")
	}
}

func TestRunPartsContentNormalized(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{reply: ai.Message{
		Role:    "assistant",
		Content: ai.PartsContent([]ai.Part{{Type: "text", Text: validFeedbackJSON()}}),
	}}
	runner := newTestRunner(store, records, client)

	rec, err := runner.Run(context.Background(), runInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rec.Feedback.Populated() {
		t.Fatalf("expected populated feedback from parts-shaped content")
	}
}

func TestRunsWriteDistinctRecords(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{reply: ai.Message{Role: "assistant", Content: ai.TextContent(validFeedbackJSON())}}
	runner := newTestRunner(store, records, client)

	first, err := runner.Run(context.Background(), runInput())
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := runner.Run(context.Background(), runInput())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("runs must generate fresh ids, both got %s", first.ID)
	}

	all, err := records.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two independent records, got %d", len(all))
	}
}

func TestRunTrimsFormFields(t *testing.T) {
	store := newStubBlob()
	records := NewRecordStore(kv.NewMemoryStore())
	client := &stubAI{reply: ai.Message{Role: "assistant", Content: ai.TextContent(validFeedbackJSON())}}
	runner := newTestRunner(store, records, client)

	in := runInput()
	in.CompanyName = "  Acme  "
	in.JobTitle = "\tBackend Engineer\n"
	rec, err := runner.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.CompanyName != "Acme" || rec.JobTitle != "Backend Engineer" {
		t.Fatalf("fields not trimmed: %q %q", rec.CompanyName, rec.JobTitle)
	}
}
