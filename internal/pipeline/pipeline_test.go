package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/meeting-minutes/internal/artifact"
	"github.com/nguyentantai21042004/meeting-minutes/internal/audio"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

type fakePreparer struct {
	upload audio.Upload
	err    error
	calls  int
}

func (f *fakePreparer) Prepare(ctx context.Context, path string) (audio.Upload, error) {
	f.calls++
	if f.err != nil {
		return audio.Upload{}, f.err
	}
	if f.upload.Path != "" {
		return f.upload, nil
	}
	return audio.Upload{Path: path}, nil
}

func (f *fakePreparer) Size(path string) (int64, error) { return 0, nil }

func (f *fakePreparer) Duration(ctx context.Context, path string) (float64, error) { return 0, nil }

type fakeTranscriber struct {
	text     string
	err      error
	uploaded []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.uploaded = append(f.uploaded, audioPath)
	return f.text, f.err
}

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	fail    map[models.Section]error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	for _, section := range models.Sections {
		if strings.HasPrefix(prompt, summarizer.Instruction(section)) {
			if err := f.fail[section]; err != nil {
				return "", err
			}
			return section.Title() + " text", nil
		}
	}
	return "", errors.New("unknown prompt")
}

type countingStore struct {
	artifact.Store
	saves int
}

func (s *countingStore) Save(ctx context.Context, summary models.MeetingSummary) (string, error) {
	s.saves++
	return s.Store.Save(ctx, summary)
}

type harness struct {
	cfg         *config.Config
	preparer    *fakePreparer
	transcriber *fakeTranscriber
	generator   *fakeGenerator
	store       *countingStore
	out         *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gen := &fakeGenerator{}
	return &harness{
		cfg: &config.Config{
			Speech: config.SpeechConfig{APIKey: "stt"},
			LLM:    config.LLMConfig{APIKey: "llm"},
		},
		preparer:    &fakePreparer{},
		transcriber: &fakeTranscriber{text: "Alice will send the report by Friday."},
		generator:   gen,
		store:       &countingStore{Store: artifact.New(config.OutputConfig{Dir: t.TempDir()}, logger.Nop())},
		out:         &bytes.Buffer{},
	}
}

func (h *harness) pipeline(t *testing.T) Pipeline {
	t.Helper()
	p, err := New(h.cfg, Deps{
		Preparer:    h.preparer,
		Transcriber: h.transcriber,
		Summarizer:  summarizer.New(h.generator, logger.Nop(), 1),
		Store:       h.store,
		Logger:      logger.Nop(),
		Out:         h.out,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func readArtifact(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	return fields
}

func TestRun(t *testing.T) {
	h := newHarness(t)

	report, err := h.pipeline(t).Run(context.Background(), "meeting.mp3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Transcript != h.transcriber.text {
		t.Errorf("Transcript = %q", report.Transcript)
	}
	if report.TranscriptErr != nil {
		t.Errorf("TranscriptErr = %v", report.TranscriptErr)
	}
	if len(h.generator.prompts) != 4 {
		t.Errorf("generate calls = %d, want 4", len(h.generator.prompts))
	}
	for _, prompt := range h.generator.prompts {
		if !strings.HasSuffix(prompt, "\n\nText to analyze:\n"+h.transcriber.text) {
			t.Errorf("prompt does not end with transcript: %q", prompt)
		}
	}

	fields := readArtifact(t, report.ArtifactPath)
	if len(fields) != 4 {
		t.Errorf("artifact keys = %d, want 4", len(fields))
	}
	if fields["key_points"] != "Key Points text" {
		t.Errorf("key_points = %q", fields["key_points"])
	}

	want := "Abstract Summary: Abstract Summary text\n" +
		"Key Points: Key Points text\n" +
		"Action Items: Action Items text\n" +
		"Sentiment: Sentiment text\n"
	if h.out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", h.out.String(), want)
	}
}

func TestRunTranscriptionFailureContinues(t *testing.T) {
	h := newHarness(t)
	h.transcriber.text = ""
	h.transcriber.err = &transcriber.Error{Op: "request", StatusCode: 401, Body: "invalid api key"}

	report, err := h.pipeline(t).Run(context.Background(), "meeting.mp3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var tErr *transcriber.Error
	if !errors.As(report.TranscriptErr, &tErr) {
		t.Fatalf("TranscriptErr = %v, want *transcriber.Error", report.TranscriptErr)
	}
	if report.Transcript != "" {
		t.Errorf("Transcript = %q, want empty", report.Transcript)
	}
	if len(h.generator.prompts) != 4 {
		t.Errorf("generate calls = %d, want 4", len(h.generator.prompts))
	}
	for _, prompt := range h.generator.prompts {
		if !strings.HasSuffix(prompt, "Text to analyze:\n") {
			t.Errorf("prompt should carry an empty transcript: %q", prompt)
		}
	}
	if h.store.saves != 1 {
		t.Errorf("saves = %d, want 1", h.store.saves)
	}
}

func TestRunAbortOnTranscriptionError(t *testing.T) {
	h := newHarness(t)
	h.cfg.Pipeline.AbortOnTranscriptionError = true
	h.transcriber.err = &transcriber.Error{Op: "request", StatusCode: 500, Body: "boom"}

	report, err := h.pipeline(t).Run(context.Background(), "meeting.mp3")

	var tErr *transcriber.Error
	if !errors.As(err, &tErr) {
		t.Fatalf("Run() error = %v, want *transcriber.Error", err)
	}
	if report != nil {
		t.Errorf("report = %+v, want nil", report)
	}
	if len(h.generator.prompts) != 0 {
		t.Errorf("generate calls = %d, want 0", len(h.generator.prompts))
	}
	if h.store.saves != 0 {
		t.Errorf("saves = %d, want 0", h.store.saves)
	}
}

func TestRunSectionFailure(t *testing.T) {
	h := newHarness(t)
	h.generator.fail = map[models.Section]error{models.SectionSentiment: context.DeadlineExceeded}

	report, err := h.pipeline(t).Run(context.Background(), "meeting.mp3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.FailedSections) != 1 || report.FailedSections[0] != models.SectionSentiment {
		t.Errorf("FailedSections = %v", report.FailedSections)
	}

	fields := readArtifact(t, report.ArtifactPath)
	if !strings.HasPrefix(fields["sentiment"], summarizer.ErrorTextPrefix) {
		t.Errorf("sentiment = %q", fields["sentiment"])
	}
	if !strings.Contains(fields["sentiment"], context.DeadlineExceeded.Error()) {
		t.Errorf("sentiment = %q, want the timeout message", fields["sentiment"])
	}
	if fields["abstract_summary"] != "Abstract Summary text" {
		t.Errorf("abstract_summary = %q", fields["abstract_summary"])
	}
}

func TestRunPrepareError(t *testing.T) {
	h := newHarness(t)
	h.preparer.err = errors.New("stat audio file: no such file")

	if _, err := h.pipeline(t).Run(context.Background(), "missing.mp3"); err == nil {
		t.Fatal("Run() error = nil")
	}
	if len(h.transcriber.uploaded) != 0 {
		t.Errorf("transcriber called %d times", len(h.transcriber.uploaded))
	}
}

func TestRunRemovesTrimmedCopy(t *testing.T) {
	h := newHarness(t)

	trimmedDir := filepath.Join(t.TempDir(), "meeting-audio-1")
	if err := os.Mkdir(trimmedDir, 0o755); err != nil {
		t.Fatal(err)
	}
	trimmed := filepath.Join(trimmedDir, "compressed_audio.wav")
	if err := os.WriteFile(trimmed, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.preparer.upload = audio.Upload{Path: trimmed, TempDir: trimmedDir}

	if _, err := h.pipeline(t).Run(context.Background(), "meeting.mp3"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(h.transcriber.uploaded) != 1 || h.transcriber.uploaded[0] != trimmed {
		t.Errorf("uploaded = %v, want %s", h.transcriber.uploaded, trimmed)
	}
	if _, err := os.Stat(trimmedDir); !os.IsNotExist(err) {
		t.Errorf("trimmed copy still present: %v", err)
	}
}

func TestRunKeepsRecordingDirectory(t *testing.T) {
	h := newHarness(t)

	recordingDir := t.TempDir()
	recording := filepath.Join(recordingDir, "meeting.mp3")
	if err := os.WriteFile(recording, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A different spelling of the same file is not a temp copy.
	h.preparer.upload = audio.Upload{Path: recording}

	if _, err := h.pipeline(t).Run(context.Background(), recordingDir+"/./meeting.mp3"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(recording); err != nil {
		t.Errorf("recording removed: %v", err)
	}
}

func TestNewMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantKey string
	}{
		{"nil config", nil, "config"},
		{"missing speech key", &config.Config{LLM: config.LLMConfig{APIKey: "llm"}}, "SPEECH_API_KEY"},
		{"missing llm key", &config.Config{Speech: config.SpeechConfig{APIKey: "stt"}}, "LLM_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := New(tt.cfg, Deps{
				Preparer:    h.preparer,
				Transcriber: h.transcriber,
				Summarizer:  summarizer.New(h.generator, logger.Nop(), 1),
				Store:       h.store,
			})

			var cfgErr *config.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("New() error = %v, want *config.ConfigurationError", err)
			}
			if cfgErr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", cfgErr.Key, tt.wantKey)
			}
			if h.preparer.calls != 0 || len(h.transcriber.uploaded) != 0 || len(h.generator.prompts) != 0 {
				t.Error("a stage ran before configuration was validated")
			}
		})
	}
}

func TestNewMissingDependency(t *testing.T) {
	cfg := &config.Config{
		Speech: config.SpeechConfig{APIKey: "stt"},
		LLM:    config.LLMConfig{APIKey: "llm"},
	}
	if _, err := New(cfg, Deps{}); err == nil {
		t.Error("New() error = nil, want missing dependency error")
	}
}
