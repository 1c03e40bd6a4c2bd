package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minhtri0502/speech-flow/internal/audio"
	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/internal/transcript"
)

type fakeAudio struct {
	convertErr map[string]error
	durations  map[string]float64
}

func (f *fakeAudio) Convert(ctx context.Context, srcPath, destDir string) (string, error) {
	if err := f.convertErr[filepath.Base(srcPath)]; err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return filepath.Join(destDir, base+".wav"), nil
}

func (f *fakeAudio) EncodeFLAC(ctx context.Context, wavPath, destDir string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeAudio) Duration(ctx context.Context, path string) (float64, error) {
	if d, ok := f.durations[filepath.Base(path)]; ok {
		return d, nil
	}
	return 0, errors.New("unknown file")
}

func (f *fakeAudio) Merge(ctx context.Context, segments []string, destDir string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeAudio) Record(ctx context.Context, destDir string, opts audio.RecordOptions) (string, error) {
	return "", errors.New("not implemented")
}

type fakeRecognizer struct {
	results map[string]transcript.Transcript
}

func (f *fakeRecognizer) Recognize(ctx context.Context, wavPath string) (transcript.Transcript, error) {
	tr, ok := f.results[filepath.Base(wavPath)]
	if !ok {
		return transcript.Transcript{}, errors.New("no result configured")
	}
	return tr, nil
}

type fakeExporter struct {
	texts map[string]string
	docx  map[string]string
}

func (f *fakeExporter) WriteText(path, title, content string) error {
	f.texts[path] = content
	return nil
}

func (f *fakeExporter) WriteDocx(path, title, content string) error {
	f.docx[path] = content
	return nil
}

func (f *fakeExporter) WriteMarkdownDocx(path, title, markdown string) error {
	f.docx[path] = markdown
	return nil
}

func newFakeExporter() *fakeExporter {
	return &fakeExporter{texts: map[string]string{}, docx: map[string]string{}}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Input:     filepath.Join(root, "input"),
			Output:    filepath.Join(root, "output"),
			Archived:  filepath.Join(root, "archived"),
			Temp:      filepath.Join(root, "temp"),
			Summaries: filepath.Join(root, "summaries"),
		},
		Export: config.ExportConfig{
			Formats:    []string{"txt"},
			Timestamps: true,
		},
	}
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived, cfg.Paths.Temp, cfg.Paths.Summaries} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func timedTranscript(texts []string, perSegment float64) transcript.Transcript {
	var segments []transcript.Segment
	current := 0.0
	for _, text := range texts {
		segments = append(segments, transcript.Segment{Start: current, End: current + perSegment, Text: text})
		current += perSegment
	}
	return transcript.Transcript{Segments: segments, Duration: current, Timed: true}
}

func TestProcessSingleFile(t *testing.T) {
	cfg := testConfig(t)
	src := filepath.Join(cfg.Paths.Input, "meeting.mp3")
	if err := os.WriteFile(src, []byte("fake audio"), 0644); err != nil {
		t.Fatal(err)
	}

	aud := &fakeAudio{durations: map[string]float64{"meeting.wav": 30}}
	rec := &fakeRecognizer{results: map[string]transcript.Transcript{
		"meeting.wav": timedTranscript([]string{"hello", "world"}, 5),
	}}
	exp := newFakeExporter()

	p := New(cfg, aud, rec, nil, exp, logger.New("error"))
	if err := p.Process(context.Background(), src); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	outPath := filepath.Join(cfg.Paths.Output, "meeting.txt")
	content, ok := exp.texts[outPath]
	if !ok {
		t.Fatalf("transcript not exported to %s, got %v", outPath, exp.texts)
	}
	if !strings.Contains(content, "[00:00] hello") || !strings.Contains(content, "[00:05] world") {
		t.Errorf("unexpected transcript content: %q", content)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "meeting.mp3")); err != nil {
		t.Errorf("original not archived: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("original still in input folder")
	}
}

func TestProcessEstimationFallback(t *testing.T) {
	cfg := testConfig(t)
	src := filepath.Join(cfg.Paths.Input, "note.wav")
	if err := os.WriteFile(src, []byte("fake audio"), 0644); err != nil {
		t.Fatal(err)
	}

	aud := &fakeAudio{durations: map[string]float64{"note.wav": 12}}
	rec := &fakeRecognizer{results: map[string]transcript.Transcript{
		"note.wav": {
			Segments: []transcript.Segment{{Text: "First sentence. Second sentence."}},
			Timed:    false,
		},
	}}
	exp := newFakeExporter()

	p := New(cfg, aud, rec, nil, exp, logger.New("error"))
	if err := p.Process(context.Background(), src); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	content := exp.texts[filepath.Join(cfg.Paths.Output, "note.txt")]
	if !strings.Contains(content, "[00:00] First sentence") {
		t.Errorf("estimated timestamps missing: %q", content)
	}
	if !strings.Contains(content, "[00:05] Second sentence") {
		t.Errorf("second sentence should start at the estimate midpoint: %q", content)
	}
}

func TestProcessBatchHeadersAndOffsets(t *testing.T) {
	cfg := testConfig(t)

	aud := &fakeAudio{durations: map[string]float64{
		"a.wav": 60,
		"b.wav": 30,
	}}
	rec := &fakeRecognizer{results: map[string]transcript.Transcript{
		"a.wav": timedTranscript([]string{"first file"}, 10),
		"b.wav": timedTranscript([]string{"second file"}, 10),
	}}
	exp := newFakeExporter()

	p := New(cfg, aud, rec, nil, exp, logger.New("error"))
	result, err := p.ProcessBatch(context.Background(), []string{"b.mp3", "a.mp3"})
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}
	if result.Succeeded != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 succeeded", result)
	}

	if len(exp.texts) != 1 {
		t.Fatalf("expected one combined output, got %d", len(exp.texts))
	}
	var content string
	for _, c := range exp.texts {
		content = c
	}

	// Files are processed in name order regardless of argument order.
	if !strings.Contains(content, "=== File 1: a.mp3 (starts at [00:00])") {
		t.Errorf("missing first header: %q", content)
	}
	if !strings.Contains(content, "=== File 2: b.mp3 (starts at [01:00])") {
		t.Errorf("second header should carry the cumulative offset: %q", content)
	}
	if !strings.Contains(content, "[01:00] second file") {
		t.Errorf("second file's segments should be shifted: %q", content)
	}
}

func TestProcessBatchFailureMarker(t *testing.T) {
	cfg := testConfig(t)

	aud := &fakeAudio{
		convertErr: map[string]error{"broken.mp3": errors.New("ffmpeg exploded")},
		durations: map[string]float64{
			"broken.mp3": 30,
			"ok.wav":     15,
		},
	}
	rec := &fakeRecognizer{results: map[string]transcript.Transcript{
		"ok.wav": timedTranscript([]string{"fine"}, 5),
	}}
	exp := newFakeExporter()

	p := New(cfg, aud, rec, nil, exp, logger.New("error"))
	result, err := p.ProcessBatch(context.Background(), []string{"broken.mp3", "ok.mp3"})
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}
	if result.Succeeded != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want 1 succeeded and 1 failed", result)
	}

	var content string
	for _, c := range exp.texts {
		content = c
	}
	if !strings.Contains(content, "=== File 1: broken.mp3") {
		t.Errorf("failed file should keep its header: %q", content)
	}
	if !strings.Contains(content, "[conversion failed]") {
		t.Errorf("missing failure marker: %q", content)
	}

	// The failed file still occupies 30s of the sequence, so the next file
	// keeps its real position.
	if !strings.Contains(content, "=== File 2: ok.mp3 (starts at [00:30])") {
		t.Errorf("failed file should advance the offset by its audio length: %q", content)
	}
	if !strings.Contains(content, "[00:30] fine") {
		t.Errorf("segments after a failed file should be shifted by its length: %q", content)
	}
}

func TestProcessBatchFailedFileWithoutDuration(t *testing.T) {
	cfg := testConfig(t)

	// broken.mp3 can't be converted and can't be probed either.
	aud := &fakeAudio{
		convertErr: map[string]error{"broken.mp3": errors.New("ffmpeg exploded")},
		durations:  map[string]float64{"ok.wav": 15},
	}
	rec := &fakeRecognizer{results: map[string]transcript.Transcript{
		"ok.wav": timedTranscript([]string{"fine"}, 5),
	}}
	exp := newFakeExporter()

	p := New(cfg, aud, rec, nil, exp, logger.New("error"))
	if _, err := p.ProcessBatch(context.Background(), []string{"broken.mp3", "ok.mp3"}); err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	var content string
	for _, c := range exp.texts {
		content = c
	}
	if !strings.Contains(content, "=== File 2: ok.mp3 (starts at [00:00])") {
		t.Errorf("unprobeable failed file should not shift the offset: %q", content)
	}
}

func TestProcessBatchEmpty(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeAudio{}, &fakeRecognizer{}, nil, newFakeExporter(), logger.New("error"))

	if _, err := p.ProcessBatch(context.Background(), nil); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestProcessBatchCancelled(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeAudio{}, &fakeRecognizer{}, nil, newFakeExporter(), logger.New("error"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if _, err := p.ProcessBatch(ctx, []string{"a.mp3"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancelled batch should return immediately")
	}
}
