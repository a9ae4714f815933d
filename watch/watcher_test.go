package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/skillsenselab/diascribe/diarization"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/transcript"
	"github.com/skillsenselab/diascribe/transcription"
	"github.com/skillsenselab/diascribe/watch"
)

type fakeTranscriber struct {
	mu        sync.Mutex
	calls     []string
	processed chan string
}

func newFakeTranscriber() *fakeTranscriber {
	return &fakeTranscriber{processed: make(chan string, 16)}
}

func (f *fakeTranscriber) Name() string                       { return "fake-whisper" }
func (f *fakeTranscriber) IsAvailable(_ context.Context) bool { return true }

func (f *fakeTranscriber) Transcribe(_ context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.AudioPath)
	f.mu.Unlock()
	f.processed <- req.AudioPath
	return &transcription.TranscriptionResponse{
		Segments: []transcription.Segment{
			{Words: []transcript.Word{{Start: 0, End: 0.5, Text: "hej", Confidence: 1.0}}},
		},
	}, nil
}

func (f *fakeTranscriber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeDiarizer struct{}

func (fakeDiarizer) Name() string                       { return "fake-pyannote" }
func (fakeDiarizer) IsAvailable(_ context.Context) bool { return true }

func (fakeDiarizer) Diarize(_ context.Context, _ diarization.DiarizationRequest) (*diarization.DiarizationResponse, error) {
	return &diarization.DiarizationResponse{
		Turns:       []transcript.Turn{{Start: 0, End: 1, Speaker: "SPEAKER_00"}},
		NumSpeakers: 1,
	}, nil
}

func newTestWatcher(t *testing.T, dir string) (*watch.Watcher, *fakeTranscriber) {
	t.Helper()

	transcriber := newFakeTranscriber()
	p, err := pipeline.New(pipeline.Config{}, transcriber, fakeDiarizer{})
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}

	w, err := watch.New(watch.Config{
		Dir:           dir,
		Workers:       2,
		DebounceDelay: 20 * time.Millisecond,
	}, p)
	if err != nil {
		t.Fatalf("watch.New failed: %v", err)
	}
	return w, transcriber
}

// startWatcher starts the watcher and registers a cleanup that drains it
// before the test ends. Start attaches the directory synchronously, so
// tests can write recordings as soon as it returns.
func startWatcher(t *testing.T, w *watch.Watcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		cancel()
		t.Fatalf("Start failed: %v", err)
	}

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer stopCancel()
		if err := w.Stop(stopCtx); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
		cancel()
	})
}

func waitProcessed(t *testing.T, transcriber *fakeTranscriber) string {
	t.Helper()
	select {
	case path := <-transcriber.processed:
		return path
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a recording to be processed")
		return ""
	}
}

func TestWatcher_ProcessesNewRecording(t *testing.T) {
	dir := t.TempDir()
	w, transcriber := newTestWatcher(t, dir)
	startWatcher(t, w)

	audio := filepath.Join(dir, "meeting.mp3")
	if err := os.WriteFile(audio, []byte("audio"), 0o600); err != nil {
		t.Fatalf("write recording: %v", err)
	}

	if got := waitProcessed(t, transcriber); got != audio {
		t.Errorf("processed %q, want %q", got, audio)
	}
}

func TestWatcher_ProcessesMultipleRecordings(t *testing.T) {
	dir := t.TempDir()
	w, transcriber := newTestWatcher(t, dir)
	startWatcher(t, w)

	want := map[string]bool{}
	for _, name := range []string{"a.mp3", "b.wav", "c.flac"} {
		path := filepath.Join(dir, name)
		want[path] = true
		if err := os.WriteFile(path, []byte("audio"), 0o600); err != nil {
			t.Fatalf("write recording: %v", err)
		}
	}

	for i, n := 0, len(want); i < n; i++ {
		got := waitProcessed(t, transcriber)
		if !want[got] {
			t.Errorf("unexpected recording processed: %q", got)
		}
		delete(want, got)
	}
	if len(want) != 0 {
		t.Errorf("recordings never processed: %v", want)
	}
}

func TestWatcher_SkipsUnsupportedAndTempFiles(t *testing.T) {
	dir := t.TempDir()
	w, transcriber := newTestWatcher(t, dir)
	startWatcher(t, w)

	for _, name := range []string{"notes.txt", "upload.wav.tmp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	audio := filepath.Join(dir, "real.mp3")
	if err := os.WriteFile(audio, []byte("audio"), 0o600); err != nil {
		t.Fatalf("write recording: %v", err)
	}

	if got := waitProcessed(t, transcriber); got != audio {
		t.Errorf("processed %q, want only %q", got, audio)
	}

	// The skipped files had a head start; if they were going to be
	// queued, they would have been processed before real.mp3.
	if n := transcriber.callCount(); n != 1 {
		t.Errorf("call count = %d, want 1", n)
	}
}

func TestWatcher_DebouncesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	w, transcriber := newTestWatcher(t, dir)
	startWatcher(t, w)

	audio := filepath.Join(dir, "burst.mp3")
	f, err := os.OpenFile(audio, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("create recording: %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := f.Write([]byte("chunk")); err != nil {
			t.Fatalf("write chunk: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close recording: %v", err)
	}

	waitProcessed(t, transcriber)

	// A broken debounce would enqueue again shortly after the first run.
	time.Sleep(200 * time.Millisecond)
	if n := transcriber.callCount(); n != 1 {
		t.Errorf("call count = %d, want 1 despite %d writes", n, 4)
	}
}

func TestNew_Validation(t *testing.T) {
	transcriber := newFakeTranscriber()
	p, err := pipeline.New(pipeline.Config{}, transcriber, fakeDiarizer{})
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}

	if _, err := watch.New(watch.Config{}, p); err == nil {
		t.Error("expected error for missing dir")
	}
	if _, err := watch.New(watch.Config{Dir: t.TempDir()}, nil); err == nil {
		t.Error("expected error for nil pipeline")
	}
}

func TestWatcher_RunningLifecycle(t *testing.T) {
	dir := t.TempDir()
	w, _ := newTestWatcher(t, dir)

	if w.Running() {
		t.Error("Running() = true before Start")
	}

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !w.Running() {
		t.Error("Running() = false after Start")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := w.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if w.Running() {
		t.Error("Running() = true after Stop")
	}

	// Stop is idempotent.
	if err := w.Stop(stopCtx); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
}

func TestWatcher_StartFailsOnMissingDir(t *testing.T) {
	transcriber := newFakeTranscriber()
	p, err := pipeline.New(pipeline.Config{}, transcriber, fakeDiarizer{})
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}

	w, err := watch.New(watch.Config{Dir: filepath.Join(t.TempDir(), "missing")}, p)
	if err != nil {
		t.Fatalf("watch.New failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Start(ctx); err == nil {
		t.Error("expected Start to fail for a directory that does not exist")
	}
	_ = w.Stop(ctx)
}
