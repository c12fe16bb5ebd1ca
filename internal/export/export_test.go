package export

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docdraft/internal/document"
)

type engineFunc func(ctx context.Context, markup string, opts Options) ([]byte, error)

func (f engineFunc) Render(ctx context.Context, markup string, opts Options) ([]byte, error) {
	return f(ctx, markup, opts)
}

func testDoc() document.Document {
	return document.Document{Blocks: []document.Block{
		{Key: "h", Type: document.HeaderTwo, Text: "Scope"},
		{Key: "p", Type: document.Unstyled, Text: "Body"},
	}}
}

func TestExporter_PassesMarkupAndDefaults(t *testing.T) {
	var gotMarkup string
	var gotOpts Options
	eng := engineFunc(func(_ context.Context, m string, o Options) ([]byte, error) {
		gotMarkup = m
		gotOpts = o
		return []byte("%PDF-stub"), nil
	})

	out, err := NewExporter(eng).Export(context.Background(), testDoc(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "%PDF-stub" {
		t.Errorf("expected engine output passthrough, got %q", out)
	}
	if gotMarkup != "<h2>Scope</h2><p>Body</p>" {
		t.Errorf("expected serialized markup, got %q", gotMarkup)
	}
	def := DefaultOptions()
	if gotOpts.PageSize != def.PageSize || gotOpts.FontSizePt != def.FontSizePt || gotOpts.Filename != def.Filename {
		t.Errorf("expected defaults applied, got %+v", gotOpts)
	}
}

func TestExporter_EngineFailure(t *testing.T) {
	eng := engineFunc(func(context.Context, string, Options) ([]byte, error) {
		return nil, errors.New("renderer exploded")
	})
	out, err := NewExporter(eng).Export(context.Background(), testDoc(), Options{})
	if err == nil {
		t.Fatal("expected error from failing engine")
	}
	if out != nil {
		t.Errorf("expected no partial artifact, got %d bytes", len(out))
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{"bad page size", func(o *Options) { o.PageSize = "ledger" }, "page size"},
		{"bad orientation", func(o *Options) { o.Orientation = "sideways" }, "orientation"},
		{"negative margin", func(o *Options) { o.Margins[2] = -1 }, "margin"},
	}
	for _, tt := range tests {
		opts := DefaultOptions()
		tt.mutate(&opts)
		err := opts.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: expected error containing %q, got %q", tt.name, tt.wantErr, err)
		}
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options should validate, got %v", err)
	}
}

func waitForStatus(t *testing.T, o *Orchestrator, id string, want JobStatus) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := o.GetJob(id).Snapshot()
		if snap.Status == want {
			return snap
		}
		if snap.Status == StatusFailed && want != StatusFailed {
			t.Fatalf("job failed: %s", snap.Error)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for status %q", want)
	return JobSnapshot{}
}

func TestOrchestrator_RendersSubmittedJob(t *testing.T) {
	eng := engineFunc(func(_ context.Context, m string, _ Options) ([]byte, error) {
		return []byte("artifact:" + m), nil
	})
	log := slog.New(slog.DiscardHandler)
	o := NewOrchestrator(NewExporter(eng), 1, 4, time.Minute, log)
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("sess", testDoc(), Options{Filename: "out.pdf"})
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	snap := waitForStatus(t, o, job.ID, StatusCompleted)
	if snap.Filename != "out.pdf" {
		t.Errorf("expected filename preserved, got %q", snap.Filename)
	}
	data, name := job.Artifact()
	if name != "out.pdf" || string(data) != "artifact:<h2>Scope</h2><p>Body</p>" {
		t.Errorf("unexpected artifact (%q, %q)", name, data)
	}
}

func TestOrchestrator_FailureIsTerminal(t *testing.T) {
	calls := 0
	eng := engineFunc(func(context.Context, string, Options) ([]byte, error) {
		calls++
		return nil, errors.New("boom")
	})
	log := slog.New(slog.DiscardHandler)
	o := NewOrchestrator(NewExporter(eng), 1, 4, time.Minute, log)
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("sess", testDoc(), Options{})
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	snap := waitForStatus(t, o, job.ID, StatusFailed)
	if !strings.Contains(snap.Error, "boom") {
		t.Errorf("expected failure reason, got %q", snap.Error)
	}
	if data, _ := job.Artifact(); data != nil {
		t.Error("expected no artifact from a failed job")
	}

	// Give the worker a beat; the pipeline must not retry.
	time.Sleep(20 * time.Millisecond)
	if calls != 1 {
		t.Errorf("expected exactly 1 render attempt, got %d", calls)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	block := make(chan struct{})
	eng := engineFunc(func(context.Context, string, Options) ([]byte, error) {
		<-block
		return []byte("x"), nil
	})
	log := slog.New(slog.DiscardHandler)
	o := NewOrchestrator(NewExporter(eng), 1, 1, time.Minute, log)
	o.Start(context.Background())
	defer func() {
		close(block)
		o.Stop()
	}()

	// First job occupies the worker, second fills the queue.
	if err := o.Submit(NewJob("s", testDoc(), Options{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The worker may not have picked up the first job yet; keep feeding
	// until the queue rejects.
	var rejected *Job
	for i := 0; i < 4; i++ {
		j := NewJob("s", testDoc(), Options{})
		if err := o.Submit(j); err != nil {
			rejected = j
			break
		}
	}
	if rejected == nil {
		t.Fatal("expected a submission to be rejected once the queue filled")
	}
	if snap := rejected.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("expected rejected job marked failed, got %q", snap.Status)
	}
}

func TestOrchestrator_SubmitAfterStop(t *testing.T) {
	eng := engineFunc(func(context.Context, string, Options) ([]byte, error) {
		return []byte("x"), nil
	})
	log := slog.New(slog.DiscardHandler)
	o := NewOrchestrator(NewExporter(eng), 1, 4, time.Minute, log)
	o.Start(context.Background())
	o.Stop()

	// A straggler submission must be rejected, not sent on the closed
	// queue.
	job := NewJob("sess", testDoc(), Options{})
	if err := o.Submit(job); err == nil {
		t.Fatal("expected submit after stop to fail")
	}
	if snap := job.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("expected straggler job marked failed, got %q", snap.Status)
	}

	// Repeated Stop stays safe.
	o.Stop()
}
