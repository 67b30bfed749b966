package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Entry is a log record captured by a Recorder.
type Entry struct {
	Level   Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that keeps records in memory. It is meant for
// tests asserting on what a component logged.
type Recorder struct {
	level  Level
	attrs  []slog.Attr
	shared *recorderState
}

type recorderState struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns a Recorder keeping records at level and above.
func NewRecorder(level Level) *Recorder {
	return &Recorder{level: level, shared: &recorderState{}}
}

// Logger returns a logger writing to r.
func (r *Recorder) Logger() *slog.Logger { return slog.New(r) }

// Enabled implements slog.Handler.
func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level
}

// Handle implements slog.Handler.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	e := Entry{Level: rec.Level, Message: rec.Message, Attrs: make(map[string]any)}
	for _, a := range r.attrs {
		e.Attrs[a.Key] = a.Value.Resolve().Any()
	}
	rec.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	r.shared.mu.Lock()
	r.shared.entries = append(r.shared.entries, e)
	r.shared.mu.Unlock()
	return nil
}

// WithAttrs implements slog.Handler.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	merged = append(merged, r.attrs...)
	merged = append(merged, attrs...)
	return &Recorder{level: r.level, attrs: merged, shared: r.shared}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (r *Recorder) WithGroup(string) slog.Handler { return r }

// Entries returns a copy of the captured records.
func (r *Recorder) Entries() []Entry {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	out := make([]Entry, len(r.shared.entries))
	copy(out, r.shared.entries)
	return out
}

// Messages returns the messages of the captured records at level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
