package testlog

import (
	"sync"

	"eats-backend/internal/logx"
)

// Entry is one captured log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Recorder captures log output so tests can assert on it. Safe for
// concurrent use; loggers handed out by Logger all feed one Recorder.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger that appends every call to the recorder.
func (r *Recorder) Logger() logx.Logger {
	return sink{rec: r}
}

// Entries returns a snapshot of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Has reports whether any entry was logged with exactly msg.
func (r *Recorder) Has(msg string) bool {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

// HasLevel reports whether any entry was logged at the given level.
func (r *Recorder) HasLevel(level string) bool {
	for _, e := range r.Entries() {
		if e.Level == level {
			return true
		}
	}
	return false
}

func (r *Recorder) record(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := append([]logx.Field(nil), fields...)
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: cp})
}

type sink struct {
	rec  *Recorder
	base []logx.Field
}

func (s sink) Debug(msg string, f ...logx.Field) { s.rec.record("debug", msg, append(s.base, f...)) }
func (s sink) Info(msg string, f ...logx.Field)  { s.rec.record("info", msg, append(s.base, f...)) }
func (s sink) Warn(msg string, f ...logx.Field)  { s.rec.record("warn", msg, append(s.base, f...)) }
func (s sink) Error(msg string, f ...logx.Field) { s.rec.record("error", msg, append(s.base, f...)) }

func (s sink) With(f ...logx.Field) logx.Logger {
	merged := append([]logx.Field(nil), s.base...)
	merged = append(merged, f...)
	return sink{rec: s.rec, base: merged}
}

var _ logx.Logger = sink{}
