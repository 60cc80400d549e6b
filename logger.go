package dbg

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"pkt.systems/dbg/ansi"
)

// Logger is one namespaced diagnostic instance. All Loggers created from the
// same Context share its selector rules, directive table, and default sink.
// A disabled Logger costs a single atomic load per call.
type Logger struct {
	ctx       *Context
	namespace string
	color     string // resolved ANSI prefix, empty when color is off
	enabled   atomic.Bool

	mu     sync.Mutex // guards writer and prev
	writer io.Writer  // per-instance override, nil means context default
	prev   time.Time  // previous emission, zero until first emission
}

// Namespace returns the instance's immutable namespace string.
func (l *Logger) Namespace() string {
	return l.namespace
}

// Enabled reports whether the instance currently emits. The flag changes
// only when the owning context's selector changes.
func (l *Logger) Enabled() bool {
	return l.enabled.Load()
}

// Logf emits a templated message. Disabled instances return immediately
// without touching the clock or the format pipeline.
func (l *Logger) Logf(format string, args ...any) {
	if !l.enabled.Load() {
		return
	}
	all := make([]any, 0, len(args)+1)
	all = append(all, format)
	all = append(all, args...)
	l.emit(all)
}

// Log emits with an arbitrary first argument. A leading error is replaced by
// its message; any other non-string first argument is rendered whole through
// the generic inspector.
func (l *Logger) Log(args ...any) {
	if !l.enabled.Load() {
		return
	}
	l.emit(args)
}

func (l *Logger) emit(args []any) {
	format, rest := expand(l.ctx.directiveSnapshot(), args)
	msg := render(format, rest)

	now := l.ctx.now()
	l.mu.Lock()
	var diff time.Duration
	if !l.prev.IsZero() {
		diff = now.Sub(l.prev)
	}
	l.prev = now
	w := l.writer
	l.mu.Unlock()
	if w == nil {
		w = l.ctx.writer
	}
	_, _ = io.WriteString(w, l.composeLine(msg, diff, now))
}

func (l *Logger) composeLine(msg string, diff time.Duration, now time.Time) string {
	var line strings.Builder
	line.Grow(len(l.namespace) + len(msg) + 48)
	if l.color != "" {
		line.WriteString(l.color)
		line.WriteString(ansi.Bold)
		line.WriteString(l.namespace)
		line.WriteString(ansi.Reset)
		line.WriteByte(' ')
		line.WriteString(msg)
		line.WriteByte(' ')
		line.WriteString(l.color)
		line.WriteByte('+')
		line.WriteString(humanize(diff))
		line.WriteString(ansi.Reset)
	} else {
		if !l.ctx.hideDate {
			line.WriteString(now.Format(time.RFC3339))
			line.WriteByte(' ')
		}
		line.WriteString(l.namespace)
		line.WriteByte(' ')
		line.WriteString(msg)
		line.WriteString(" +")
		line.WriteString(humanize(diff))
	}
	line.WriteByte('\n')
	return line.String()
}

// Extend derives a child instance whose namespace is the receiver's plus
// delimiter plus sub. The default delimiter is ":". The child inherits the
// receiver's writer override but computes its enabled flag independently
// from the current rules.
func (l *Logger) Extend(sub string, delimiter ...string) *Logger {
	delim := ":"
	if len(delimiter) > 0 {
		delim = delimiter[0]
	}
	child := l.ctx.New(l.namespace + delim + sub)
	l.mu.Lock()
	w := l.writer
	l.mu.Unlock()
	if w != nil {
		child.SetWriter(w)
	}
	return child
}

// SetWriter overrides where this instance writes. Passing nil restores the
// context default.
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	l.writer = w
	l.mu.Unlock()
}

// Destroy removes the instance from its context's registry, reporting
// whether it was still registered. A destroyed instance keeps working with
// its last-computed enabled flag; it simply no longer participates in
// selector re-evaluation.
func (l *Logger) Destroy() bool {
	return l.ctx.unregister(l)
}
