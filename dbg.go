package dbg

import (
	"io"
	"os"
	"sync"
	"time"

	"pkt.systems/dbg/ansi"
)

// Options controls how a Context renders and routes output.
type Options struct {
	// Writer is the default output sink for every instance created from the
	// context. Defaults to os.Stderr.
	Writer io.Writer

	// Selector is the initial enable selector, e.g. "api:*,-api:internal".
	// Empty means nothing is enabled until Enable is called.
	Selector string

	// NoColor forces color escape codes off regardless of terminal detection.
	NoColor bool

	// ForceColor bypasses terminal detection and emits color even when the
	// destination is not a TTY. Useful for tests and forced-color logs.
	ForceColor bool

	// Palette overrides the ANSI palette used for namespace coloring. When
	// nil, ansi.PaletteRich is used.
	Palette ansi.Palette

	// HideDate drops the timestamp prefix that non-color output carries.
	HideDate bool
}

// Context owns all shared state of a logger family: the compiled selector
// rules, the directive table, the set of live instances, and the default
// output sink. Hosts construct one (or use the package Default) and create
// instances from it; reconfiguring the context re-evaluates every instance
// it has created.
type Context struct {
	mu         sync.Mutex
	rules      ruleSet
	directives map[byte]Directive
	instances  []*Logger
	writer     io.Writer
	color      bool
	palette    ansi.Palette
	hideDate   bool
	now        func() time.Time
}

// NewContext builds a Context with explicit settings.
func NewContext(opts Options) *Context {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = ansi.PaletteRich
	}
	c := &Context{
		directives: defaultDirectives(),
		writer:     w,
		color:      !opts.NoColor && (opts.ForceColor || isTerminal(w)),
		palette:    palette,
		hideDate:   opts.HideDate,
		now:        time.Now,
	}
	if opts.Selector != "" {
		c.rules = compileSelector(opts.Selector)
	}
	return c
}

// New creates a logger instance for namespace, registers it with the
// context, and computes its enabled flag against the current rules.
func (c *Context) New(namespace string) *Logger {
	l := &Logger{
		ctx:       c,
		namespace: namespace,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.color {
		l.color = selectColor(c.palette, namespace)
	}
	l.enabled.Store(c.rules.enabled(namespace))
	c.instances = append(c.instances, l)
	return l
}

// Enable replaces the context's rule set by compiling selector and
// re-evaluates the enabled flag of every registered instance.
func (c *Context) Enable(selector string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = compileSelector(selector)
	c.recomputeLocked()
}

// Disable clears the rule set (every instance goes dark) and returns a
// selector string that, passed to Enable, reconstructs the rules that were
// just cleared.
func (c *Context) Disable() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.rules.selector()
	c.rules = ruleSet{}
	c.recomputeLocked()
	return prev
}

// Enabled reports whether namespace would be enabled under the current
// rules, without creating an instance.
func (c *Context) Enabled(namespace string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rules.enabled(namespace)
}

// RegisterDirective installs fn as the formatter for %<letter>. Passing nil
// removes a previously registered directive. Changes apply to subsequent
// emissions; an emission already in flight keeps the table it started with.
func (c *Context) RegisterDirective(letter byte, fn Directive) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn == nil {
		delete(c.directives, letter)
		return
	}
	c.directives[letter] = fn
}

func (c *Context) directiveSnapshot() map[byte]Directive {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make(map[byte]Directive, len(c.directives))
	for letter, fn := range c.directives {
		snapshot[letter] = fn
	}
	return snapshot
}

// recomputeLocked refreshes every instance's enabled flag. Callers hold
// c.mu.
func (c *Context) recomputeLocked() {
	for _, l := range c.instances {
		l.enabled.Store(c.rules.enabled(l.namespace))
	}
}

// unregister removes l from the instance list, reporting whether it was
// still registered.
func (c *Context) unregister(l *Logger) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, candidate := range c.instances {
		if candidate == l {
			c.instances = append(c.instances[:i], c.instances[i+1:]...)
			return true
		}
	}
	return false
}

var defaultContext = sync.OnceValue(func() *Context {
	return FromEnv()
})

// Default returns the process-wide context, built lazily from the
// environment on first use (see FromEnv).
func Default() *Context {
	return defaultContext()
}

// New creates a logger instance for namespace on the default context.
func New(namespace string) *Logger {
	return Default().New(namespace)
}

// Enable replaces the default context's selector.
func Enable(selector string) {
	Default().Enable(selector)
}

// Disable clears the default context's selector and returns its prior value.
func Disable() string {
	return Default().Disable()
}

// Enabled reports whether namespace is enabled on the default context.
func Enabled(namespace string) bool {
	return Default().Enabled(namespace)
}

// RegisterDirective installs a %<letter> formatter on the default context.
func RegisterDirective(letter byte, fn Directive) {
	Default().RegisterDirective(letter, fn)
}
