package dbg

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pkt.systems/dbg/ansi"
)

// FromEnvOption customizes FromEnv behavior.
type FromEnvOption func(*fromEnvConfig)

type fromEnvConfig struct {
	prefix  string
	options Options
	writer  io.Writer
}

// WithEnvPrefix overrides the environment variable prefix used by FromEnv.
func WithEnvPrefix(prefix string) FromEnvOption {
	return func(cfg *fromEnvConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvOptions seeds FromEnv with explicit Options values.
func WithEnvOptions(opts Options) FromEnvOption {
	return func(cfg *fromEnvConfig) {
		cfg.options = opts
	}
}

// WithEnvWriter seeds FromEnv with a default output writer.
func WithEnvWriter(w io.Writer) FromEnvOption {
	return func(cfg *fromEnvConfig) {
		cfg.writer = w
	}
}

// FromEnv builds a Context from environment variables, allowing optional
// seeded options and writers. Environment values override supplied options.
//
// With the default prefix the recognised variables are: DEBUG (the enable
// selector), DEBUG_COLORS, DEBUG_HIDE_DATE, DEBUG_PALETTE, and DEBUG_OUTPUT.
// OUTPUT accepts stdout, stderr, default, a file path, or
// stdout+/stderr+/default+<path> to tee.
func FromEnv(opts ...FromEnvOption) *Context {
	cfg := fromEnvConfig{prefix: "DEBUG"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolvedOpts := cfg.options
	baseWriter := cfg.writer
	if baseWriter == nil {
		baseWriter = os.Stderr
	}
	prefix := cfg.prefix
	if value, ok := os.LookupEnv(prefix); ok {
		resolvedOpts.Selector = value
	}
	if value, ok := lookupEnv(prefix, "COLORS"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			resolvedOpts.NoColor = !parsed
			resolvedOpts.ForceColor = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "HIDE_DATE"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			resolvedOpts.HideDate = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "PALETTE"); ok {
		resolvedOpts.Palette = ansi.PaletteByName(value)
	}
	outputValue, hasOutput := lookupEnv(prefix, "OUTPUT")
	writer := baseWriter
	var outputErr error
	if hasOutput {
		if resolved, err := writerFromEnvOutput(outputValue, baseWriter); err != nil {
			outputErr = err
			writer = baseWriter
		} else {
			writer = resolved
		}
	}
	resolvedOpts.Writer = writer
	c := NewContext(resolvedOpts)
	if outputErr != nil {
		// A namespace ending in '*' is always enabled, so the failure is
		// visible even with an empty selector.
		warn := c.New("dbg*")
		warn.Logf("output open failed: %v", outputErr)
		warn.Destroy()
	}
	return c
}

func lookupEnv(prefix, key string) (string, bool) {
	if prefix == "" {
		return os.LookupEnv(key)
	}
	return os.LookupEnv(prefix + "_" + key)
}

func parseEnvBool(value string) (bool, bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

func writerFromEnvOutput(value string, base io.Writer) (io.Writer, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return base, nil
	}
	if base == nil {
		base = io.Discard
	}
	lowered := strings.ToLower(trimmed)
	switch lowered {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "default":
		return base, nil
	}
	const (
		stdoutPrefix  = "stdout+"
		stderrPrefix  = "stderr+"
		defaultPrefix = "default+"
	)
	switch {
	case strings.HasPrefix(lowered, stdoutPrefix):
		path := strings.TrimSpace(trimmed[len(stdoutPrefix):])
		if path == "" {
			return os.Stdout, nil
		}
		fileWriter, err := openOutputFile(path)
		if err != nil {
			return base, err
		}
		return newOwnedOutput(newTeeWriter(os.Stdout, fileWriter), fileWriter), nil
	case strings.HasPrefix(lowered, stderrPrefix):
		path := strings.TrimSpace(trimmed[len(stderrPrefix):])
		if path == "" {
			return os.Stderr, nil
		}
		fileWriter, err := openOutputFile(path)
		if err != nil {
			return base, err
		}
		return newOwnedOutput(newTeeWriter(os.Stderr, fileWriter), fileWriter), nil
	case strings.HasPrefix(lowered, defaultPrefix):
		path := strings.TrimSpace(trimmed[len(defaultPrefix):])
		if path == "" {
			return base, nil
		}
		fileWriter, err := openOutputFile(path)
		if err != nil {
			return base, err
		}
		return newOwnedOutput(newTeeWriter(base, fileWriter), fileWriter), nil
	default:
		fileWriter, err := openOutputFile(trimmed)
		if err != nil {
			return base, err
		}
		return newOwnedOutput(fileWriter, fileWriter), nil
	}
}

func openOutputFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug output %q: %w", path, err)
	}
	return file, nil
}
