package dbg

import (
	"io"
	"os"
	"sync"
)

type ownedCloser interface {
	ownedClose() error
}

// ownedOutput pairs a writer with the closer that owns its underlying
// resource, so tee'd file sinks opened by FromEnv can be released exactly
// once.
type ownedOutput struct {
	writer   io.Writer
	closer   io.Closer
	closeErr error
	once     sync.Once
}

func newOwnedOutput(writer io.Writer, closer io.Closer) io.Writer {
	if writer == nil {
		writer = io.Discard
	}
	if closer == nil {
		return writer
	}
	if existing, ok := writer.(*ownedOutput); ok {
		return existing
	}
	return &ownedOutput{writer: writer, closer: closer}
}

func (o *ownedOutput) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

func (o *ownedOutput) Close() error {
	return o.ownedClose()
}

func (o *ownedOutput) ownedClose() error {
	o.once.Do(func() {
		if o.closer != nil {
			o.closeErr = o.closer.Close()
		}
	})
	return o.closeErr
}

type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) io.Writer {
	return &teeWriter{writers: writers}
}

func (t *teeWriter) Write(p []byte) (int, error) {
	for _, w := range t.writers {
		n, err := w.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// CloseOutput releases any file sink a context writer owns. Standard streams
// and plain writers are left untouched.
func CloseOutput(w io.Writer) error {
	if w == nil || w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(ownedCloser); ok {
		return c.ownedClose()
	}
	return nil
}
