package dbg

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeeWriterWritesAll(t *testing.T) {
	var a, b bytes.Buffer
	w := newTeeWriter(&a, &b)
	n, err := w.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "line\n", a.String())
	assert.Equal(t, "line\n", b.String())
}

type countingCloser struct{ closed int }

func (c *countingCloser) Close() error { c.closed++; return nil }

func TestOwnedOutputClosesOnce(t *testing.T) {
	var buf bytes.Buffer
	closer := &countingCloser{}
	w := newOwnedOutput(&buf, closer)

	_, err := w.Write([]byte("x"))
	require.NoError(t, err)

	require.NoError(t, CloseOutput(w))
	require.NoError(t, CloseOutput(w))
	assert.Equal(t, 1, closer.closed)
}

func TestCloseOutputLeavesStdStreamsAlone(t *testing.T) {
	assert.NoError(t, CloseOutput(nil))
	assert.NoError(t, CloseOutput(os.Stdout))
	assert.NoError(t, CloseOutput(os.Stderr))
	assert.NoError(t, CloseOutput(&bytes.Buffer{}))
}
