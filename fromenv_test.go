package dbg_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/dbg"
)

func TestFromEnvSelector(t *testing.T) {
	t.Setenv("DBGTEST", "svc:*,-svc:noise")
	t.Setenv("DBGTEST_COLORS", "0")
	t.Setenv("DBGTEST_HIDE_DATE", "1")

	var buf bytes.Buffer
	ctx := dbg.FromEnv(dbg.WithEnvPrefix("DBGTEST"), dbg.WithEnvWriter(&buf))

	assert.True(t, ctx.Enabled("svc:db"))
	assert.False(t, ctx.Enabled("svc:noise"))
	assert.False(t, ctx.Enabled("other"))

	ctx.New("svc:db").Logf("hello")
	assert.Equal(t, "svc:db hello +0ms\n", buf.String())
}

func TestFromEnvForcedColors(t *testing.T) {
	t.Setenv("DBGTEST", "paint")
	t.Setenv("DBGTEST_COLORS", "1")

	var buf bytes.Buffer
	ctx := dbg.FromEnv(dbg.WithEnvPrefix("DBGTEST"), dbg.WithEnvWriter(&buf))
	ctx.New("paint").Logf("x")
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestFromEnvOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbg.log")
	t.Setenv("DBGTEST", "file:*")
	t.Setenv("DBGTEST_OUTPUT", path)

	ctx := dbg.FromEnv(dbg.WithEnvPrefix("DBGTEST"), dbg.WithEnvOptions(dbg.Options{
		NoColor:  true,
		HideDate: true,
	}))
	ctx.New("file:sink").Logf("persisted")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file:sink persisted +0ms")
}

func TestFromEnvOutputTee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tee.log")
	t.Setenv("DBGTEST", "tee")
	t.Setenv("DBGTEST_OUTPUT", "default+"+path)

	var buf bytes.Buffer
	ctx := dbg.FromEnv(
		dbg.WithEnvPrefix("DBGTEST"),
		dbg.WithEnvWriter(&buf),
		dbg.WithEnvOptions(dbg.Options{NoColor: true, HideDate: true}),
	)
	ctx.New("tee").Logf("both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tee both")
	assert.Contains(t, buf.String(), "tee both")
}

func TestFromEnvOutputOpenFailureFallsBack(t *testing.T) {
	t.Setenv("DBGTEST", "fb")
	t.Setenv("DBGTEST_OUTPUT", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))

	var buf bytes.Buffer
	ctx := dbg.FromEnv(
		dbg.WithEnvPrefix("DBGTEST"),
		dbg.WithEnvWriter(&buf),
		dbg.WithEnvOptions(dbg.Options{NoColor: true, HideDate: true}),
	)
	assert.Contains(t, buf.String(), "output open failed", "failure is reported through the fallback sink")

	buf.Reset()
	ctx.New("fb").Logf("fallback")
	assert.Contains(t, buf.String(), "fb fallback")
}

func TestFromEnvUnsetLeavesSeededOptions(t *testing.T) {
	var buf bytes.Buffer
	ctx := dbg.FromEnv(
		dbg.WithEnvPrefix("DBGTEST_UNSET"),
		dbg.WithEnvWriter(&buf),
		dbg.WithEnvOptions(dbg.Options{Selector: "seed"}),
	)
	assert.True(t, ctx.Enabled("seed"))
	assert.False(t, ctx.Enabled("other"))
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestObservedWriterCountsFailures(t *testing.T) {
	sinkErr := errors.New("sink down")
	var seen []dbg.WriteFailure
	ow := dbg.NewObservedWriter(failingWriter{err: sinkErr}, func(f dbg.WriteFailure) {
		seen = append(seen, f)
	})

	ctx := dbg.NewContext(dbg.Options{Writer: ow, Selector: "obs", NoColor: true, HideDate: true})
	ctx.New("obs").Logf("dropped")

	stats := ow.Stats()
	assert.Equal(t, uint64(1), stats.Failures)
	require.Len(t, seen, 1)
	assert.ErrorIs(t, seen[0].Err, sinkErr)
	assert.Greater(t, seen[0].Attempted, 0)
}

func TestObservedWriterShortWrites(t *testing.T) {
	ow := dbg.NewObservedWriter(shortWriter{}, nil)
	_, err := ow.Write([]byte("0123456789"))
	assert.ErrorIs(t, err, errShort)
	assert.Equal(t, uint64(1), ow.Stats().ShortWrites)
}

var errShort = errors.New("partial")

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) > 1 {
		return 1, errShort
	}
	return len(p), nil
}
