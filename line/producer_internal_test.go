package line

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teenjuna/cand"
	"github.com/teenjuna/cand/internal/testing/require"
)

func TestReadErrorEndsSequence(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	registry := prometheus.NewRegistry()

	path := filepath.Join(t.TempDir(), "file")
	require.Nil(t, os.WriteFile(path, []byte("a\nb\n"), 0o600))

	producer, err := New(path, func(c *Config) {
		c.Logger(zap.New(core))
		c.Prometheus(cand.Prometheus(registry))
	})
	require.Nil(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	errBroken := errors.New("broken disk")
	producer.reader = bufio.NewReader(io.MultiReader(
		strings.NewReader("first\nsecond"),
		iotest.ErrReader(errBroken),
	))

	c, ok := producer.Next()
	require.Equal(t, ok, true)
	require.Equal(t, string(c), "first\n")

	// The partial "second" is dropped together with the error.
	c, ok = producer.Next()
	require.Equal(t, ok, false)
	require.Nil(t, c)

	_, ok = producer.Next()
	require.Equal(t, ok, false)

	require.Equal(t, producer.file == nil, true)
	require.Equal(t, producer.Size(), 2)

	entries := logs.FilterMessage("read line").All()
	require.Equal(t, len(entries), 1)
	require.Equal(t, entries[0].ContextMap()["error"], errBroken.Error())
	require.Equal(t, entries[0].ContextMap()["path"], path)

	expected := `
		# HELP cand_candidates_produced Number of candidates produced
		# TYPE cand_candidates_produced counter
		cand_candidates_produced{producer="line"} 1
		# HELP cand_read_errors Number of read errors that terminated a producer early
		# TYPE cand_read_errors counter
		cand_read_errors{producer="line"} 1
	`
	require.Nil(t, testutil.GatherAndCompare(
		registry,
		strings.NewReader(expected),
		"cand_candidates_produced",
		"cand_read_errors",
	))
}

func TestExhaustionReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.Nil(t, os.WriteFile(path, []byte("a\nb"), 0o600))

	producer, err := New(path)
	require.Nil(t, err)

	_, ok := producer.Next()
	require.Equal(t, ok, true)
	require.NotNil(t, producer.file)

	// The unterminated last line hits EOF, which releases the handle right away.
	c, ok := producer.Next()
	require.Equal(t, ok, true)
	require.Equal(t, string(c), "b")
	require.Equal(t, producer.file == nil, true)

	require.Nil(t, producer.Close())
}

func TestCount(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		content       string
		estimateAbove int64
		size          int
		estimated     bool
	}{
		{content: "", size: 0},
		{content: "\n", size: 1},
		{content: "no newline", size: 0},
		{content: "a\nb\nc\n", size: 3},
		{content: strings.Repeat("\n", scanChunk*2+7), size: scanChunk*2 + 7},
		{content: "a\nb\nc\n", estimateAbove: 6, size: 3},
		{content: "a\n\n\n\n\n\n\n\n\n", estimateAbove: 2, size: 5, estimated: true},
	}

	for i, test := range tests {
		path := filepath.Join(dir, strings.Repeat("f", i+1))
		require.Nil(t, os.WriteFile(path, []byte(test.content), 0o600))

		size, estimated, err := count(path, test.estimateAbove)
		require.Nil(t, err)
		require.Equal(t, size, test.size)
		require.Equal(t, estimated, test.estimated)
	}
}

func TestFileDescriptors(t *testing.T) {
	if _, err := os.Stat("/proc/self/fd"); err != nil {
		t.Skip("no /proc/self/fd")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	require.Nil(t, os.WriteFile(path, []byte("a\nb\n"), 0o600))

	base := openFiles(t)

	producer, err := New(path)
	require.Nil(t, err)
	// Only the read handle is left open, the scan handle is already closed.
	require.Equal(t, openFiles(t), base+1)

	require.Nil(t, producer.Close())
	require.Equal(t, openFiles(t), base)

	_, err = New(dir)
	require.NotNil(t, err)
	require.Equal(t, openFiles(t), base)

	_, err = New(filepath.Join(dir, "missing"))
	require.NotNil(t, err)
	require.Equal(t, openFiles(t), base)

	producer, err = New(path)
	require.Nil(t, err)
	for range cand.All(producer) {
	}
	require.Equal(t, openFiles(t), base)
}

func openFiles(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.Nil(t, err)
	return len(entries)
}
