package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	a := FileName("Esquelas By Date", ".csv", now)
	b := FileName("Esquelas By Date", "csv", now)

	assert.True(t, strings.HasPrefix(a, "esquelas-by-date-20250309-"))
	assert.True(t, strings.HasSuffix(a, ".csv"))
	assert.NotEqual(t, a, b)
}

func TestLocalSinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sink := NewLocalSink(dir)

	key, err := sink.Save(ctx, "reports/2025", "a.json", strings.NewReader(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, "reports/2025/a.json", key)

	loc, err := sink.Location(ctx, key)
	require.NoError(t, err)
	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(b))

	require.NoError(t, sink.Delete(ctx, key))
	_, err = os.Stat(loc)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, sink.Delete(ctx, key))
}

func TestReportWritesUnderReports(t *testing.T) {
	dir := t.TempDir()
	loc, err := Report(context.Background(), NewLocalSink(dir), "workload", "csv", []byte("a,b\n1,2\n"))
	require.NoError(t, err)

	rel, err := filepath.Rel(dir, loc)
	require.NoError(t, err)
	assert.Equal(t, "reports", filepath.Dir(rel))
	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(b))
}
