package statistic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatstats/internal/providers"
	"chatstats/internal/structures"
	"chatstats/internal/testutil"
)

func pipelineConfig(outDir string) *structures.Config {
	return &structures.Config{
		Ingest: structures.IngestConfig{CheckpointEvery: 2, ProgressEvery: 100},
		Output: structures.OutputConfig{Dir: outDir},
	}
}

func newTestPipeline(t *testing.T, input, outDir string) *Pipeline {
	t.Helper()
	conf := pipelineConfig(outDir)
	m := NewArchiveManager(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})
	flags := &structures.CliFlags{IngestFile: input}
	metrics := providers.NewMetricsProvider(conf) // disabled: noop
	return NewPipeline(flags, conf, &testutil.MockLogger{}, metrics, m).(*Pipeline)
}

func TestPipeline_RunCommitsArchive(t *testing.T) {
	outDir := t.TempDir()
	input := writeExport(t, `{"messages": [
		{"id": "1", "author": {"id": "u1", "name": "alice"}, "timestamp": "2024-01-01T10:00:00+00:00", "content": "hello"},
		{"id": "2", "author": {"id": "u2", "name": "bob"}, "timestamp": "2024-01-01T11:00:00+00:00", "content": "world"},
		{"id": "3", "author": {"id": "u1", "name": "alice"}, "timestamp": "2024-01-02T10:00:00+00:00", "content": "again"}
	]}`)

	p := newTestPipeline(t, input, outDir)
	require.NoError(t, p.Run())

	m := NewArchiveManager(pipelineConfig(outDir), &testutil.MockCompressor{}, &testutil.MockLogger{})
	archive, err := m.LoadArchive(outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, archive.Stats["u1"].Total)
	assert.Equal(t, 2, archive.Stats["u1"].ActiveDays)
	assert.Len(t, archive.Rankings.MessageCount, 2)

	// checkpoint removed after commit
	_, err = os.Stat(filepath.Join(outDir, CheckpointFile))
	assert.True(t, os.IsNotExist(err))
}

func TestPipeline_MalformedInputAbortsKeepingCheckpoint(t *testing.T) {
	outDir := t.TempDir()
	// three valid records (checkpointEvery=2 fires once), then garbage
	input := writeExport(t, `{"messages": [
		{"id": "1", "author": {"id": "u1"}, "timestamp": "2024-01-01T10:00:00+00:00"},
		{"id": "2", "author": {"id": "u1"}, "timestamp": "2024-01-01T11:00:00+00:00"},
		{"id": "3", "author": {"id": "u1"}, "timestamp": "2024-01-01T12:00:00+00:00"},
		{"id": `)

	p := newTestPipeline(t, input, outDir)
	assert.Error(t, p.Run())

	m := NewArchiveManager(pipelineConfig(outDir), &testutil.MockCompressor{}, &testutil.MockLogger{})
	cp, err := m.LoadCheckpoint(outDir)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, 2, cp.Processed)

	_, err = m.LoadArchive(outDir)
	assert.Error(t, err, "no final artifacts after an aborted pass")
}

func TestPipeline_MissingInputFile(t *testing.T) {
	p := newTestPipeline(t, "/nonexistent/raw.json", t.TempDir())
	assert.Error(t, p.Run())
}
