package statistic

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatstats/internal/models"
)

func TestFinalize_ActiveDaysBecomesCount(t *testing.T) {
	a := NewAggregator()
	a.Accumulate(msg("1", "u1", "2024-01-01T10:00:00+00:00", "hello"))
	a.Accumulate(msg("2", "u1", "2024-01-02T10:00:00+00:00", "world"))
	a.Accumulate(msg("3", "u1", "2024-01-02T12:00:00+00:00", "again"))

	archive := a.Finalize()
	assert.Equal(t, 2, archive.Stats["u1"].ActiveDays)
}

func TestFinalize_MinLenSentinelCleared(t *testing.T) {
	a := NewAggregator()
	a.Accumulate(msg("1", "u1", "2024-01-01T10:00:00+00:00", ""))

	archive := a.Finalize()
	assert.Equal(t, 0, archive.Stats["u1"].MinLen)
	assert.Equal(t, 0, archive.Stats["u1"].MaxLen)
}

func TestFinalize_RankingsSortedDescending(t *testing.T) {
	a := NewAggregator()
	a.Accumulate(msg("1", "u1", "2024-01-01T10:00:00+00:00", "x"))
	for i := 0; i < 3; i++ {
		a.Accumulate(msg("2", "u2", "2024-01-01T10:00:00+00:00", "x"))
	}
	a.Accumulate(msg("3", "u3", "2024-01-01T10:00:00+00:00", "x"))
	a.Accumulate(msg("4", "u3", "2024-01-02T10:00:00+00:00", "x"))

	archive := a.Finalize()
	mc := archive.Rankings.MessageCount
	require.Len(t, mc, 3)
	assert.Equal(t, "u2", mc[0].UserID)
	assert.Equal(t, float64(3), mc[0].Value)
	for i := 1; i < len(mc); i++ {
		assert.LessOrEqual(t, mc[i].Value, mc[i-1].Value)
	}
}

func TestFinalize_TiesBrokenByUserID(t *testing.T) {
	a := NewAggregator()
	a.Accumulate(msg("1", "bbb", "2024-01-01T10:00:00+00:00", "x"))
	a.Accumulate(msg("2", "aaa", "2024-01-01T10:00:00+00:00", "x"))
	a.Accumulate(msg("3", "ccc", "2024-01-01T10:00:00+00:00", "x"))

	archive := a.Finalize()
	mc := archive.Rankings.MessageCount
	require.Len(t, mc, 3)
	assert.Equal(t, "aaa", mc[0].UserID)
	assert.Equal(t, "bbb", mc[1].UserID)
	assert.Equal(t, "ccc", mc[2].UserID)
}

func TestFinalize_AvgMessageLengthRounded(t *testing.T) {
	a := NewAggregator()
	a.Accumulate(msg("1", "u1", "2024-01-01T10:00:00+00:00", "hello world")) // 11
	a.Accumulate(msg("2", "u1", "2024-01-02T10:00:00+00:00", "is this real?")) // 13
	a.Accumulate(msg("3", "u1", "2024-01-02T11:00:00+00:00", ""))

	archive := a.Finalize()
	avg := archive.Rankings.AvgMessageLen
	require.Len(t, avg, 1)
	assert.Equal(t, 8.0, avg[0].Value) // 24/3
}

func TestFinalize_MentionOnlyUserRanked(t *testing.T) {
	a := NewAggregator()
	rec := msg("1", "u1", "2024-01-01T10:00:00+00:00", "hi")
	rec.Mentions = []models.Mention{{ID: "ghost"}}
	a.Accumulate(rec)

	archive := a.Finalize()
	require.Contains(t, archive.Stats, "ghost")
	assert.Equal(t, 0, archive.Stats["ghost"].Total)
	assert.Len(t, archive.Rankings.MessageCount, 2)
}

func TestFinalize_Deterministic(t *testing.T) {
	build := func() *models.Archive {
		a := NewAggregator()
		a.Accumulate(msg("1", "u1", "2024-01-01T10:00:00+00:00", "same length"))
		a.Accumulate(msg("2", "u2", "2024-01-01T11:00:00+00:00", "same length"))
		a.Accumulate(msg("3", "u3", "2024-01-01T12:00:00+00:00", "other"))
		return a.Finalize()
	}

	first, err := json.Marshal(build().Rankings)
	require.NoError(t, err)
	second, err := json.Marshal(build().Rankings)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
