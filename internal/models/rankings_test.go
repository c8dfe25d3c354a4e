package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankings_ByMetric(t *testing.T) {
	r := &Rankings{
		MessageCount:  []RankingEntry{{UserID: "a", Value: 10}},
		ActiveDays:    []RankingEntry{{UserID: "b", Value: 3}},
		AvgMessageLen: []RankingEntry{{UserID: "c", Value: 7.5}},
	}

	assert.Equal(t, r.MessageCount, r.ByMetric(MetricMessageCount))
	assert.Equal(t, r.ActiveDays, r.ByMetric(MetricActiveDays))
	assert.Equal(t, r.AvgMessageLen, r.ByMetric(MetricAvgMessageLen))
}

func TestRankings_ByMetric_UnknownFallsBack(t *testing.T) {
	r := &Rankings{
		MessageCount: []RankingEntry{{UserID: "a", Value: 10}},
	}

	assert.Equal(t, r.MessageCount, r.ByMetric("nonsense"))
	assert.Equal(t, r.MessageCount, r.ByMetric(""))
}

func TestFinalStats_AvgMessageLength(t *testing.T) {
	s := &FinalStats{Total: 4, LenSum: 10}
	assert.InDelta(t, 2.5, s.AvgMessageLength(), 1e-9)
}

func TestFinalStats_AvgMessageLength_ZeroTotal(t *testing.T) {
	s := &FinalStats{}
	assert.Zero(t, s.AvgMessageLength())
}
