package models

// Ranking metric names. These are the JSON keys of the rankings
// artifact and the values accepted by the leaderboard endpoint.
const (
	MetricMessageCount  = "message_count"
	MetricActiveDays    = "active_days"
	MetricAvgMessageLen = "avg_message_length"
)

var Metrics = []string{MetricMessageCount, MetricActiveDays, MetricAvgMessageLen}

type RankingEntry struct {
	UserID string  `json:"user_id"`
	Value  float64 `json:"value"`
}

// Rankings holds the three global lists, each sorted descending by
// value with ties broken by ascending user id.
type Rankings struct {
	MessageCount  []RankingEntry `json:"message_count"`
	ActiveDays    []RankingEntry `json:"active_days"`
	AvgMessageLen []RankingEntry `json:"avg_message_length"`
}

// ByMetric returns the list for the given metric name, falling back to
// message_count for unknown metrics.
func (r *Rankings) ByMetric(metric string) []RankingEntry {
	switch metric {
	case MetricActiveDays:
		return r.ActiveDays
	case MetricAvgMessageLen:
		return r.AvgMessageLen
	default:
		return r.MessageCount
	}
}
