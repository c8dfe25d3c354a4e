package models

import "math"

// UserStats accumulates per-user counters while the message stream is
// being folded. ActiveDaySet holds distinct calendar-day keys
// (YYYY-MM-DD, UTC); the finalized artifact carries only its size, as
// FinalStats.ActiveDays. MinLen stays at the sentinel until the first
// content-bearing message.
type UserStats struct {
	Total        int
	First        string
	Last         string
	ActiveDaySet map[string]struct{}
	Hours        map[int]int
	Days         map[string]int
	Months       map[string]int
	Combos       map[string]int
	LenSum       int
	MaxLen       int
	MinLen       int
	WordSum      int
	Question     int
	Words        map[string]int
	Emojis       map[string]int
}

func NewUserStats() *UserStats {
	return &UserStats{
		ActiveDaySet: make(map[string]struct{}),
		Hours:        make(map[int]int),
		Days:         make(map[string]int),
		Months:       make(map[string]int),
		Combos:       make(map[string]int),
		MinLen:       math.MaxInt,
		Words:        make(map[string]int),
		Emojis:       make(map[string]int),
	}
}

// FinalStats is the persisted, immutable form of UserStats. ActiveDays
// is a plain count and MinLen is 0 for users without a single
// content-bearing message.
type FinalStats struct {
	Total      int            `json:"total"`
	First      string         `json:"first"`
	Last       string         `json:"last"`
	ActiveDays int            `json:"active_days"`
	Hours      map[int]int    `json:"hours"`
	Days       map[string]int `json:"days"`
	Months     map[string]int `json:"months"`
	Combos     map[string]int `json:"combos"`
	LenSum     int            `json:"len_sum"`
	MaxLen     int            `json:"max_len"`
	MinLen     int            `json:"min_len"`
	WordSum    int            `json:"word_sum"`
	Question   int            `json:"question"`
	Words      map[string]int `json:"words"`
	Emojis     map[string]int `json:"emojis"`
}

// AvgMessageLength is LenSum/max(Total, 1), the value ranked by the
// avg_message_length metric.
func (s *FinalStats) AvgMessageLength() float64 {
	total := s.Total
	if total < 1 {
		total = 1
	}
	return float64(s.LenSum) / float64(total)
}
