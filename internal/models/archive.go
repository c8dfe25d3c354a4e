package models

import "sort"

// Archive bundles the four finalized artifacts handed to the query
// layer. Each map is keyed by user id.
type Archive struct {
	Profiles map[string]*Profile
	Stats    map[string]*FinalStats
	Social   map[string]*Social
	Rankings *Rankings
}

// CheckpointStats is the on-disk form of an in-progress UserStats.
// The active-day set is serialized as a sorted array so checkpoint
// files are byte-stable across runs.
type CheckpointStats struct {
	Total      int            `json:"total"`
	First      string         `json:"first"`
	Last       string         `json:"last"`
	ActiveDays []string       `json:"active_days"`
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

// Checkpoint is the versioned envelope for a mid-stream snapshot.
// Its format is deliberately distinct from the final artifacts:
// rankings are absent and active days are still a set. Processed
// records the number of messages consumed so far.
type Checkpoint struct {
	Version   int                         `json:"version"`
	Processed int                         `json:"processed"`
	Profiles  map[string]*Profile         `json:"profiles"`
	Stats     map[string]*CheckpointStats `json:"stats"`
	Social    map[string]*Social          `json:"social"`
}

const CheckpointVersion = 1

// ToCheckpoint converts accumulating stats to their serializable form.
func (s *UserStats) ToCheckpoint() *CheckpointStats {
	days := make([]string, 0, len(s.ActiveDaySet))
	for d := range s.ActiveDaySet {
		days = append(days, d)
	}
	sort.Strings(days)
	return &CheckpointStats{
		Total:      s.Total,
		First:      s.First,
		Last:       s.Last,
		ActiveDays: days,
		Hours:      s.Hours,
		Days:       s.Days,
		Months:     s.Months,
		Combos:     s.Combos,
		LenSum:     s.LenSum,
		MaxLen:     s.MaxLen,
		MinLen:     s.MinLen,
		WordSum:    s.WordSum,
		Question:   s.Question,
		Words:      s.Words,
		Emojis:     s.Emojis,
	}
}

// FromCheckpoint restores accumulating stats from a checkpoint entry.
func (c *CheckpointStats) FromCheckpoint() *UserStats {
	s := &UserStats{
		Total:        c.Total,
		First:        c.First,
		Last:         c.Last,
		ActiveDaySet: make(map[string]struct{}, len(c.ActiveDays)),
		Hours:        c.Hours,
		Days:         c.Days,
		Months:       c.Months,
		Combos:       c.Combos,
		LenSum:       c.LenSum,
		MaxLen:       c.MaxLen,
		MinLen:       c.MinLen,
		WordSum:      c.WordSum,
		Question:     c.Question,
		Words:        c.Words,
		Emojis:       c.Emojis,
	}
	for _, d := range c.ActiveDays {
		s.ActiveDaySet[d] = struct{}{}
	}
	return s
}
