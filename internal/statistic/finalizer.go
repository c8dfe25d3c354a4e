package statistic

import (
	"math"
	"sort"

	"chatstats/internal/models"
)

// Finalize converts the accumulated state into the immutable archive:
// active-day sets collapse to counts and the three ranking lists are
// built and sorted. The aggregator must not be fed again afterwards.
func (a *Aggregator) Finalize() *models.Archive {
	archive := &models.Archive{
		Profiles: a.profiles,
		Stats:    make(map[string]*models.FinalStats, len(a.stats)),
		Social:   a.social,
		Rankings: &models.Rankings{
			MessageCount:  make([]models.RankingEntry, 0, len(a.stats)),
			ActiveDays:    make([]models.RankingEntry, 0, len(a.stats)),
			AvgMessageLen: make([]models.RankingEntry, 0, len(a.stats)),
		},
	}

	for id, s := range a.stats {
		fs := &models.FinalStats{
			Total:      s.Total,
			First:      s.First,
			Last:       s.Last,
			ActiveDays: len(s.ActiveDaySet),
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
		if fs.MinLen == math.MaxInt {
			// no content-bearing message was ever seen
			fs.MinLen = 0
		}
		archive.Stats[id] = fs

		archive.Rankings.MessageCount = append(archive.Rankings.MessageCount,
			models.RankingEntry{UserID: id, Value: float64(fs.Total)})
		archive.Rankings.ActiveDays = append(archive.Rankings.ActiveDays,
			models.RankingEntry{UserID: id, Value: float64(fs.ActiveDays)})
		archive.Rankings.AvgMessageLen = append(archive.Rankings.AvgMessageLen,
			models.RankingEntry{UserID: id, Value: roundTenth(fs.AvgMessageLength())})
	}

	sortRanking(archive.Rankings.MessageCount)
	sortRanking(archive.Rankings.ActiveDays)
	sortRanking(archive.Rankings.AvgMessageLen)

	return archive
}

// sortRanking orders entries by value descending; equal values fall
// back to ascending user id so repeated runs produce identical output.
func sortRanking(entries []models.RankingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].UserID < entries[j].UserID
	})
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
