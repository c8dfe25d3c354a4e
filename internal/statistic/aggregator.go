package statistic

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"chatstats/internal/models"
)

// Aggregator owns all mutable accumulation state for one ingest pass.
// It is a plain sequential fold: one goroutine feeds Accumulate, nobody
// else touches the maps until Finalize.
type Aggregator struct {
	profiles  map[string]*models.Profile
	stats     map[string]*models.UserStats
	social    map[string]*models.Social
	processed int
	skipped   int
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		profiles: make(map[string]*models.Profile),
		stats:    make(map[string]*models.UserStats),
		social:   make(map[string]*models.Social),
	}
}

// ensureUser creates the Profile/Stats/Social triple on first
// reference. Mention targets arrive with a nil author and get the
// placeholder profile.
func (a *Aggregator) ensureUser(id string, author *models.Author) {
	if _, ok := a.profiles[id]; ok {
		return
	}
	a.profiles[id] = models.NewProfile(id, author)
	a.stats[id] = models.NewUserStats()
	a.social[id] = models.NewSocial()
}

// Accumulate folds a single record into the per-user maps. Records
// without an author id are counted as skipped and otherwise ignored.
func (a *Aggregator) Accumulate(rec *models.MessageRecord) {
	userID := rec.AuthorID()
	if userID == "" {
		a.skipped++
		return
	}
	a.processed++

	a.ensureUser(userID, rec.Author)
	s := a.stats[userID]
	so := a.social[userID]

	s.Total++

	if rec.Timestamp != "" {
		// ISO-8601 timestamps order chronologically as strings.
		if s.First == "" || rec.Timestamp < s.First {
			s.First = rec.Timestamp
		}
		if s.Last == "" || rec.Timestamp > s.Last {
			s.Last = rec.Timestamp
		}
		if t, err := time.Parse(time.RFC3339, rec.Timestamp); err == nil {
			t = t.UTC()
			hour := t.Hour()
			weekday := t.Weekday().String()
			s.ActiveDaySet[t.Format("2006-01-02")] = struct{}{}
			s.Hours[hour]++
			s.Days[weekday]++
			s.Months[t.Format("2006-01")]++
			s.Combos[weekday+"-"+strconv.Itoa(hour)]++
		}
	}

	if rec.Content != "" {
		length := utf8.RuneCountInString(rec.Content)
		s.LenSum += length
		if length > s.MaxLen {
			s.MaxLen = length
		}
		if length < s.MinLen {
			s.MinLen = length
		}
		if strings.Contains(rec.Content, "?") {
			s.Question++
		}

		words := Tokenize(rec.Content)
		s.WordSum += len(words)
		for _, w := range words {
			if WordRuneLen(w) >= MinWordLen {
				s.Words[w]++
			}
		}

		CountEmojis(rec.Content, s.Emojis)
		CountEmojis(rec.Content, so.InlineEmojis)
	}

	for _, att := range rec.Attachments {
		if att.Url != "" {
			so.Attachments = append(so.Attachments, att.Url)
		}
	}

	if rec.IsPinned {
		so.Pinned = append(so.Pinned, rec.ID)
	}

	for _, r := range rec.Reactions {
		if r.Emoji.Name == "" {
			continue
		}
		so.ReactionsGiven[r.Emoji.Name] += r.Count
	}

	for _, m := range rec.Mentions {
		if m.ID == "" {
			continue
		}
		so.MentionsGiven[m.ID]++
		a.ensureUser(m.ID, nil)
		a.social[m.ID].MentionedBy++
	}
}

// Processed returns the number of records folded so far.
func (a *Aggregator) Processed() int { return a.processed }

// Skipped returns the number of records dropped for missing author id.
func (a *Aggregator) Skipped() int { return a.skipped }

// Users returns the number of distinct ids observed so far.
func (a *Aggregator) Users() int { return len(a.profiles) }

// Checkpoint captures the in-progress state in its serializable form.
func (a *Aggregator) Checkpoint() *models.Checkpoint {
	cp := &models.Checkpoint{
		Version:   models.CheckpointVersion,
		Processed: a.processed,
		Profiles:  a.profiles,
		Stats:     make(map[string]*models.CheckpointStats, len(a.stats)),
		Social:    a.social,
	}
	for id, s := range a.stats {
		cp.Stats[id] = s.ToCheckpoint()
	}
	return cp
}
