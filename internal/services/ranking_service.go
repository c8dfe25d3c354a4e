package services

import (
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"

	"chatstats/internal/models"
	"chatstats/internal/providers"
	"chatstats/internal/statistic"
	"chatstats/internal/structures"
)

type ContextEntry struct {
	UserID      string  `json:"user_id"`
	Value       float64 `json:"value"`
	Rank        int     `json:"rank"`
	IsSelf      bool    `json:"is_self"`
	DisplayName string  `json:"display_name"`
}

// MetricContext is one metric's slice of the leaderboard around a user.
// UserRank is 0 when the user is absent from the ranking.
type MetricContext struct {
	UserRank  int            `json:"user_rank"`
	UserValue float64        `json:"user_value"`
	Context   []ContextEntry `json:"context"`
}

type UserContext struct {
	MessageCount  MetricContext `json:"message_count"`
	ActiveDays    MetricContext `json:"active_days"`
	AvgMessageLen MetricContext `json:"avg_message_length"`
}

type PercentileResult struct {
	Rank       int `json:"rank"`
	Percentile int `json:"percentile"`
}

type UserPercentiles struct {
	MessageCount  PercentileResult `json:"message_count"`
	ActiveDays    PercentileResult `json:"active_days"`
	AvgMessageLen PercentileResult `json:"avg_message_length"`
}

type SummaryProfile struct {
	models.Profile
	DisplayName string `json:"display_name"`
}

type UserSummary struct {
	UserID      string             `json:"user_id"`
	User        SummaryProfile     `json:"user"`
	Stats       *models.FinalStats `json:"stats"`
	Social      *models.Social     `json:"social"`
	Rankings    UserPercentiles    `json:"rankings"`
	Leaderboard *UserContext       `json:"leaderboard"`
}

type LeaderboardEntry struct {
	UserID      string          `json:"user_id"`
	Value       float64         `json:"value"`
	Rank        int             `json:"rank"`
	DisplayName string          `json:"display_name"`
	User        *models.Profile `json:"user"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasMore     bool `json:"hasMore"`
}

type LeaderboardPage struct {
	Items      []LeaderboardEntry `json:"items"`
	Pagination Pagination         `json:"pagination"`
}

type RankingServiceInterface interface {
	GetAllRankings() (*models.Rankings, error)
	GetUserRankingsWithContext(userID string, window int) (*UserContext, error)
	GetUserSummary(userID string) (*UserSummary, error)
	ListPage(metric string, page, pageSize int) (*LeaderboardPage, error)
	UsersTotal() int
}

// snapshot is one immutable view of the persisted artifacts. Readers
// grab the whole struct through an atomic pointer, so a reload can
// never expose a half-built state.
type snapshot struct {
	archive      *models.Archive
	filtered     *models.Rankings
	displayNames map[string]string
	loadedAt     time.Time
}

type RankingService struct {
	config   *structures.Config
	logger   providers.Logger
	archives *statistic.ArchiveManager
	current  atomic.Pointer[snapshot]
	reloadMu sync.Mutex
}

func NewRankingService(config *structures.Config, logger providers.Logger, archives *statistic.ArchiveManager) RankingServiceInterface {
	return &RankingService{
		config:   config,
		logger:   logger,
		archives: archives,
	}
}

// getSnapshot returns the current snapshot, reloading it once the TTL
// has passed. Concurrent callers during a reload keep serving the old
// snapshot until the swap; the mutex only guards the rebuild itself.
func (rs *RankingService) getSnapshot() (*snapshot, error) {
	if snap := rs.current.Load(); snap != nil && time.Since(snap.loadedAt) < rs.config.Query.CacheTTL {
		return snap, nil
	}

	rs.reloadMu.Lock()
	defer rs.reloadMu.Unlock()

	if snap := rs.current.Load(); snap != nil && time.Since(snap.loadedAt) < rs.config.Query.CacheTTL {
		return snap, nil
	}

	archive, err := rs.archives.LoadArchive(rs.config.Output.Dir)
	if err != nil {
		// keep serving the stale snapshot if we ever had one
		if snap := rs.current.Load(); snap != nil {
			rs.logger.Errorf(providers.TypeApp, "Archive reload failed, serving stale snapshot: %s", err)
			return snap, nil
		}
		return nil, err
	}

	snap := &snapshot{
		archive:      archive,
		filtered:     filterRankings(archive),
		displayNames: rs.loadDisplayNames(),
		loadedAt:     time.Now(),
	}
	rs.current.Store(snap)
	rs.logger.Infof(providers.TypeApp, "Ranking snapshot refreshed: %d users", len(archive.Profiles))
	return snap, nil
}

// filterRankings drops deleted-placeholder users from every list.
func filterRankings(archive *models.Archive) *models.Rankings {
	keep := func(entries []models.RankingEntry) []models.RankingEntry {
		out := make([]models.RankingEntry, 0, len(entries))
		for _, e := range entries {
			if p, ok := archive.Profiles[e.UserID]; ok && !p.IsDeleted() {
				out = append(out, e)
			}
		}
		return out
	}
	return &models.Rankings{
		MessageCount:  keep(archive.Rankings.MessageCount),
		ActiveDays:    keep(archive.Rankings.ActiveDays),
		AvgMessageLen: keep(archive.Rankings.AvgMessageLen),
	}
}

type displayNameOverride struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// loadDisplayNames reads the optional override document. Absence or a
// parse failure only costs the overrides, never the snapshot.
func (rs *RankingService) loadDisplayNames() map[string]string {
	names := make(map[string]string)
	path := rs.config.Query.DisplayNamesFile
	if path == "" {
		return names
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			rs.logger.Warnf(providers.TypeApp, "Cannot read display names %s: %s", path, err)
		}
		return names
	}
	var overrides []displayNameOverride
	if err := json.Unmarshal(data, &overrides); err != nil {
		rs.logger.Warnf(providers.TypeApp, "Cannot parse display names %s: %s", path, err)
		return names
	}
	for _, o := range overrides {
		if o.ID != "" && o.DisplayName != "" {
			names[o.ID] = o.DisplayName
		}
	}
	return names
}

func (s *snapshot) displayName(userID string) string {
	if name, ok := s.displayNames[userID]; ok {
		return name
	}
	if p, ok := s.archive.Profiles[userID]; ok {
		return p.Username
	}
	return models.PlaceholderUsername
}

func (rs *RankingService) GetAllRankings() (*models.Rankings, error) {
	snap, err := rs.getSnapshot()
	if err != nil {
		return nil, err
	}
	return snap.filtered, nil
}

func (rs *RankingService) GetUserRankingsWithContext(userID string, window int) (*UserContext, error) {
	snap, err := rs.getSnapshot()
	if err != nil {
		return nil, err
	}
	if window < 1 {
		window = 1
	}
	return &UserContext{
		MessageCount:  metricContext(snap, snap.filtered.MessageCount, userID, window),
		ActiveDays:    metricContext(snap, snap.filtered.ActiveDays, userID, window),
		AvgMessageLen: metricContext(snap, snap.filtered.AvgMessageLen, userID, window),
	}, nil
}

// metricContext slices a window of the ranking centered on the user,
// clamped at both boundaries so the window only shrinks when the whole
// list is shorter than requested.
func metricContext(snap *snapshot, entries []models.RankingEntry, userID string, window int) MetricContext {
	idx := -1
	for i, e := range entries {
		if e.UserID == userID {
			idx = i
			break
		}
	}
	mc := MetricContext{UserRank: idx + 1}
	if idx == -1 {
		mc.Context = []ContextEntry{}
		return mc
	}
	mc.UserValue = entries[idx].Value

	start := idx - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(entries) {
		end = len(entries)
		start = end - window
		if start < 0 {
			start = 0
		}
	}

	mc.Context = make([]ContextEntry, 0, end-start)
	for i := start; i < end; i++ {
		e := entries[i]
		mc.Context = append(mc.Context, ContextEntry{
			UserID:      e.UserID,
			Value:       e.Value,
			Rank:        i + 1,
			IsSelf:      e.UserID == userID,
			DisplayName: snap.displayName(e.UserID),
		})
	}
	return mc
}

func (rs *RankingService) GetUserSummary(userID string) (*UserSummary, error) {
	snap, err := rs.getSnapshot()
	if err != nil {
		return nil, err
	}

	profile, ok := snap.archive.Profiles[userID]
	if !ok || profile.IsDeleted() {
		return nil, nil
	}
	stats, ok := snap.archive.Stats[userID]
	if !ok {
		return nil, nil
	}

	leaderboard, err := rs.GetUserRankingsWithContext(userID, 5)
	if err != nil {
		return nil, err
	}

	return &UserSummary{
		UserID: userID,
		User: SummaryProfile{
			Profile:     *profile,
			DisplayName: snap.displayName(userID),
		},
		Stats:  stats,
		Social: snap.archive.Social[userID],
		Rankings: UserPercentiles{
			MessageCount:  percentileFor(snap.filtered.MessageCount, float64(stats.Total)),
			ActiveDays:    percentileFor(snap.filtered.ActiveDays, float64(stats.ActiveDays)),
			AvgMessageLen: percentileFor(snap.filtered.AvgMessageLen, math.Round(stats.AvgMessageLength()*10)/10),
		},
		Leaderboard: leaderboard,
	}, nil
}

// percentileFor derives rank and percentile from the filtered list:
// rank counts strictly greater values plus one; the percentile of a
// sole ranked user is 100, of an empty ranking 0.
func percentileFor(entries []models.RankingEntry, value float64) PercentileResult {
	total := len(entries)
	if total == 0 {
		return PercentileResult{}
	}
	rank := 1
	for _, e := range entries {
		if e.Value > value {
			rank++
		}
	}
	pct := int(math.Round(float64(total-rank+1) / float64(total) * 100))
	return PercentileResult{Rank: rank, Percentile: pct}
}

func (rs *RankingService) ListPage(metric string, page, pageSize int) (*LeaderboardPage, error) {
	snap, err := rs.getSnapshot()
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	entries := snap.filtered.ByMetric(metric)
	totalItems := len(entries)
	totalPages := (totalItems + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > totalItems {
		start = totalItems
	}
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	items := make([]LeaderboardEntry, 0, end-start)
	for i := start; i < end; i++ {
		e := entries[i]
		items = append(items, LeaderboardEntry{
			UserID:      e.UserID,
			Value:       e.Value,
			Rank:        i + 1,
			DisplayName: snap.displayName(e.UserID),
			User:        snap.archive.Profiles[e.UserID],
		})
	}

	return &LeaderboardPage{
		Items: items,
		Pagination: Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			HasMore:     end < totalItems,
		},
	}, nil
}

// UsersTotal reports the number of ranked (non-deleted) users in the
// current snapshot, 0 when no snapshot is loadable.
func (rs *RankingService) UsersTotal() int {
	snap, err := rs.getSnapshot()
	if err != nil {
		return 0
	}
	return len(snap.filtered.MessageCount)
}
