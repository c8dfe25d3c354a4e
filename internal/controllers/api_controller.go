package controllers

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"chatstats/internal/providers"
	"chatstats/internal/services"
)

const defaultContextWindow = 5

type ApiController struct {
	logger  providers.Logger
	service services.RankingServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.RankingServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(map[string]string{"error": message})
	writeJSON(w, status, body)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		ac.metrics.IncCacheHits()
		writeJSON(w, http.StatusOK, data)
		return
	}
	ac.metrics.IncCacheMisses()

	result, err := compute()
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Query failed for %s: %s", cacheKey, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) GetRankings(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "rankings", func() (any, error) {
		return ac.service.GetAllRankings()
	})
}

func (ac *ApiController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	metric := q.Get("metric")
	page := cast.ToInt(q.Get("page"))
	limit := cast.ToInt(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	key := fmt.Sprintf("leaderboard:%s:%d:%d", metric, page, limit)
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.service.ListPage(metric, page, limit)
	})
}

func (ac *ApiController) GetContext(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("u")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}
	window := cast.ToInt(q.Get("window"))
	if window < 1 {
		window = defaultContextWindow
	}

	key := fmt.Sprintf("context:%s:%d", userID, window)
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.service.GetUserRankingsWithContext(userID, window)
	})
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("u")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	key := "summary:" + userID
	if data, ok := ac.cache.Get(key); ok {
		ac.metrics.IncCacheHits()
		writeJSON(w, http.StatusOK, data)
		return
	}
	ac.metrics.IncCacheMisses()

	summary, err := ac.service.GetUserSummary(userID)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Summary failed for %s: %s", userID, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if summary == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	gson, err := json.Marshal(summary)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	ac.cache.Set(key, gson)
	writeJSON(w, http.StatusOK, gson)
}
