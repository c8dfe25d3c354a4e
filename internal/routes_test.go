package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatstats/internal/controllers"
	"chatstats/internal/providers"
	"chatstats/internal/structures"
	"chatstats/internal/testutil"
	"chatstats/internal/testutil/svcmock"
)

func newRoutesController() *controllers.ApiController {
	return controllers.NewApiController(
		&testutil.MockLogger{},
		&svcmock.MockRankingService{},
		&testutil.MockCache{},
		providers.NewMetricsProvider(&structures.Config{}),
	)
}

func TestInitRoutes_RegistersFourRoutes(t *testing.T) {
	router := InitRoutes(newRoutesController())
	routes := router.GetRoutes()

	require.Len(t, routes, 4)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/rankings")
	assert.Contains(t, urls, "/leaderboard")
	assert.Contains(t, urls, "/summary")
	assert.Contains(t, urls, "/context")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newRoutesController())

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	req := httptest.NewRequest(http.MethodPost, "/rankings", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/leaderboard", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
