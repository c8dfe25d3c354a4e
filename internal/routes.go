package internal

import (
	"net/http"

	"chatstats/internal/controllers"
	"chatstats/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/rankings", http.HandlerFunc(apiController.GetRankings))
	routers.Get("/leaderboard", http.HandlerFunc(apiController.GetLeaderboard))
	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Get("/context", http.HandlerFunc(apiController.GetContext))
	return routers
}
