package svcmock

import (
	"chatstats/internal/models"
	"chatstats/internal/services"
)

// MockRankingService implements services.RankingServiceInterface with
// canned responses.
type MockRankingService struct {
	Rankings    *models.Rankings
	Contexts    map[string]*services.UserContext
	Summaries   map[string]*services.UserSummary
	Pages       map[string]*services.LeaderboardPage
	Err         error
	UsersCount  int
	ListCalls   int
	SummaryCall int
}

func (m *MockRankingService) GetAllRankings() (*models.Rankings, error) {
	return m.Rankings, m.Err
}

func (m *MockRankingService) GetUserRankingsWithContext(userID string, _ int) (*services.UserContext, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Contexts[userID], nil
}

func (m *MockRankingService) GetUserSummary(userID string) (*services.UserSummary, error) {
	m.SummaryCall++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Summaries[userID], nil
}

func (m *MockRankingService) ListPage(metric string, _, _ int) (*services.LeaderboardPage, error) {
	m.ListCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pages[metric], nil
}

func (m *MockRankingService) UsersTotal() int {
	return m.UsersCount
}
