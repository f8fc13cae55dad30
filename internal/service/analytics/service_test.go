package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	analyticsdomain "github.com/hugohenrick/medbot-analytics/internal/domain/analytics"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource é uma origem em memória para os testes do serviço
type fakeSource struct {
	users         []analyticsdomain.AppUser
	chats         []analyticsdomain.Chat
	conversations []analyticsdomain.Conversation
	drugs         []analyticsdomain.UnfoundDrug
	err           error
}

func (f *fakeSource) Users(context.Context) ([]analyticsdomain.AppUser, error) {
	return f.users, f.err
}

func (f *fakeSource) UsersActiveSince(_ context.Context, since time.Time) ([]analyticsdomain.AppUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []analyticsdomain.AppUser
	for _, u := range f.users {
		if u.LastLogin != nil && !u.LastLogin.Before(since) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeSource) Chats(context.Context) ([]analyticsdomain.Chat, error) {
	return f.chats, f.err
}

func (f *fakeSource) ChatsByUser(_ context.Context, userID string) ([]analyticsdomain.Chat, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []analyticsdomain.Chat
	for _, c := range f.chats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeSource) Conversations(context.Context) ([]analyticsdomain.Conversation, error) {
	return f.conversations, f.err
}

func (f *fakeSource) ConversationsSince(_ context.Context, since time.Time) ([]analyticsdomain.Conversation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []analyticsdomain.Conversation
	for _, c := range f.conversations {
		if c.Timestamp != nil && !c.Timestamp.Before(since) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeSource) UnfoundDrugs(context.Context) ([]analyticsdomain.UnfoundDrug, error) {
	return f.drugs, f.err
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(source *fakeSource) *Service {
	s := NewService(source, logger.NewLogger())
	s.now = func() time.Time { return testNow }
	return s
}

func ts(t time.Time) *time.Time { return &t }

func age(v int) *int { return &v }

func TestWeeklyActiveUsers(t *testing.T) {
	source := &fakeSource{users: []analyticsdomain.AppUser{
		{UserID: "u1", DisplayName: "Ana", LastLogin: ts(testNow.AddDate(0, 0, -2))},
		{UserID: "u2", DisplayName: "Bruno", LastLogin: ts(testNow.AddDate(0, 0, -10))},
		{UserID: "u3", DisplayName: "Carla"},
	}}
	s := newTestService(source)

	result, err := s.WeeklyActiveUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Users, 1)
	assert.Equal(t, "u1", result.Users[0].UserID)
	assert.Equal(t, "2025-06-13 12:00:00", result.Users[0].LastLogin)
}

func TestUserQueryStatistics(t *testing.T) {
	source := &fakeSource{
		users: []analyticsdomain.AppUser{
			{UserID: "u1", DisplayName: "Ana", LastLogin: ts(testNow.AddDate(0, 0, -1))},
			{UserID: "u2", DisplayName: "Bruno"},
		},
		chats: []analyticsdomain.Chat{
			{ChatID: "c1", UserID: "u1", MessageCount: 4},
			{ChatID: "c2", UserID: "u1", MessageCount: 6},
			{ChatID: "c3", UserID: "u2", MessageCount: 3},
		},
	}
	s := newTestService(source)

	result, err := s.UserQueryStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 13, result.TotalQueries)
	assert.Equal(t, 2, result.TotalUsers)
	assert.Equal(t, 6.5, result.AverageQueriesPerUser)

	// Ordenado do maior para o menor total de consultas
	require.Len(t, result.UserStatistics, 2)
	assert.Equal(t, "u1", result.UserStatistics[0].UserID)
	assert.Equal(t, 10, result.UserStatistics[0].QueryCount)
	assert.Equal(t, "2025-06-14", result.UserStatistics[0].LastLogin)
	assert.Equal(t, "Never", result.UserStatistics[1].LastLogin)
}

func TestUserActivity(t *testing.T) {
	source := &fakeSource{chats: []analyticsdomain.Chat{
		{ChatID: "c1", UserID: "u1", Title: "Dor de cabeça", MessageCount: 4,
			LastUpdated: ts(testNow.AddDate(0, 0, -5))},
		{ChatID: "c2", UserID: "u1", Title: "Paracetamol", MessageCount: 6,
			LastUpdated: ts(testNow.AddDate(0, 0, -1))},
		{ChatID: "c3", UserID: "u1", MessageCount: 2},
		{ChatID: "c4", UserID: "u2", MessageCount: 3},
	}}
	s := newTestService(source)

	result, err := s.UserActivity(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", result.UserID)
	assert.Equal(t, 3, result.TotalChats)
	assert.Equal(t, 12, result.TotalQueries)

	// Da sessão mais recente para a mais antiga; sem data fica por último
	require.Len(t, result.Chats, 3)
	assert.Equal(t, "c2", result.Chats[0].ChatID)
	assert.Equal(t, "2025-06-14 12:00:00", result.Chats[0].LastUpdated)
	assert.Equal(t, "c1", result.Chats[1].ChatID)
	assert.Equal(t, "c3", result.Chats[2].ChatID)
	assert.Empty(t, result.Chats[2].LastUpdated)
}

func TestUserDemographics(t *testing.T) {
	source := &fakeSource{users: []analyticsdomain.AppUser{
		{UserID: "u1", Age: age(17), EmailVerified: true, OAuthProvider: "google", ProfileComplete: true},
		{UserID: "u2", Age: age(30), OAuthProvider: "google"},
		{UserID: "u3", Age: age(70), EmailVerified: true},
		{UserID: "u4"},
	}}
	s := newTestService(source)

	result, err := s.UserDemographics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalUsers)
	assert.Equal(t, map[string]int{"Under 18": 1, "25-34": 1, "65+": 1}, result.AgeDistribution)
	assert.Equal(t, map[string]int{"verified": 2, "unverified": 2}, result.VerificationStats)
	assert.Equal(t, map[string]int{"google": 2, "Unknown": 2}, result.OAuthProviders)
	assert.Equal(t, map[string]int{"complete": 1, "incomplete": 3}, result.ProfileCompletion)
}

func TestRetentionAnalysis(t *testing.T) {
	source := &fakeSource{users: []analyticsdomain.AppUser{
		// Novo e recorrente na janela de 7 dias
		{UserID: "u1", CreatedAt: ts(testNow.AddDate(0, 0, -3)), LastLogin: ts(testNow.AddDate(0, 0, -1)), LoginCount: 5},
		// Recorrente apenas na janela de 30 dias
		{UserID: "u2", CreatedAt: ts(testNow.AddDate(0, 0, -20)), LastLogin: ts(testNow.AddDate(0, 0, -15)), LoginCount: 3},
		// Último login há mais de 30 dias
		{UserID: "u3", CreatedAt: ts(testNow.AddDate(0, 0, -90)), LastLogin: ts(testNow.AddDate(0, 0, -60)), LoginCount: 8},
		// Nunca fez login
		{UserID: "u4", CreatedAt: ts(testNow.AddDate(0, 0, -2))},
	}}
	s := newTestService(source)

	result, err := s.RetentionAnalysis(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.NewUsersLast7Days)
	assert.Equal(t, 3, result.NewUsersLast30Days)
	assert.Equal(t, 1, result.ReturningUsersLast7Days)
	assert.Equal(t, 1, result.ReturningUsersLast30Days)
	assert.Equal(t, 2, result.InactiveUsers)
}

func TestDailyEngagement(t *testing.T) {
	source := &fakeSource{conversations: []analyticsdomain.Conversation{
		{ConversationID: "c1", Timestamp: ts(testNow.AddDate(0, 0, -1))},
		{ConversationID: "c2", Timestamp: ts(testNow.AddDate(0, 0, -1))},
		{ConversationID: "c3", Timestamp: ts(testNow)},
		{ConversationID: "c4", Timestamp: ts(testNow.AddDate(0, 0, -60))},
	}}
	s := newTestService(source)

	result, err := s.DailyEngagement(context.Background())
	require.NoError(t, err)

	// Sempre 30 dias, em ordem cronológica, com zeros preenchidos
	require.Len(t, result.DailyEngagement, 30)
	assert.Equal(t, "2025-05-17", result.DailyEngagement[0].Date)
	assert.Equal(t, "2025-06-15", result.DailyEngagement[29].Date)
	assert.Equal(t, 1, result.DailyEngagement[29].Queries)
	assert.Equal(t, 2, result.DailyEngagement[28].Queries)
	assert.Equal(t, 0, result.DailyEngagement[0].Queries)

	assert.Equal(t, 3, result.TotalQueries30Days)
	assert.Equal(t, 0.1, result.AverageDailyQueries)
}

func TestPeakUsageHours(t *testing.T) {
	at := func(hour int) *time.Time {
		return ts(time.Date(2025, 6, 10, hour, 30, 0, 0, time.UTC))
	}
	source := &fakeSource{conversations: []analyticsdomain.Conversation{
		{ConversationID: "c1", Timestamp: at(14)},
		{ConversationID: "c2", Timestamp: at(14)},
		{ConversationID: "c3", Timestamp: at(9)},
		{ConversationID: "c4"},
	}}
	s := newTestService(source)

	result, err := s.PeakUsageHours(context.Background())
	require.NoError(t, err)

	require.Len(t, result.HourlyUsage, 24)
	assert.Equal(t, "14:00", result.PeakHour)
	assert.Equal(t, 2, result.PeakHourCount)
	assert.Equal(t, 4, result.TotalConversationsAnalyzed)
	assert.Equal(t, "09:00", result.HourlyUsage[9].Hour)
	assert.Equal(t, 1, result.HourlyUsage[9].UsageCount)
}

func TestPeakUsageHoursEmpty(t *testing.T) {
	s := newTestService(&fakeSource{})

	result, err := s.PeakUsageHours(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "00:00", result.PeakHour)
	assert.Equal(t, 0, result.PeakHourCount)
}

func TestResponseTimeAnalysis(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	source := &fakeSource{conversations: []analyticsdomain.Conversation{
		{ConversationID: "c1", BotResponse: "curta"},      // 5*0.01+0.5 = 0.55 (rápida)
		{ConversationID: "c2", BotResponse: string(long)}, // 300*0.01+0.5 = 3.5 (lenta)
	}}
	s := newTestService(source)

	result, err := s.ResponseTimeAnalysis(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalResponses)
	assert.Equal(t, 0.55, result.MinResponseTime)
	assert.Equal(t, 3.5, result.MaxResponseTime)
	assert.Equal(t, 2.03, result.AverageResponseTime)
	assert.Equal(t, 1, result.FastResponses)
	assert.Equal(t, 1, result.SlowResponses)
}

func TestMedicineSearchStats(t *testing.T) {
	source := &fakeSource{
		users: []analyticsdomain.AppUser{
			{UserID: "u1", DisplayName: "Ana"},
		},
		conversations: []analyticsdomain.Conversation{
			{ConversationID: "c1", UserID: "u1", UserMessage: "Can I take paracetamol with ibuprofen?"},
			{ConversationID: "c2", UserID: "u1", UserMessage: "how much Paracetamol is safe"},
			{ConversationID: "c3", UserID: "u2", BotResponse: "Paracetamol is generally safe at recommended doses."},
			{ConversationID: "c4", UserMessage: "paracetamol dose"}, // sem usuário, ignorada
		},
	}
	s := newTestService(source)

	result, err := s.MedicineSearchStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalMedicinesSearched)
	require.Len(t, result.MedicineStatistics, 2)

	// paracetamol vem primeiro: dois usuários distintos, deduplicados
	top := result.MedicineStatistics[0]
	assert.Equal(t, "paracetamol", top.Medicine)
	assert.Equal(t, 2, top.SearchCount)
	assert.Equal(t, "Ana", top.Users[0].UserName)
	assert.Equal(t, "u2", top.Users[1].UserName, "sem display_name cai no user_id")

	assert.Equal(t, "ibuprofen", result.MedicineStatistics[1].Medicine)
	assert.Equal(t, 1, result.MedicineStatistics[1].SearchCount)
}

func TestMedicineSearchByName(t *testing.T) {
	source := &fakeSource{conversations: []analyticsdomain.Conversation{
		{ConversationID: "c1", UserID: "u1", UserMessage: "is aspirin good for headaches"},
	}}
	s := newTestService(source)

	t.Run("medicamento encontrado", func(t *testing.T) {
		result, err := s.MedicineSearchByName(context.Background(), "Aspirin")
		require.NoError(t, err)
		assert.Equal(t, "aspirin", result.Medicine)
		assert.Equal(t, 1, result.SearchCount)
	})

	t.Run("medicamento sem pesquisas", func(t *testing.T) {
		result, err := s.MedicineSearchByName(context.Background(), "metformin")
		require.NoError(t, err)
		assert.Equal(t, 0, result.SearchCount)
		assert.NotNil(t, result.Users)
	})
}

func TestChatSessionAnalysis(t *testing.T) {
	source := &fakeSource{chats: []analyticsdomain.Chat{
		{ChatID: "c1", MessageCount: 1},
		{ChatID: "c2", MessageCount: 5},
		{ChatID: "c3", MessageCount: 10},
		{ChatID: "c4", MessageCount: 0},
	}}
	s := newTestService(source)

	result, err := s.ChatSessionAnalysis(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalSessions)
	assert.Equal(t, 2, result.ActiveSessions)
	assert.Equal(t, 4.0, result.AverageSessionLength)
	assert.Equal(t, 10, result.MaxSessionLength)
	assert.Equal(t, 0, result.MinSessionLength)
	assert.Equal(t, 50.0, result.SessionEngagementRate)
}

func TestContentCategoryAnalysis(t *testing.T) {
	source := &fakeSource{conversations: []analyticsdomain.Conversation{
		{ConversationID: "c1", UserID: "u1", UserMessage: "I have a headache and fever"},
		{ConversationID: "c2", UserID: "u1", UserMessage: "what is the dosage of this tablet"},
		{ConversationID: "c3", UserID: "u2", UserMessage: "hello there"},
		{ConversationID: "c4", UserID: "u2", UserMessage: "   "},
	}}
	s := newTestService(source)

	result, err := s.ContentCategoryAnalysis(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalQueries, "mensagens vazias não contam")

	byCategory := make(map[string]CategoryStat)
	for _, cs := range result.CategoryBreakdown {
		byCategory[cs.Category] = cs
	}
	assert.Equal(t, 1, byCategory["Symptoms"].Count)
	assert.Equal(t, 1, byCategory["Medications"].Count)
	assert.Equal(t, 1, byCategory["Other"].Count)
	assert.Equal(t, 33.3, byCategory["Symptoms"].Percentage)

	require.Len(t, result.CategorizedExamples, 3)
	assert.Equal(t, "symptoms", result.CategorizedExamples[0].Category)
	assert.Contains(t, result.CategorizedExamples[0].Keywords, "headache")
	assert.Equal(t, "other", result.CategorizedExamples[2].Category)
}

func TestAgeCategoryQueries(t *testing.T) {
	source := &fakeSource{
		users: []analyticsdomain.AppUser{
			{UserID: "u1", Age: age(22)},
			{UserID: "u2", Age: age(40)},
			{UserID: "u3"},
		},
		conversations: []analyticsdomain.Conversation{
			{ConversationID: "c1", UserID: "u1"},
			{ConversationID: "c2", UserID: "u1"},
			{ConversationID: "c3", UserID: "u2"},
			{ConversationID: "c4", UserID: "u3"},
			{ConversationID: "c5"},
		},
	}
	s := newTestService(source)

	result, err := s.AgeCategoryQueries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalQueries)
	assert.Equal(t, 3, result.QueriesWithAgeData)
	assert.Equal(t, 2, result.QueriesWithoutAgeData)
	assert.Equal(t, 3, result.UniqueUsersAnalyzed)

	require.Len(t, result.AgeBreakdown, len(ageGroupOrder))
	byGroup := make(map[string]AgeGroupStat)
	for _, g := range result.AgeBreakdown {
		byGroup[g.AgeGroup] = g
	}
	assert.Equal(t, 2, byGroup["18-24"].QueryCount)
	assert.Equal(t, 66.7, byGroup["18-24"].Percentage)
	assert.Equal(t, 1, byGroup["35-44"].QueryCount)

	assert.Equal(t, "18-24", result.MostActiveAgeGroup.AgeGroup)
	assert.Equal(t, 2, result.MostActiveAgeGroup.QueryCount)
}

func TestRefreshAll(t *testing.T) {
	source := &fakeSource{
		users: []analyticsdomain.AppUser{
			{UserID: "u1", DisplayName: "Ana", Age: age(30), LastLogin: ts(testNow.AddDate(0, 0, -1))},
		},
		chats: []analyticsdomain.Chat{
			{ChatID: "c1", UserID: "u1", MessageCount: 3},
		},
		conversations: []analyticsdomain.Conversation{
			{ConversationID: "cv1", UserID: "u1", UserMessage: "fever", BotResponse: "rest and hydrate", Timestamp: ts(testNow)},
		},
	}
	s := newTestService(source)

	data, err := s.RefreshAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, data.WeeklyUsers.Count)
	assert.Equal(t, 3, data.UserQueries.TotalQueries)
	assert.Equal(t, 1, data.ChatSessions.TotalSessions)
	assert.Equal(t, 1, data.Demographics.TotalUsers)
	assert.NotNil(t, data.ContentCategories)
	assert.NotNil(t, data.AgeCategoryQueries)
}

func TestRefreshAllPropagatesError(t *testing.T) {
	s := newTestService(&fakeSource{err: errors.New("origem indisponível")})

	_, err := s.RefreshAll(context.Background())
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	s := newTestService(&fakeSource{})
	s.startedAt = testNow.Add(-90 * time.Second)

	status := s.Status(true)
	assert.Equal(t, testNow.Format(time.RFC3339), status.ServerTime)
	assert.Equal(t, 90.0, status.UptimeSeconds)
	assert.Equal(t, "connected", status.DatabaseStatus)
	assert.Equal(t, "enabled", status.QueryHandlerStatus)

	assert.Equal(t, "disabled", s.Status(false).QueryHandlerStatus)
}
