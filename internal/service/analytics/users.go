package analytics

import (
	"context"
	"sort"
	"time"
)

// WeeklyActiveUsersResult é a resposta do widget de usuários ativos na semana
type WeeklyActiveUsersResult struct {
	Count int          `json:"count"`
	Users []WeeklyUser `json:"users"`
}

// WeeklyUser representa um usuário ativo na última semana
type WeeklyUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	LastLogin   string `json:"last_login,omitempty"`
}

// WeeklyActiveUsers retorna os usuários com login na última semana
func (s *Service) WeeklyActiveUsers(ctx context.Context) (*WeeklyActiveUsersResult, error) {
	oneWeekAgo := s.now().AddDate(0, 0, -7)

	users, err := s.source.UsersActiveSince(ctx, oneWeekAgo)
	if err != nil {
		return nil, err
	}

	result := &WeeklyActiveUsersResult{Users: make([]WeeklyUser, 0, len(users))}
	for _, u := range users {
		wu := WeeklyUser{
			UserID:      u.UserID,
			DisplayName: u.DisplayName,
		}
		if u.LastLogin != nil {
			wu.LastLogin = u.LastLogin.Format(dateTimeLayout)
		}
		result.Users = append(result.Users, wu)
	}
	result.Count = len(result.Users)

	return result, nil
}

// UserQueryStatisticsResult é a resposta do widget de consultas por usuário
type UserQueryStatisticsResult struct {
	TotalQueries          int             `json:"total_queries"`
	TotalUsers            int             `json:"total_users"`
	AverageQueriesPerUser float64         `json:"average_queries_per_user"`
	UserStatistics        []UserQueryStat `json:"user_statistics"`
}

// UserQueryStat representa o total de consultas de um usuário
type UserQueryStat struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	QueryCount  int    `json:"query_count"`
	LastLogin   string `json:"last_login"`
}

// UserQueryStatistics retorna o total de mensagens por usuário, ordenado do maior para o menor
func (s *Service) UserQueryStatistics(ctx context.Context) (*UserQueryStatisticsResult, error) {
	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, err
	}

	chats, err := s.source.Chats(ctx)
	if err != nil {
		return nil, err
	}

	// Somar message_count por usuário
	queryCounts := make(map[string]int)
	for _, c := range chats {
		queryCounts[c.UserID] += c.MessageCount
	}

	result := &UserQueryStatisticsResult{UserStatistics: make([]UserQueryStat, 0, len(users))}
	for _, u := range users {
		count := queryCounts[u.UserID]
		result.TotalQueries += count

		lastLogin := "Never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(dateLayout)
		}

		result.UserStatistics = append(result.UserStatistics, UserQueryStat{
			UserID:      u.UserID,
			DisplayName: u.DisplayName,
			QueryCount:  count,
			LastLogin:   lastLogin,
		})
	}

	sort.SliceStable(result.UserStatistics, func(i, j int) bool {
		return result.UserStatistics[i].QueryCount > result.UserStatistics[j].QueryCount
	})

	result.TotalUsers = len(result.UserStatistics)
	if result.TotalUsers > 0 {
		result.AverageQueriesPerUser = round2(float64(result.TotalQueries) / float64(result.TotalUsers))
	}

	return result, nil
}

// UserActivityResult é a resposta do detalhamento de atividade de um usuário
type UserActivityResult struct {
	UserID       string             `json:"user_id"`
	TotalChats   int                `json:"total_chats"`
	TotalQueries int                `json:"total_queries"`
	Chats        []UserChatActivity `json:"chats"`
}

// UserChatActivity resume uma sessão de chat de um usuário
type UserChatActivity struct {
	ChatID       string `json:"chat_id"`
	Title        string `json:"title,omitempty"`
	MessageCount int    `json:"message_count"`
	CreatedAt    string `json:"created_at,omitempty"`
	LastUpdated  string `json:"last_updated,omitempty"`
}

// UserActivity retorna as sessões de chat de um usuário, da mais recente para a mais antiga
func (s *Service) UserActivity(ctx context.Context, userID string) (*UserActivityResult, error) {
	chats, err := s.source.ChatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &UserActivityResult{
		UserID: userID,
		Chats:  make([]UserChatActivity, 0, len(chats)),
	}
	for _, c := range chats {
		result.TotalQueries += c.MessageCount

		a := UserChatActivity{
			ChatID:       c.ChatID,
			Title:        c.Title,
			MessageCount: c.MessageCount,
		}
		if c.CreatedAt != nil {
			a.CreatedAt = c.CreatedAt.Format(dateTimeLayout)
		}
		if c.LastUpdated != nil {
			a.LastUpdated = c.LastUpdated.Format(dateTimeLayout)
		}
		result.Chats = append(result.Chats, a)
	}
	result.TotalChats = len(result.Chats)

	// O formato do timestamp ordena lexicograficamente; sessões sem data ficam por último
	sort.SliceStable(result.Chats, func(i, j int) bool {
		return result.Chats[i].LastUpdated > result.Chats[j].LastUpdated
	})

	return result, nil
}

// DemographicsResult é a resposta do widget de demografia
type DemographicsResult struct {
	TotalUsers        int            `json:"total_users"`
	AgeDistribution   map[string]int `json:"age_distribution"`
	VerificationStats map[string]int `json:"verification_stats"`
	OAuthProviders    map[string]int `json:"oauth_providers"`
	ProfileCompletion map[string]int `json:"profile_completion"`
}

// UserDemographics retorna a distribuição de usuários por faixa etária,
// verificação de email, provedor OAuth e completude de perfil
func (s *Service) UserDemographics(ctx context.Context) (*DemographicsResult, error) {
	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, err
	}

	result := &DemographicsResult{
		AgeDistribution:   make(map[string]int),
		VerificationStats: map[string]int{"verified": 0, "unverified": 0},
		OAuthProviders:    make(map[string]int),
		ProfileCompletion: map[string]int{"complete": 0, "incomplete": 0},
	}

	for _, u := range users {
		result.TotalUsers++

		if u.Age != nil {
			result.AgeDistribution[ageGroup(*u.Age)]++
		}

		if u.EmailVerified {
			result.VerificationStats["verified"]++
		} else {
			result.VerificationStats["unverified"]++
		}

		provider := u.OAuthProvider
		if provider == "" {
			provider = "Unknown"
		}
		result.OAuthProviders[provider]++

		if u.ProfileComplete {
			result.ProfileCompletion["complete"]++
		} else {
			result.ProfileCompletion["incomplete"]++
		}
	}

	return result, nil
}

// RetentionResult é a resposta do widget de retenção de usuários
type RetentionResult struct {
	NewUsersLast7Days        int `json:"new_users_last_7_days"`
	NewUsersLast30Days       int `json:"new_users_last_30_days"`
	ReturningUsersLast7Days  int `json:"returning_users_last_7_days"`
	ReturningUsersLast30Days int `json:"returning_users_last_30_days"`
	InactiveUsers            int `json:"inactive_users"`
}

// RetentionAnalysis classifica os usuários em novos, recorrentes e inativos
func (s *Service) RetentionAnalysis(ctx context.Context) (*RetentionResult, error) {
	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &RetentionResult{}

	for _, u := range users {
		if u.CreatedAt != nil {
			daysSinceCreation := int(now.Sub(*u.CreatedAt).Hours() / 24)
			if daysSinceCreation <= 7 {
				result.NewUsersLast7Days++
			}
			if daysSinceCreation <= 30 {
				result.NewUsersLast30Days++
			}
		}

		if u.LastLogin != nil {
			daysSinceLogin := int(now.Sub(*u.LastLogin).Hours() / 24)
			switch {
			case daysSinceLogin <= 7 && u.LoginCount > 1:
				result.ReturningUsersLast7Days++
			case daysSinceLogin <= 30 && u.LoginCount > 1:
				result.ReturningUsersLast30Days++
			case daysSinceLogin > 30:
				result.InactiveUsers++
			}
		} else {
			result.InactiveUsers++
		}
	}

	return result, nil
}

// sinceDays retorna o instante correspondente a n dias atrás
func (s *Service) sinceDays(n int) time.Time {
	return s.now().AddDate(0, 0, -n)
}
