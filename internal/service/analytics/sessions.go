package analytics

import (
	"context"
)

// ChatSessionsResult é a resposta do widget de sessões de chat
type ChatSessionsResult struct {
	TotalSessions         int     `json:"total_sessions"`
	ActiveSessions        int     `json:"active_sessions"`
	AverageSessionLength  float64 `json:"average_session_length"`
	MaxSessionLength      int     `json:"max_session_length"`
	MinSessionLength      int     `json:"min_session_length"`
	SessionEngagementRate float64 `json:"session_engagement_rate"`
}

// ChatSessionAnalysis resume o tamanho e o engajamento das sessões de chat.
// Sessões com mais de uma mensagem contam como ativas.
func (s *Service) ChatSessionAnalysis(ctx context.Context) (*ChatSessionsResult, error) {
	chats, err := s.source.Chats(ctx)
	if err != nil {
		return nil, err
	}

	result := &ChatSessionsResult{}
	sum := 0

	for _, c := range chats {
		result.TotalSessions++
		sum += c.MessageCount

		if c.MessageCount > 1 {
			result.ActiveSessions++
		}
		if result.TotalSessions == 1 || c.MessageCount > result.MaxSessionLength {
			result.MaxSessionLength = c.MessageCount
		}
		if result.TotalSessions == 1 || c.MessageCount < result.MinSessionLength {
			result.MinSessionLength = c.MessageCount
		}
	}

	if result.TotalSessions > 0 {
		result.AverageSessionLength = round2(float64(sum) / float64(result.TotalSessions))
		result.SessionEngagementRate = round2(float64(result.ActiveSessions) / float64(result.TotalSessions) * 100)
	}

	return result, nil
}
