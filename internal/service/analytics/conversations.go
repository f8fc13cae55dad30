package analytics

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DailyEngagementResult é a resposta do widget de engajamento diário
type DailyEngagementResult struct {
	DailyEngagement     []DailyCount `json:"daily_engagement"`
	TotalQueries30Days  int          `json:"total_queries_30_days"`
	AverageDailyQueries float64      `json:"average_daily_queries"`
}

// DailyCount representa o total de conversas em um dia
type DailyCount struct {
	Date    string `json:"date"`
	Queries int    `json:"queries"`
}

// DailyEngagement retorna o volume diário de conversas nos últimos 30 dias,
// em ordem cronológica e com os dias sem atividade preenchidos com zero
func (s *Service) DailyEngagement(ctx context.Context) (*DailyEngagementResult, error) {
	conversations, err := s.source.ConversationsSince(ctx, s.sinceDays(30))
	if err != nil {
		return nil, err
	}

	daily := make(map[string]int)
	for _, c := range conversations {
		if c.Timestamp != nil {
			daily[c.Timestamp.Format(dateLayout)]++
		}
	}

	result := &DailyEngagementResult{DailyEngagement: make([]DailyCount, 0, 30)}
	now := s.now()
	for i := 29; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dateLayout)
		result.DailyEngagement = append(result.DailyEngagement, DailyCount{
			Date:    date,
			Queries: daily[date],
		})
	}

	for _, count := range daily {
		result.TotalQueries30Days += count
	}
	result.AverageDailyQueries = round2(float64(result.TotalQueries30Days) / 30)

	return result, nil
}

// PeakHoursResult é a resposta do widget de horários de pico
type PeakHoursResult struct {
	HourlyUsage                []HourlyCount `json:"hourly_usage"`
	PeakHour                   string        `json:"peak_hour"`
	PeakHourCount              int           `json:"peak_hour_count"`
	TotalConversationsAnalyzed int           `json:"total_conversations_analyzed"`
}

// HourlyCount representa o total de conversas em uma hora do dia
type HourlyCount struct {
	Hour       string `json:"hour"`
	UsageCount int    `json:"usage_count"`
}

// PeakUsageHours retorna a distribuição de conversas pelas 24 horas do dia (UTC)
func (s *Service) PeakUsageHours(ctx context.Context) (*PeakHoursResult, error) {
	conversations, err := s.source.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	hourly := make(map[int]int)
	total := 0
	for _, c := range conversations {
		total++
		if c.Timestamp != nil {
			hourly[c.Timestamp.Hour()]++
		}
	}

	result := &PeakHoursResult{
		HourlyUsage:                make([]HourlyCount, 0, 24),
		PeakHour:                   "00:00",
		TotalConversationsAnalyzed: total,
	}

	for hour := 0; hour < 24; hour++ {
		result.HourlyUsage = append(result.HourlyUsage, HourlyCount{
			Hour:       fmt.Sprintf("%02d:00", hour),
			UsageCount: hourly[hour],
		})
		if hourly[hour] > result.PeakHourCount {
			result.PeakHourCount = hourly[hour]
			result.PeakHour = fmt.Sprintf("%02d:00", hour)
		}
	}

	return result, nil
}

// ResponseTimesResult é a resposta do widget de tempos de resposta
type ResponseTimesResult struct {
	TotalResponses      int     `json:"total_responses"`
	AverageResponseTime float64 `json:"average_response_time"`
	MaxResponseTime     float64 `json:"max_response_time"`
	MinResponseTime     float64 `json:"min_response_time"`
	FastResponses       int     `json:"fast_responses"`
	SlowResponses       int     `json:"slow_responses"`
}

// ResponseTimeAnalysis estima os tempos de resposta do bot.
// A origem não registra o tempo real, então o valor é estimado a partir
// do tamanho da resposta: 0,01s por caractere mais 0,5s de base.
func (s *Service) ResponseTimeAnalysis(ctx context.Context) (*ResponseTimesResult, error) {
	conversations, err := s.source.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	result := &ResponseTimesResult{}
	var sum, max, min float64

	for _, c := range conversations {
		result.TotalResponses++

		estimated := float64(len(c.BotResponse))*0.01 + 0.5
		sum += estimated
		if result.TotalResponses == 1 || estimated > max {
			max = estimated
		}
		if result.TotalResponses == 1 || estimated < min {
			min = estimated
		}
		if estimated < 1.0 {
			result.FastResponses++
		}
		if estimated > 3.0 {
			result.SlowResponses++
		}
	}

	if result.TotalResponses > 0 {
		result.AverageResponseTime = round2(sum / float64(result.TotalResponses))
		result.MaxResponseTime = round2(max)
		result.MinResponseTime = round2(min)
	}

	return result, nil
}

// Padrões de medicamentos reconhecidos nas conversas (nome genérico e marcas)
var medicinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:paracetamol|acetaminophen)\b`),
	regexp.MustCompile(`\b(?:ibuprofen|advil|motrin)\b`),
	regexp.MustCompile(`\b(?:aspirin|acetylsalicylic acid)\b`),
	regexp.MustCompile(`\b(?:amoxicillin|amoxil)\b`),
	regexp.MustCompile(`\b(?:metformin|glucophage)\b`),
	regexp.MustCompile(`\b(?:omeprazole|prilosec)\b`),
	regexp.MustCompile(`\b(?:atorvastatin|lipitor)\b`),
	regexp.MustCompile(`\b(?:lisinopril|prinivil)\b`),
	regexp.MustCompile(`\b(?:metoprolol|lopressor)\b`),
	regexp.MustCompile(`\b(?:amlodipine|norvasc)\b`),
}

// MedicineSearchResult é a resposta do widget de medicamentos pesquisados
type MedicineSearchResult struct {
	TotalMedicinesSearched int            `json:"total_medicines_searched"`
	MedicineStatistics     []MedicineStat `json:"medicine_statistics"`
}

// SingleMedicineResult é a resposta filtrada por um medicamento específico
type SingleMedicineResult struct {
	Medicine    string           `json:"medicine"`
	SearchCount int              `json:"search_count"`
	Users       []MedicineSearch `json:"users"`
}

// MedicineStat agrega as pesquisas de um medicamento
type MedicineStat struct {
	Medicine    string           `json:"medicine"`
	SearchCount int              `json:"search_count"`
	Users       []MedicineSearch `json:"users"`
}

// MedicineSearch representa a menção de um medicamento por um usuário
type MedicineSearch struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	SearchContext string `json:"search_context"`
}

// MedicineSearchStats localiza menções de medicamentos conhecidos nas conversas,
// deduplicadas por usuário, com um trecho de contexto de cada menção
func (s *Service) MedicineSearchStats(ctx context.Context) (*MedicineSearchResult, error) {
	searches, err := s.collectMedicineSearches(ctx)
	if err != nil {
		return nil, err
	}

	result := &MedicineSearchResult{
		TotalMedicinesSearched: len(searches),
		MedicineStatistics:     make([]MedicineStat, 0, len(searches)),
	}
	for medicine, users := range searches {
		result.MedicineStatistics = append(result.MedicineStatistics, MedicineStat{
			Medicine:    medicine,
			SearchCount: len(users),
			Users:       users,
		})
	}

	sort.SliceStable(result.MedicineStatistics, func(i, j int) bool {
		if result.MedicineStatistics[i].SearchCount != result.MedicineStatistics[j].SearchCount {
			return result.MedicineStatistics[i].SearchCount > result.MedicineStatistics[j].SearchCount
		}
		return result.MedicineStatistics[i].Medicine < result.MedicineStatistics[j].Medicine
	})

	return result, nil
}

// MedicineSearchByName retorna as pesquisas de um medicamento específico
func (s *Service) MedicineSearchByName(ctx context.Context, medicine string) (*SingleMedicineResult, error) {
	searches, err := s.collectMedicineSearches(ctx)
	if err != nil {
		return nil, err
	}

	medicine = strings.ToLower(medicine)
	users := searches[medicine]
	if users == nil {
		users = []MedicineSearch{}
	}

	return &SingleMedicineResult{
		Medicine:    medicine,
		SearchCount: len(users),
		Users:       users,
	}, nil
}

func (s *Service) collectMedicineSearches(ctx context.Context) (map[string][]MedicineSearch, error) {
	conversations, err := s.source.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, err
	}

	displayNames := make(map[string]string, len(users))
	for _, u := range users {
		if u.DisplayName != "" {
			displayNames[u.UserID] = u.DisplayName
		}
	}

	searches := make(map[string][]MedicineSearch)
	seen := make(map[string]map[string]bool) // medicine -> user_id -> já registrado

	record := func(medicine, userID, context string) {
		if seen[medicine] == nil {
			seen[medicine] = make(map[string]bool)
		}
		if seen[medicine][userID] {
			return
		}
		seen[medicine][userID] = true

		userName := displayNames[userID]
		if userName == "" {
			userName = userID
		}
		searches[medicine] = append(searches[medicine], MedicineSearch{
			UserID:        userID,
			UserName:      userName,
			SearchContext: truncateContext(context, 100),
		})
	}

	for _, c := range conversations {
		if c.UserID == "" {
			continue
		}

		userMessage := strings.ToLower(c.UserMessage)
		botMessage := strings.ToLower(c.BotResponse)

		for _, pattern := range medicinePatterns {
			for _, match := range pattern.FindAllString(userMessage, -1) {
				record(strings.ToLower(match), c.UserID, userMessage)
			}
			for _, match := range pattern.FindAllString(botMessage, -1) {
				record(strings.ToLower(match), c.UserID, botMessage)
			}
		}
	}

	return searches, nil
}
