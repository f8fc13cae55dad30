package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DashboardData reúne todas as métricas do dashboard em um único documento
type DashboardData struct {
	WeeklyUsers        *WeeklyActiveUsersResult   `json:"weeklyUsers"`
	UserQueries        *UserQueryStatisticsResult `json:"userQueries"`
	MedicineSearch     *MedicineSearchResult      `json:"medicineSearch"`
	DailyEngagement    *DailyEngagementResult     `json:"dailyEngagement"`
	Demographics       *DemographicsResult        `json:"demographics"`
	ChatSessions       *ChatSessionsResult        `json:"chatSessions"`
	PeakHours          *PeakHoursResult           `json:"peakHours"`
	Retention          *RetentionResult           `json:"retention"`
	ResponseTimes      *ResponseTimesResult       `json:"responseTimes"`
	ContentCategories  *ContentCategoriesResult   `json:"contentCategories"`
	AgeCategoryQueries *AgeCategoryQueriesResult  `json:"ageCategoryQueries"`
}

// RefreshAll recalcula todas as métricas em paralelo e retorna o documento combinado
func (s *Service) RefreshAll(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { data.WeeklyUsers, err = s.WeeklyActiveUsers(gctx); return })
	g.Go(func() (err error) { data.UserQueries, err = s.UserQueryStatistics(gctx); return })
	g.Go(func() (err error) { data.MedicineSearch, err = s.MedicineSearchStats(gctx); return })
	g.Go(func() (err error) { data.DailyEngagement, err = s.DailyEngagement(gctx); return })
	g.Go(func() (err error) { data.Demographics, err = s.UserDemographics(gctx); return })
	g.Go(func() (err error) { data.ChatSessions, err = s.ChatSessionAnalysis(gctx); return })
	g.Go(func() (err error) { data.PeakHours, err = s.PeakUsageHours(gctx); return })
	g.Go(func() (err error) { data.Retention, err = s.RetentionAnalysis(gctx); return })
	g.Go(func() (err error) { data.ResponseTimes, err = s.ResponseTimeAnalysis(gctx); return })
	g.Go(func() (err error) { data.ContentCategories, err = s.ContentCategoryAnalysis(gctx); return })
	g.Go(func() (err error) { data.AgeCategoryQueries, err = s.AgeCategoryQueries(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

// StatusResult é a resposta do endpoint de status do servidor
type StatusResult struct {
	ServerTime         string  `json:"server_time"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
	DatabaseStatus     string  `json:"database_status"`
	AnalyticsStatus    string  `json:"analytics_status"`
	QueryHandlerStatus string  `json:"query_handler_status"`
}

// Status retorna o estado atual dos componentes do dashboard
func (s *Service) Status(queryHandlerEnabled bool) *StatusResult {
	queryStatus := "disabled"
	if queryHandlerEnabled {
		queryStatus = "enabled"
	}

	return &StatusResult{
		ServerTime:         s.now().Format(time.RFC3339),
		UptimeSeconds:      round2(s.now().Sub(s.startedAt).Seconds()),
		DatabaseStatus:     "connected",
		AnalyticsStatus:    "enabled",
		QueryHandlerStatus: queryStatus,
	}
}
