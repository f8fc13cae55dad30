package widget

import (
	"errors"
	"time"
)

// Erros de validação de configuração de widget
var (
	ErrUnknownWidget   = errors.New("widget não reconhecido")
	ErrInvalidInterval = errors.New("intervalo de atualização inválido")
)

// Identificadores dos widgets do dashboard, um por métrica exibida
const (
	WeeklyUsers        = "weekly-users"
	UserQueries        = "user-queries"
	MedicineSearch     = "medicine-search"
	DailyEngagement    = "daily-engagement"
	Demographics       = "demographics"
	ChatSessions       = "chat-sessions"
	PeakHours          = "peak-hours"
	Retention          = "retention"
	ResponseTimes      = "response-times"
	ContentCategories  = "content-categories"
	AgeCategoryQueries = "age-category-queries"
)

// KnownWidgets retorna os identificadores de todos os widgets do dashboard
func KnownWidgets() []string {
	return []string{
		WeeklyUsers,
		UserQueries,
		MedicineSearch,
		DailyEngagement,
		Demographics,
		ChatSessions,
		PeakHours,
		Retention,
		ResponseTimes,
		ContentCategories,
		AgeCategoryQueries,
	}
}

// IsKnown verifica se o identificador corresponde a um widget do dashboard
func IsKnown(id string) bool {
	for _, w := range KnownWidgets() {
		if w == id {
			return true
		}
	}
	return false
}

// Intervalos de atualização permitidos, em segundos. Zero desliga a atualização automática.
var allowedIntervals = []int{0, 30, 60, 300, 600}

// ValidInterval verifica se o intervalo em segundos é um dos valores permitidos
func ValidInterval(seconds int) bool {
	for _, v := range allowedIntervals {
		if v == seconds {
			return true
		}
	}
	return false
}

// Settings representa a configuração de atualização automática de um widget
type Settings struct {
	WidgetID        string    `json:"widget_id"`
	IntervalSeconds int       `json:"interval_seconds"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate verifica se a configuração é consistente
func (s *Settings) Validate() error {
	if !IsKnown(s.WidgetID) {
		return ErrUnknownWidget
	}
	if !ValidInterval(s.IntervalSeconds) {
		return ErrInvalidInterval
	}
	return nil
}

// Interval retorna o intervalo como time.Duration
func (s *Settings) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}
