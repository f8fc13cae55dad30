package analytics

import (
	"math"
	"time"

	analyticsdomain "github.com/hugohenrick/medbot-analytics/internal/domain/analytics"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
)

// Service calcula as métricas agregadas do dashboard a partir da origem de dados.
// Cada método corresponde a um widget; todos os cálculos são feitos sob demanda
// sobre os registros brutos, sem estado entre chamadas.
type Service struct {
	source    analyticsdomain.Source
	logger    logger.Logger
	startedAt time.Time
	now       func() time.Time
}

// NewService cria uma nova instância de Service
func NewService(source analyticsdomain.Source, logger logger.Logger) *Service {
	return &Service{
		source:    source,
		logger:    logger,
		startedAt: time.Now().UTC(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Formatos de data usados nas respostas
const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// Faixas etárias na ordem de exibição
var ageGroupOrder = []string{"Under 18", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

// ageGroup classifica uma idade na faixa etária correspondente
func ageGroup(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age < 25:
		return "18-24"
	case age < 35:
		return "25-34"
	case age < 45:
		return "35-44"
	case age < 55:
		return "45-54"
	case age < 65:
		return "55-64"
	default:
		return "65+"
	}
}

// round2 arredonda para duas casas decimais
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 arredonda para uma casa decimal
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// truncateContext limita o trecho de contexto exibido nas respostas
func truncateContext(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
