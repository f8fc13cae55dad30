package analytics

import (
	"context"
	"sort"
	"strings"
)

// contentCategory associa uma categoria de conteúdo às suas palavras-chave
type contentCategory struct {
	name     string
	keywords []string
}

// Categorias de conteúdo na ordem de verificação; a primeira com palavra-chave
// presente na mensagem vence
var contentCategories = []contentCategory{
	{"symptoms", []string{
		"symptom", "pain", "fever", "headache", "nausea", "cough", "fatigue",
		"dizzy", "chest pain", "stomach pain", "back pain", "sore throat",
		"shortness of breath", "vomiting", "diarrhea", "constipation",
		"rash", "swelling", "numbness", "tingling", "weakness", "ache",
		"hurt", "sore", "burning", "itchy", "blurred vision", "hearing",
	}},
	{"medications", []string{
		"medicine", "drug", "prescription", "dosage", "tablet", "capsule",
		"medication", "pill", "paracetamol", "ibuprofen", "aspirin",
		"antibiotic", "insulin", "vitamins", "supplements", "dose",
		"side effect", "pharmacy", "pharmacist", "generic", "brand name",
	}},
	{"diagnosis", []string{
		"diagnosis", "test", "scan", "blood test", "x-ray", "mri", "ct scan",
		"ultrasound", "biopsy", "screening", "checkup", "examination",
		"lab results", "report", "finding", "detected", "positive", "negative",
	}},
	{"treatment", []string{
		"treatment", "therapy", "surgery", "procedure", "operation",
		"physiotherapy", "rehabilitation", "recovery", "healing",
		"cure", "remedy", "intervention", "surgical",
	}},
	{"prevention", []string{
		"prevent", "prevention", "vaccine", "immunization", "health tips",
		"avoid", "reduce risk", "protective", "screening", "lifestyle",
		"precaution", "safety", "hygiene",
	}},
	{"emergency", []string{
		"emergency", "urgent", "severe", "critical", "ambulance", "911",
		"acute", "sudden", "serious", "life threatening", "immediate",
		"hospital", "er", "emergency room",
	}},
	{"general_health", []string{
		"health", "wellness", "fitness", "exercise", "lifestyle",
		"healthy living", "wellbeing", "activity", "physical activity",
		"sleep", "rest", "energy", "routine", "habits",
	}},
	{"nutrition", []string{
		"nutrition", "diet", "food", "vitamin", "mineral", "calories",
		"eating", "meal", "snack", "protein", "carbohydrate", "fat",
		"fiber", "sugar", "salt", "water", "hydration", "weight",
	}},
	{"mental_health", []string{
		"stress", "anxiety", "depression", "mental", "psychology",
		"therapy", "counseling", "mood", "emotional", "feelings",
		"worried", "sad", "overwhelmed", "panic", "fear", "cognitive",
	}},
}

// ContentCategoriesResult é a resposta do widget de categorias de conteúdo
type ContentCategoriesResult struct {
	TotalQueries        int               `json:"total_queries"`
	CategoryBreakdown   []CategoryStat    `json:"category_breakdown"`
	CategorizedExamples []CategoryExample `json:"categorized_examples"`
}

// CategoryStat agrega as mensagens de uma categoria
type CategoryStat struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryExample é um exemplo de mensagem categorizada
type CategoryExample struct {
	Message  string   `json:"message"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// ContentCategoryAnalysis classifica as mensagens dos usuários em categorias
// médicas por palavras-chave
func (s *Service) ContentCategoryAnalysis(ctx context.Context) (*ContentCategoriesResult, error) {
	conversations, err := s.source.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	result := &ContentCategoriesResult{
		CategoryBreakdown:   []CategoryStat{},
		CategorizedExamples: []CategoryExample{},
	}

	for _, c := range conversations {
		message := strings.ToLower(strings.TrimSpace(c.UserMessage))
		if message == "" {
			continue
		}
		result.TotalQueries++

		category := "other"
		var matched []string
		for _, cc := range contentCategories {
			for _, kw := range cc.keywords {
				if strings.Contains(message, kw) {
					matched = append(matched, kw)
				}
			}
			if len(matched) > 0 {
				category = cc.name
				break
			}
		}

		counts[category]++
		if len(result.CategorizedExamples) < 10 {
			if matched == nil {
				matched = []string{}
			}
			result.CategorizedExamples = append(result.CategorizedExamples, CategoryExample{
				Message:  truncateContext(c.UserMessage, 100),
				Category: category,
				Keywords: matched,
			})
		}
	}

	for category, count := range counts {
		percentage := 0.0
		if result.TotalQueries > 0 {
			percentage = round1(float64(count) / float64(result.TotalQueries) * 100)
		}
		result.CategoryBreakdown = append(result.CategoryBreakdown, CategoryStat{
			Category:   categoryTitle(category),
			Count:      count,
			Percentage: percentage,
		})
	}

	sort.SliceStable(result.CategoryBreakdown, func(i, j int) bool {
		if result.CategoryBreakdown[i].Count != result.CategoryBreakdown[j].Count {
			return result.CategoryBreakdown[i].Count > result.CategoryBreakdown[j].Count
		}
		return result.CategoryBreakdown[i].Category < result.CategoryBreakdown[j].Category
	})

	if len(result.CategoryBreakdown) == 0 {
		result.CategoryBreakdown = append(result.CategoryBreakdown, CategoryStat{
			Category:   "No Categorized Content",
			Count:      result.TotalQueries,
			Percentage: 100.0,
		})
	}

	return result, nil
}

// categoryTitle converte o nome interno da categoria para exibição
// (ex: "general_health" -> "General Health")
func categoryTitle(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// AgeCategoryQueriesResult é a resposta do widget de consultas por faixa etária
type AgeCategoryQueriesResult struct {
	TotalQueries          int             `json:"total_queries"`
	QueriesWithAgeData    int             `json:"queries_with_age_data"`
	QueriesWithoutAgeData int             `json:"queries_without_age_data"`
	AgeBreakdown          []AgeGroupStat  `json:"age_breakdown"`
	MostActiveAgeGroup    MostActiveGroup `json:"most_active_age_group"`
	UniqueUsersAnalyzed   int             `json:"unique_users_analyzed"`
}

// AgeGroupStat agrega as consultas de uma faixa etária
type AgeGroupStat struct {
	AgeGroup   string  `json:"age_group"`
	QueryCount int     `json:"query_count"`
	Percentage float64 `json:"percentage"`
}

// MostActiveGroup identifica a faixa etária com mais consultas
type MostActiveGroup struct {
	AgeGroup   string `json:"age_group"`
	QueryCount int    `json:"query_count"`
}

// AgeCategoryQueries conta as conversas por faixa etária do usuário
func (s *Service) AgeCategoryQueries(ctx context.Context) (*AgeCategoryQueriesResult, error) {
	conversations, err := s.source.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, err
	}

	ages := make(map[string]*int, len(users))
	for _, u := range users {
		ages[u.UserID] = u.Age
	}

	counts := make(map[string]int)
	analyzedUsers := make(map[string]bool)
	result := &AgeCategoryQueriesResult{}

	for _, c := range conversations {
		result.TotalQueries++

		if c.UserID == "" {
			continue
		}
		analyzedUsers[c.UserID] = true

		age, ok := ages[c.UserID]
		if !ok || age == nil {
			continue
		}

		result.QueriesWithAgeData++
		counts[ageGroup(*age)]++
	}

	result.QueriesWithoutAgeData = result.TotalQueries - result.QueriesWithAgeData
	result.UniqueUsersAnalyzed = len(analyzedUsers)
	result.AgeBreakdown = make([]AgeGroupStat, 0, len(ageGroupOrder))

	for _, group := range ageGroupOrder {
		percentage := 0.0
		if result.QueriesWithAgeData > 0 {
			percentage = round1(float64(counts[group]) / float64(result.QueriesWithAgeData) * 100)
		}
		result.AgeBreakdown = append(result.AgeBreakdown, AgeGroupStat{
			AgeGroup:   group,
			QueryCount: counts[group],
			Percentage: percentage,
		})

		if counts[group] > result.MostActiveAgeGroup.QueryCount {
			result.MostActiveAgeGroup = MostActiveGroup{
				AgeGroup:   group,
				QueryCount: counts[group],
			}
		}
	}

	if result.MostActiveAgeGroup.AgeGroup == "" {
		result.MostActiveAgeGroup.AgeGroup = "Unknown"
	}

	return result, nil
}
