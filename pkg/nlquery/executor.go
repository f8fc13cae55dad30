package nlquery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	analyticsdomain "github.com/hugohenrick/medbot-analytics/internal/domain/analytics"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// Results é o resultado normalizado de uma consulta, pronto para exibição
type Results struct {
	Data    []map[string]interface{} `json:"data"`
	Summary string                   `json:"summary"`
}

// executePlan carrega a coleção do plano, aplica filtros, ordenação,
// limite e agregação, e retorna o resultado normalizado
func executePlan(ctx context.Context, source analyticsdomain.Source, plan *Plan) (*Results, error) {
	rows, err := loadCollection(ctx, source, plan.Collection)
	if err != nil {
		return nil, err
	}

	filtered := rows[:0:0]
	for _, row := range rows {
		if matchesFilters(row, plan.Filters) {
			filtered = append(filtered, row)
		}
	}

	if plan.Aggregate != "" {
		return aggregate(filtered, plan), nil
	}

	if plan.OrderBy != "" {
		orderRows(filtered, plan.OrderBy, plan.OrderDesc)
	}

	if limit := plan.effectiveLimit(); len(filtered) > limit {
		filtered = filtered[:limit]
	}

	if len(plan.Fields) > 0 {
		projected := make([]map[string]interface{}, 0, len(filtered))
		for _, row := range filtered {
			p := make(map[string]interface{}, len(plan.Fields))
			for _, f := range plan.Fields {
				p[f] = row[f]
			}
			projected = append(projected, p)
		}
		filtered = projected
	}

	return normalize(filtered, plan.Summary), nil
}

// loadCollection materializa uma coleção da origem como linhas genéricas
func loadCollection(ctx context.Context, source analyticsdomain.Source, collection string) ([]map[string]interface{}, error) {
	switch collection {
	case CollectionUsers:
		users, err := source.Users(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, 0, len(users))
		for _, u := range users {
			rows = append(rows, userRow(u))
		}
		return rows, nil
	case CollectionChats:
		chats, err := source.Chats(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, 0, len(chats))
		for _, c := range chats {
			rows = append(rows, chatRow(c))
		}
		return rows, nil
	case CollectionConversations:
		conversations, err := source.Conversations(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, 0, len(conversations))
		for _, c := range conversations {
			rows = append(rows, conversationRow(c))
		}
		return rows, nil
	case CollectionUnfoundDrugs:
		drugs, err := source.UnfoundDrugs(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, 0, len(drugs))
		for _, d := range drugs {
			rows = append(rows, unfoundDrugRow(d))
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: coleção desconhecida %q", ErrInvalidPlan, collection)
}

func userRow(u analyticsdomain.AppUser) map[string]interface{} {
	row := map[string]interface{}{
		"user_id":            u.UserID,
		"display_name":       u.DisplayName,
		"first_name":         u.FirstName,
		"last_name":          u.LastName,
		"age":                nil,
		"gender":             u.Gender,
		"contact":            u.Contact,
		"contact_type":       u.ContactType,
		"email_verified":     u.EmailVerified,
		"oauth_provider":     u.OAuthProvider,
		"is_active":          u.IsActive,
		"login_count":        u.LoginCount,
		"profile_complete":   u.ProfileComplete,
		"preferred_language": u.PreferredLanguage,
		"created_at":         formatTime(u.CreatedAt),
		"last_login":         formatTime(u.LastLogin),
	}
	if u.Age != nil {
		row["age"] = *u.Age
	}
	return row
}

func chatRow(c analyticsdomain.Chat) map[string]interface{} {
	return map[string]interface{}{
		"chat_id":       c.ChatID,
		"user_id":       c.UserID,
		"title":         c.Title,
		"message_count": c.MessageCount,
		"created_at":    formatTime(c.CreatedAt),
		"last_updated":  formatTime(c.LastUpdated),
	}
}

func conversationRow(c analyticsdomain.Conversation) map[string]interface{} {
	return map[string]interface{}{
		"conversation_id":    c.ConversationID,
		"chat_id":            c.ChatID,
		"user_id":            c.UserID,
		"user_message":       c.UserMessage,
		"bot_response":       c.BotResponse,
		"bot_response_tamil": c.BotResponseTamil,
		"image_url":          c.ImageURL,
		"timestamp":          formatTime(c.Timestamp),
	}
}

func unfoundDrugRow(d analyticsdomain.UnfoundDrug) map[string]interface{} {
	return map[string]interface{}{
		"tablet_name":      d.TabletName,
		"combination_name": d.CombinationName,
		"frequency":        d.Frequency,
		"first_searched":   formatTime(d.FirstSearched),
		"last_searched":    formatTime(d.LastSearched),
		"chat_names":       d.ChatNames,
	}
}

// formatTime segue o mesmo formato de data das demais respostas do dashboard
func formatTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(dateTimeLayout)
}

// matchesFilters verifica se a linha satisfaz todos os filtros do plano
func matchesFilters(row map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		if !matchesFilter(row, f) {
			return false
		}
	}
	return true
}

func matchesFilter(row map[string]interface{}, f Filter) bool {
	value, present := row[f.Field]
	if value == nil {
		present = false
	}

	switch f.Operator {
	case "exists":
		if want, ok := f.Value.(bool); ok && !want {
			return !present
		}
		return present
	case "contains":
		if !present {
			return false
		}
		s, ok := value.(string)
		want, okWant := f.Value.(string)
		if ok && okWant {
			return strings.Contains(strings.ToLower(s), strings.ToLower(want))
		}
		if list, ok := value.([]string); ok && okWant {
			for _, item := range list {
				if strings.EqualFold(item, want) {
					return true
				}
			}
		}
		return false
	case "==":
		return present && compareValues(value, f.Value) == 0
	case "!=":
		return !present || compareValues(value, f.Value) != 0
	case ">":
		return present && compareValues(value, f.Value) > 0
	case ">=":
		return present && compareValues(value, f.Value) >= 0
	case "<":
		return present && compareValues(value, f.Value) < 0
	case "<=":
		return present && compareValues(value, f.Value) <= 0
	}
	return false
}

// compareValues compara dois valores de tipos possivelmente diferentes.
// Números são comparados numericamente; datas formatadas, lexicograficamente.
func compareValues(a, b interface{}) int {
	if na, aok := toFloat(a); aok {
		if nb, bok := toFloat(b); bok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}

	if ba, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			if ba == bb {
				return 0
			}
			return 1
		}
	}

	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// orderRows ordena as linhas pelo campo informado
func orderRows(rows []map[string]interface{}, field string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareValues(rows[i][field], rows[j][field])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// aggregate executa a agregação do plano sobre as linhas filtradas
func aggregate(rows []map[string]interface{}, plan *Plan) *Results {
	switch plan.Aggregate {
	case "count":
		return normalize([]map[string]interface{}{
			{"count": len(rows)},
		}, plan.Summary)
	case "sum", "avg":
		var sum float64
		counted := 0
		for _, row := range rows {
			if n, ok := toFloat(row[plan.GroupBy]); ok {
				sum += n
				counted++
			}
		}
		value := sum
		if plan.Aggregate == "avg" {
			if counted == 0 {
				value = 0
			} else {
				value = sum / float64(counted)
			}
		}
		return normalize([]map[string]interface{}{
			{plan.Aggregate: value, "records": counted},
		}, plan.Summary)
	case "group_count":
		counts := make(map[string]int)
		for _, row := range rows {
			key := "Unknown"
			if v := row[plan.GroupBy]; v != nil {
				if s := fmt.Sprintf("%v", v); s != "" {
					key = s
				}
			}
			counts[key]++
		}
		data := make([]map[string]interface{}, 0, len(counts))
		for key, count := range counts {
			data = append(data, map[string]interface{}{
				plan.GroupBy: key,
				"count":      count,
			})
		}
		sort.SliceStable(data, func(i, j int) bool {
			if data[i]["count"].(int) != data[j]["count"].(int) {
				return data[i]["count"].(int) > data[j]["count"].(int)
			}
			return fmt.Sprintf("%v", data[i][plan.GroupBy]) < fmt.Sprintf("%v", data[j][plan.GroupBy])
		})
		return normalize(data, plan.Summary)
	}
	return normalize(nil, plan.Summary)
}

// normalize garante a estrutura {data, summary} esperada pelo front-end
func normalize(data []map[string]interface{}, summary string) *Results {
	if data == nil {
		data = []map[string]interface{}{}
	}

	if summary == "" {
		switch len(data) {
		case 0:
			summary = "No results found"
		case 1:
			summary = "Found 1 result"
		default:
			summary = fmt.Sprintf("Found %d results", len(data))
		}
	}

	if len(data) == 0 {
		data = []map[string]interface{}{
			{"message": "No data found for this query"},
		}
	}

	return &Results{Data: data, Summary: summary}
}
