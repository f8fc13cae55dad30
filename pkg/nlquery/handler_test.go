package nlquery

import (
	"context"
	"errors"
	"testing"
	"time"

	analyticsdomain "github.com/hugohenrick/medbot-analytics/internal/domain/analytics"
	"github.com/hugohenrick/medbot-analytics/internal/domain/audit"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator devolve uma resposta fixa no lugar do modelo
type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) GenerateContent(context.Context, string) (string, error) {
	return f.response, f.err
}

// fakeSource é uma origem em memória para os testes do planejador
type fakeSource struct {
	users         []analyticsdomain.AppUser
	chats         []analyticsdomain.Chat
	conversations []analyticsdomain.Conversation
	drugs         []analyticsdomain.UnfoundDrug
}

func (f *fakeSource) Users(context.Context) ([]analyticsdomain.AppUser, error) {
	return f.users, nil
}

func (f *fakeSource) UsersActiveSince(context.Context, time.Time) ([]analyticsdomain.AppUser, error) {
	return f.users, nil
}

func (f *fakeSource) Chats(context.Context) ([]analyticsdomain.Chat, error) {
	return f.chats, nil
}

func (f *fakeSource) ChatsByUser(context.Context, string) ([]analyticsdomain.Chat, error) {
	return f.chats, nil
}

func (f *fakeSource) Conversations(context.Context) ([]analyticsdomain.Conversation, error) {
	return f.conversations, nil
}

func (f *fakeSource) ConversationsSince(context.Context, time.Time) ([]analyticsdomain.Conversation, error) {
	return f.conversations, nil
}

func (f *fakeSource) UnfoundDrugs(context.Context) ([]analyticsdomain.UnfoundDrug, error) {
	return f.drugs, nil
}

// fakeAudit acumula os registros gravados
type fakeAudit struct {
	records []*audit.QueryRecord
}

func (f *fakeAudit) Save(_ context.Context, r *audit.QueryRecord) error {
	f.records = append(f.records, r)
	return nil
}

func (f *fakeAudit) List(context.Context, int, int) ([]*audit.QueryRecord, error) {
	return f.records, nil
}

func intPtr(v int) *int { return &v }

func drugSource() *fakeSource {
	return &fakeSource{drugs: []analyticsdomain.UnfoundDrug{
		{TabletName: "dolo 650", Frequency: 12},
		{TabletName: "zerodol", Frequency: 3},
		{TabletName: "calpol", Frequency: 7, CombinationName: "paracetamol"},
	}}
}

func TestHandler_QueryPlanExecution(t *testing.T) {
	generator := &fakeGenerator{response: "```json\n" + `{
		"kind": "query",
		"collection": "unfound_drugs",
		"filters": [{"field": "frequency", "operator": ">", "value": 5}],
		"order_by": "frequency",
		"order_desc": true,
		"summary": "Drugs searched more than 5 times"
	}` + "\n```"}
	h := NewHandler(generator, drugSource(), nil, logger.NewLogger())

	response := h.Process(context.Background(), "", "Show me unfound drugs searched more than 5 times")
	require.True(t, response.Success, "erro: %s", response.Error)

	require.Len(t, response.Results.Data, 2)
	assert.Equal(t, "dolo 650", response.Results.Data[0]["tablet_name"])
	assert.Equal(t, "calpol", response.Results.Data[1]["tablet_name"])
	assert.Equal(t, "Drugs searched more than 5 times", response.Results.Summary)
}

func TestHandler_AnswerPlan(t *testing.T) {
	generator := &fakeGenerator{response: `{"kind": "answer", "answer": "This dashboard tracks a medical chatbot."}`}
	h := NewHandler(generator, &fakeSource{}, nil, logger.NewLogger())

	response := h.Process(context.Background(), "", "what is this dashboard?")
	require.True(t, response.Success)
	require.Len(t, response.Results.Data, 1)
	assert.Equal(t, "This dashboard tracks a medical chatbot.", response.Results.Data[0]["answer"])
}

func TestHandler_RejectsUnknownCollection(t *testing.T) {
	generator := &fakeGenerator{response: `{"kind": "query", "collection": "secrets"}`}
	h := NewHandler(generator, &fakeSource{}, nil, logger.NewLogger())

	response := h.Process(context.Background(), "", "dump the secrets collection")
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "coleção desconhecida")
}

func TestHandler_RejectsUnknownField(t *testing.T) {
	generator := &fakeGenerator{response: `{
		"kind": "query",
		"collection": "users",
		"filters": [{"field": "password", "operator": "==", "value": "x"}]
	}`}
	h := NewHandler(generator, &fakeSource{}, nil, logger.NewLogger())

	response := h.Process(context.Background(), "", "show user passwords")
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "campo desconhecido")
}

func TestHandler_GeneratorError(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("quota excedida")}
	h := NewHandler(generator, &fakeSource{}, nil, logger.NewLogger())

	response := h.Process(context.Background(), "", "anything")
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "quota excedida")
}

func TestHandler_MalformedPlan(t *testing.T) {
	generator := &fakeGenerator{response: "sure! here is some python code:\nprint('hi')"}
	h := NewHandler(generator, &fakeSource{}, nil, logger.NewLogger())

	response := h.Process(context.Background(), "", "anything")
	assert.False(t, response.Success)
	assert.NotEmpty(t, response.Error)
}

func TestHandler_RecordsAudit(t *testing.T) {
	auditRepo := &fakeAudit{}
	generator := &fakeGenerator{response: `{"kind": "query", "collection": "unfound_drugs", "aggregate": "count"}`}
	h := NewHandler(generator, drugSource(), auditRepo, logger.NewLogger())

	response := h.Process(context.Background(), "op-1", "how many unfound drugs?")
	require.True(t, response.Success)

	require.Len(t, auditRepo.records, 1)
	record := auditRepo.records[0]
	assert.Equal(t, "op-1", record.UserID)
	assert.Equal(t, "how many unfound drugs?", record.Query)
	assert.True(t, record.Success)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestPlanValidate(t *testing.T) {
	t.Run("plano de consulta válido", func(t *testing.T) {
		p := &Plan{Kind: PlanKindQuery, Collection: CollectionUsers, OrderBy: "login_count", Limit: 10}
		assert.NoError(t, p.Validate())
	})

	t.Run("tipo desconhecido", func(t *testing.T) {
		p := &Plan{Kind: "exec"}
		assert.ErrorIs(t, p.Validate(), ErrInvalidPlan)
	})

	t.Run("resposta direta vazia", func(t *testing.T) {
		p := &Plan{Kind: PlanKindAnswer}
		assert.ErrorIs(t, p.Validate(), ErrInvalidPlan)
	})

	t.Run("operador desconhecido", func(t *testing.T) {
		p := &Plan{Kind: PlanKindQuery, Collection: CollectionChats,
			Filters: []Filter{{Field: "message_count", Operator: "~="}}}
		assert.ErrorIs(t, p.Validate(), ErrInvalidPlan)
	})

	t.Run("agregação sem group_by", func(t *testing.T) {
		p := &Plan{Kind: PlanKindQuery, Collection: CollectionChats, Aggregate: "avg"}
		assert.ErrorIs(t, p.Validate(), ErrInvalidPlan)
	})
}

func TestExtractJSON(t *testing.T) {
	t.Run("com cerca json", func(t *testing.T) {
		text := "```json\n{\"kind\": \"answer\"}\n```"
		assert.Equal(t, `{"kind": "answer"}`, extractJSON(text))
	})

	t.Run("com cerca sem linguagem", func(t *testing.T) {
		text := "```\n{\"kind\": \"answer\"}\n```"
		assert.Equal(t, `{"kind": "answer"}`, extractJSON(text))
	})

	t.Run("sem cerca", func(t *testing.T) {
		assert.Equal(t, `{"kind": "answer"}`, extractJSON(` {"kind": "answer"} `))
	})
}

func TestExecutePlanAggregates(t *testing.T) {
	source := &fakeSource{users: []analyticsdomain.AppUser{
		{UserID: "u1", Gender: "female", LoginCount: 10, Age: intPtr(30)},
		{UserID: "u2", Gender: "male", LoginCount: 2},
		{UserID: "u3", Gender: "female", LoginCount: 6},
	}}

	t.Run("count", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers, Aggregate: "count",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, results.Data[0]["count"])
	})

	t.Run("group_count ordenado por contagem", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Aggregate: "group_count", GroupBy: "gender",
		})
		require.NoError(t, err)
		require.Len(t, results.Data, 2)
		assert.Equal(t, "female", results.Data[0]["gender"])
		assert.Equal(t, 2, results.Data[0]["count"])
	})

	t.Run("avg ignora valores ausentes", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Aggregate: "avg", GroupBy: "age",
		})
		require.NoError(t, err)
		assert.Equal(t, 30.0, results.Data[0]["avg"])
		assert.Equal(t, 1, results.Data[0]["records"])
	})

	t.Run("sum", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Aggregate: "sum", GroupBy: "login_count",
		})
		require.NoError(t, err)
		assert.Equal(t, 18.0, results.Data[0]["sum"])
	})
}

func TestExecutePlanFilters(t *testing.T) {
	lastLogin := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{users: []analyticsdomain.AppUser{
		{UserID: "u1", DisplayName: "Ana Souza", LastLogin: &lastLogin, ProfileComplete: true},
		{UserID: "u2", DisplayName: "Bruno Lima"},
	}}

	t.Run("contains em string", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Filters: []Filter{{Field: "display_name", Operator: "contains", Value: "souza"}},
		})
		require.NoError(t, err)
		require.Len(t, results.Data, 1)
		assert.Equal(t, "u1", results.Data[0]["user_id"])
	})

	t.Run("exists false encontra campos ausentes", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Filters: []Filter{{Field: "last_login", Operator: "exists", Value: false}},
		})
		require.NoError(t, err)
		require.Len(t, results.Data, 1)
		assert.Equal(t, "u2", results.Data[0]["user_id"])
	})

	t.Run("comparação de datas formatadas", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Filters: []Filter{{Field: "last_login", Operator: ">=", Value: "2025-01-01 00:00:00"}},
		})
		require.NoError(t, err)
		require.Len(t, results.Data, 1)
		assert.Equal(t, "u1", results.Data[0]["user_id"])
	})

	t.Run("igualdade booleana", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Filters: []Filter{{Field: "profile_complete", Operator: "==", Value: false}},
		})
		require.NoError(t, err)
		require.Len(t, results.Data, 1)
		assert.Equal(t, "u2", results.Data[0]["user_id"])
	})

	t.Run("projeção de campos", func(t *testing.T) {
		results, err := executePlan(context.Background(), source, &Plan{
			Kind: PlanKindQuery, Collection: CollectionUsers,
			Fields: []string{"user_id", "display_name"},
		})
		require.NoError(t, err)
		require.Len(t, results.Data, 2)
		assert.Len(t, results.Data[0], 2)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("sem resultados", func(t *testing.T) {
		results := normalize(nil, "")
		assert.Equal(t, "No results found", results.Summary)
		require.Len(t, results.Data, 1)
		assert.Equal(t, "No data found for this query", results.Data[0]["message"])
	})

	t.Run("resumo automático", func(t *testing.T) {
		results := normalize([]map[string]interface{}{{"a": 1}, {"a": 2}}, "")
		assert.Equal(t, "Found 2 results", results.Summary)
	})

	t.Run("resumo do plano é preservado", func(t *testing.T) {
		results := normalize([]map[string]interface{}{{"a": 1}}, "Top drugs")
		assert.Equal(t, "Top drugs", results.Summary)
	})
}
