package nlquery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Tipos de plano aceitos
const (
	PlanKindQuery  = "query"
	PlanKindAnswer = "answer"
)

// Operadores de filtro aceitos
var validOperators = map[string]bool{
	"==":       true,
	"!=":       true,
	">":        true,
	">=":       true,
	"<":        true,
	"<=":       true,
	"contains": true,
	"exists":   true,
}

// Agregações aceitas
var validAggregates = map[string]bool{
	"count":       true,
	"sum":         true,
	"avg":         true,
	"group_count": true,
}

// Limite máximo de registros por consulta
const maxLimit = 100

var (
	ErrInvalidPlan = errors.New("plano de consulta inválido")
)

// Plan é o plano de consulta estruturado gerado pelo modelo.
// Um plano do tipo "query" é validado contra o esquema e executado
// sobre a origem; um plano do tipo "answer" devolve o texto diretamente.
type Plan struct {
	Kind       string   `json:"kind"`
	Answer     string   `json:"answer,omitempty"`
	Collection string   `json:"collection,omitempty"`
	Filters    []Filter `json:"filters,omitempty"`
	Fields     []string `json:"fields,omitempty"`
	OrderBy    string   `json:"order_by,omitempty"`
	OrderDesc  bool     `json:"order_desc,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Aggregate  string   `json:"aggregate,omitempty"`
	GroupBy    string   `json:"group_by,omitempty"`
	Summary    string   `json:"summary,omitempty"`
}

// Filter é uma condição aplicada sobre um campo da coleção
type Filter struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value,omitempty"`
}

// Validate verifica o plano contra o esquema conhecido da origem
func (p *Plan) Validate() error {
	switch p.Kind {
	case PlanKindAnswer:
		if strings.TrimSpace(p.Answer) == "" {
			return fmt.Errorf("%w: resposta direta vazia", ErrInvalidPlan)
		}
		return nil
	case PlanKindQuery:
		// validado abaixo
	default:
		return fmt.Errorf("%w: tipo desconhecido %q", ErrInvalidPlan, p.Kind)
	}

	fields, ok := collectionFields[p.Collection]
	if !ok {
		return fmt.Errorf("%w: coleção desconhecida %q", ErrInvalidPlan, p.Collection)
	}

	for _, f := range p.Filters {
		if !fields[f.Field] {
			return fmt.Errorf("%w: campo desconhecido %q na coleção %q", ErrInvalidPlan, f.Field, p.Collection)
		}
		if !validOperators[f.Operator] {
			return fmt.Errorf("%w: operador desconhecido %q", ErrInvalidPlan, f.Operator)
		}
	}

	for _, f := range p.Fields {
		if !fields[f] {
			return fmt.Errorf("%w: campo desconhecido %q na coleção %q", ErrInvalidPlan, f, p.Collection)
		}
	}

	if p.OrderBy != "" && !fields[p.OrderBy] {
		return fmt.Errorf("%w: campo de ordenação desconhecido %q", ErrInvalidPlan, p.OrderBy)
	}

	if p.Aggregate != "" {
		if !validAggregates[p.Aggregate] {
			return fmt.Errorf("%w: agregação desconhecida %q", ErrInvalidPlan, p.Aggregate)
		}
		switch p.Aggregate {
		case "sum", "avg":
			if p.GroupBy == "" || !fields[p.GroupBy] {
				return fmt.Errorf("%w: agregação %q exige um campo numérico em group_by", ErrInvalidPlan, p.Aggregate)
			}
		case "group_count":
			if p.GroupBy == "" || !fields[p.GroupBy] {
				return fmt.Errorf("%w: group_count exige um campo em group_by", ErrInvalidPlan)
			}
		}
	}

	if p.Limit < 0 {
		return fmt.Errorf("%w: limite negativo", ErrInvalidPlan)
	}

	return nil
}

// effectiveLimit aplica o teto de registros por consulta
func (p *Plan) effectiveLimit() int {
	if p.Limit <= 0 || p.Limit > maxLimit {
		return maxLimit
	}
	return p.Limit
}

var (
	jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)\\n```")
)

// extractJSON remove cercas de markdown da resposta do modelo, se presentes
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}
