package assessment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type QuestionType string

const (
	TypeScale          QuestionType = "scale"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeSingleChoice   QuestionType = "single_choice"
	TypeText           QuestionType = "text"
)

type Scale struct {
	Min    float64           `json:"min"`
	Max    float64           `json:"max"`
	Labels map[string]string `json:"labels,omitempty"`
}

type Question struct {
	ID       int          `json:"id"`
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Scale    *Scale       `json:"scale,omitempty"`
	Options  []string     `json:"options,omitempty"`
}

// Rule adds Text to the recommendations when the answer to QuestionID is a
// number below Below, or an option (or text) containing one of Contains.
type Rule struct {
	QuestionID int      `json:"question_id"`
	Below      *float64 `json:"below,omitempty"`
	Contains   []string `json:"contains,omitempty"`
	Text       string   `json:"text"`
}

type ScoringMethod struct {
	Rules []Rule `json:"rules"`
}

const FallbackRecommendation = "A follow-up evaluation with our therapist is recommended."

func below(v float64) *float64 { return &v }

// DefaultRules apply when an assessment carries no scoring method.
var DefaultRules = []Rule{
	{QuestionID: 1, Below: below(5), Text: "Energy treatments and immune support are recommended"},
	{QuestionID: 2, Contains: []string{"Headaches"}, Text: "Acupuncture and medical massage are recommended"},
	{QuestionID: 3, Contains: []string{"Anxiety", "Depression"}, Text: "Psychotherapy and guided meditation are recommended"},
}

// Answers maps question id to the raw JSON answer.
type Answers map[string]json.RawMessage

// ParseQuestions decodes the stored questions column.
func ParseQuestions(raw json.RawMessage) ([]Question, error) {
	var qs []Question
	if len(raw) == 0 {
		return qs, nil
	}
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func ParseScoringMethod(raw json.RawMessage) ([]Rule, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultRules, nil
	}
	var sm ScoringMethod
	if err := json.Unmarshal(raw, &sm); err != nil {
		return nil, err
	}
	if len(sm.Rules) == 0 {
		return DefaultRules, nil
	}
	return sm.Rules, nil
}

// ValidateQuestions checks a question set before it is stored.
func ValidateQuestions(qs []Question) error {
	if len(qs) == 0 {
		return httperr.Missing("questions")
	}

	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return httperr.Invalid("questions", fmt.Sprintf("duplicate id %d", q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Question) == "" {
			return httperr.Invalid("questions", fmt.Sprintf("question %d has no text", q.ID))
		}

		switch q.Type {
		case TypeScale:
			if q.Scale == nil || q.Scale.Min >= q.Scale.Max {
				return httperr.Invalid("questions", fmt.Sprintf("question %d needs a scale with min < max", q.ID))
			}
		case TypeMultipleChoice, TypeSingleChoice:
			if len(q.Options) == 0 {
				return httperr.Invalid("questions", fmt.Sprintf("question %d has no options", q.ID))
			}
		case TypeText:
		default:
			return httperr.Invalid("questions", fmt.Sprintf("question %d has unknown type %q", q.ID, q.Type))
		}
	}
	return nil
}

// Validate checks every answer against its question. Unanswered questions
// are allowed; answers to unknown questions are not.
func Validate(qs []Question, answers Answers) error {
	if len(answers) == 0 {
		return httperr.Missing("responses")
	}

	byID := make(map[string]Question, len(qs))
	for _, q := range qs {
		byID[strconv.Itoa(q.ID)] = q
	}

	for key, raw := range answers {
		q, ok := byID[key]
		if !ok {
			return httperr.Invalid("responses", fmt.Sprintf("unknown question %s", key))
		}
		if err := validateAnswer(q, raw); err != nil {
			return httperr.Invalid("responses", fmt.Sprintf("question %s: %s", key, err.Error()))
		}
	}
	return nil
}

func validateAnswer(q Question, raw json.RawMessage) error {
	switch q.Type {
	case TypeScale:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("expected a number")
		}
		if q.Scale != nil && (n < q.Scale.Min || n > q.Scale.Max) {
			return fmt.Errorf("expected a value between %g and %g", q.Scale.Min, q.Scale.Max)
		}

	case TypeMultipleChoice:
		var picked []string
		if err := json.Unmarshal(raw, &picked); err != nil {
			return fmt.Errorf("expected a list of options")
		}
		for _, p := range picked {
			if !contains(q.Options, p) {
				return fmt.Errorf("%q is not an option", p)
			}
		}

	case TypeSingleChoice:
		var picked string
		if err := json.Unmarshal(raw, &picked); err != nil {
			return fmt.Errorf("expected one option")
		}
		if !contains(q.Options, picked) {
			return fmt.Errorf("%q is not an option", picked)
		}

	case TypeText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("expected text")
		}
	}
	return nil
}

// Score sums the answers: numbers add their value, lists add their length
// and anything else adds one.
func Score(answers Answers) int {
	var total float64
	for _, raw := range answers {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			total++
			continue
		}
		switch t := v.(type) {
		case float64:
			total += t
		case []any:
			total += float64(len(t))
		default:
			total++
		}
	}
	return int(math.Round(total))
}

// Recommend evaluates rules in order and joins the matching texts.
func Recommend(rules []Rule, answers Answers) string {
	var out []string

	for _, r := range rules {
		raw, ok := answers[strconv.Itoa(r.QuestionID)]
		if !ok {
			continue
		}
		if matches(r, raw) {
			out = append(out, r.Text)
		}
	}

	if len(out) == 0 {
		return FallbackRecommendation
	}
	return strings.Join(out, ". ")
}

func matches(r Rule, raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}

	switch t := v.(type) {
	case float64:
		return r.Below != nil && t < *r.Below
	case string:
		return containsAny([]string{t}, r.Contains)
	case []any:
		vals := make([]string, 0, len(t))
		for _, x := range t {
			if s, ok := x.(string); ok {
				vals = append(vals, s)
			}
		}
		return containsAny(vals, r.Contains)
	}
	return false
}

func containsAny(values, needles []string) bool {
	for _, v := range values {
		for _, n := range needles {
			if strings.Contains(v, n) {
				return true
			}
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
