package assessment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

var wellbeing = []Question{
	{ID: 1, Question: "How is your energy today?", Type: TypeScale, Scale: &Scale{Min: 1, Max: 10}},
	{ID: 2, Question: "Which symptoms do you have?", Type: TypeMultipleChoice, Options: []string{"Headaches", "Back pain", "Fatigue"}},
	{ID: 3, Question: "How would you describe your mood?", Type: TypeSingleChoice, Options: []string{"Calm", "Anxiety", "Depression"}},
	{ID: 4, Question: "Anything else?", Type: TypeText},
}

func answers(t *testing.T, raw string) Answers {
	t.Helper()
	var a Answers
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	return a
}

func TestValidate(t *testing.T) {
	ok := answers(t, `{"1": 7, "2": ["Headaches", "Fatigue"], "3": "Calm", "4": "sleeping badly"}`)
	assert.NoError(t, Validate(wellbeing, ok))

	bad := map[string]string{
		"empty":            `{}`,
		"unknown question": `{"9": 1}`,
		"scale too high":   `{"1": 11}`,
		"scale not number": `{"1": "high"}`,
		"unknown option":   `{"2": ["Nausea"]}`,
		"single as list":   `{"3": ["Calm"]}`,
		"text as number":   `{"4": 5}`,
	}
	for name, raw := range bad {
		t.Run(name, func(t *testing.T) {
			assert.True(t, httperr.IsValidation(Validate(wellbeing, answers(t, raw))))
		})
	}
}

func TestValidateQuestions(t *testing.T) {
	assert.NoError(t, ValidateQuestions(wellbeing))

	assert.Error(t, ValidateQuestions(nil))
	assert.Error(t, ValidateQuestions([]Question{
		{ID: 1, Question: "a", Type: TypeText},
		{ID: 1, Question: "b", Type: TypeText},
	}))
	assert.Error(t, ValidateQuestions([]Question{{ID: 1, Question: "a", Type: TypeScale}}))
	assert.Error(t, ValidateQuestions([]Question{{ID: 1, Question: "a", Type: TypeSingleChoice}}))
	assert.Error(t, ValidateQuestions([]Question{{ID: 1, Question: "a", Type: "slider"}}))
}

func TestScore(t *testing.T) {
	a := answers(t, `{"1": 7, "2": ["Headaches", "Fatigue"], "3": "Calm", "4": "tired"}`)
	assert.Equal(t, 11, Score(a))

	assert.Equal(t, 0, Score(Answers{}))
	assert.Equal(t, 4, Score(answers(t, `{"1": 3.6}`)))
}

func TestRecommend_DefaultRules(t *testing.T) {
	a := answers(t, `{"1": 3, "2": ["Headaches"], "3": "Anxiety"}`)

	assert.Equal(t,
		"Energy treatments and immune support are recommended. "+
			"Acupuncture and medical massage are recommended. "+
			"Psychotherapy and guided meditation are recommended",
		Recommend(DefaultRules, a),
	)

	assert.Equal(t,
		"Psychotherapy and guided meditation are recommended",
		Recommend(DefaultRules, answers(t, `{"1": 8, "2": ["Back pain"], "3": "Depression"}`)),
	)
}

func TestRecommend_Fallback(t *testing.T) {
	a := answers(t, `{"1": 9, "2": ["Back pain"], "3": "Calm"}`)
	assert.Equal(t, FallbackRecommendation, Recommend(DefaultRules, a))
}

func TestParseScoringMethod(t *testing.T) {
	rules, err := ParseScoringMethod(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules, rules)

	rules, err = ParseScoringMethod(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Equal(t, DefaultRules, rules)

	rules, err = ParseScoringMethod(json.RawMessage(`{"rules":[{"question_id":4,"contains":["pain"],"text":"Massage"}]}`))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Massage", Recommend(rules, answers(t, `{"4": "lower back pain"}`)))

	_, err = ParseScoringMethod(json.RawMessage(`{"rules":`))
	assert.Error(t, err)
}

func TestParseQuestions(t *testing.T) {
	raw, err := json.Marshal(wellbeing)
	require.NoError(t, err)

	qs, err := ParseQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, wellbeing, qs)
}
