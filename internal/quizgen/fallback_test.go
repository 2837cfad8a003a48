package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_Shape(t *testing.T) {
	qs := Fallback("dinosaurs")
	require.Len(t, qs, QuestionsPerQuiz)

	wantCorrect := []int{3, 1, 3, 3}
	for i, q := range qs {
		assert.Len(t, q.Options, OptionsPerQuestion)
		assert.Equal(t, wantCorrect[i], q.CorrectAnswer, "question %d", i+1)
		assert.Contains(t, q.Question, "dinosaurs")
		assert.Contains(t, q.Explanation, "dinosaurs")
	}
	assert.Equal(t, "What is a fun fact about dinosaurs?", qs[0].Question)
	assert.Equal(t, "Boring", qs[1].Options[0])
	assert.Equal(t, "Exciting", qs[1].Options[1])
}

func TestFallback_Deterministic(t *testing.T) {
	assert.Equal(t, Fallback("Space and Planets"), Fallback("Space and Planets"))
}

func TestFallback_TopicInsertedVerbatim(t *testing.T) {
	topic := "100% <weird> {topic}"
	qs := Fallback(topic)
	for _, q := range qs {
		assert.True(t, strings.Contains(q.Question, topic), q.Question)
	}
}

func TestFallback_ReturnsIndependentCopies(t *testing.T) {
	a := Fallback("ocean")
	a[0].Options[0] = "changed"

	b := Fallback("ocean")
	assert.Equal(t, "It's amazing!", b[0].Options[0])
}

func TestFallback_PassesParseRules(t *testing.T) {
	// The fallback must satisfy the same rules as generated output.
	for _, q := range Fallback("weather") {
		_, err := toQuestion(map[string]any{
			"question":       q.Question,
			"options":        []any{q.Options[0], q.Options[1], q.Options[2], q.Options[3]},
			"correct_answer": jsonNumber(q.CorrectAnswer),
			"explanation":    q.Explanation,
		})
		assert.NoError(t, err)
	}
}

func TestQuestionSet_Clone(t *testing.T) {
	orig := Fallback("art")
	cp := orig.Clone()
	cp[2].Options[1] = "x"
	cp[2].Question = "y"

	assert.Equal(t, "Watching videos", orig[2].Options[1])
	assert.NotEqual(t, "y", orig[2].Question)
	assert.Nil(t, QuestionSet(nil).Clone())
}
