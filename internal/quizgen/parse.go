package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Parse turns raw generator output into a QuestionSet. It has no side
// effects; every failure is a *GenerationError.
//
// The pipeline: reject blank text, decode the text as JSON (falling back to
// the span from the first '{' to the last '}'), require a non-empty
// "questions" array, then check every question against the quiz schema.
func Parse(raw string) (QuestionSet, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fail(ErrEmpty, nil)
	}

	doc, err := decodeDocument(text)
	if err != nil {
		return nil, fail(ErrParseFailed, err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fail(ErrMissingField, fmt.Errorf("top-level value is %s, not an object", jsonKind(doc)))
	}
	items, ok := obj["questions"].([]any)
	if !ok || len(items) == 0 {
		return nil, fail(ErrMissingField, errors.New(`"questions" must be a non-empty array`))
	}

	sch, err := quizSchema()
	if err != nil {
		return nil, fail(ErrSchemaInvalid, err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fail(ErrSchemaInvalid, err)
	}

	qs := make(QuestionSet, 0, len(items))
	for i, item := range items {
		q, err := toQuestion(item.(map[string]any))
		if err != nil {
			return nil, fail(ErrSchemaInvalid, fmt.Errorf("question %d: %w", i+1, err))
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// decodeDocument parses text as a single JSON value. When that fails it
// retries with the greedy brace span, which recovers documents wrapped in
// chatty prose such as "Sure! {...} Hope that helps!".
func decodeDocument(text string) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err == nil {
		return doc, nil
	}

	span, ok := braceSpan(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object found: %w", err)
	}
	doc, spanErr := jsonschema.UnmarshalJSON(strings.NewReader(span))
	if spanErr != nil {
		return nil, fmt.Errorf("extracted span: %w", spanErr)
	}
	return doc, nil
}

// braceSpan returns text from the first '{' through the last '}'.
func braceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// toQuestion converts a schema-valid element. Whitespace-only strings pass
// minLength, so they are rejected here.
func toQuestion(m map[string]any) (Question, error) {
	q := Question{
		Question:    strings.TrimSpace(m["question"].(string)),
		Explanation: strings.TrimSpace(m["explanation"].(string)),
	}
	if q.Question == "" {
		return Question{}, errors.New("question text is blank")
	}
	if q.Explanation == "" {
		return Question{}, errors.New("explanation is blank")
	}

	for j, o := range m["options"].([]any) {
		opt := strings.TrimSpace(o.(string))
		if opt == "" {
			return Question{}, fmt.Errorf("option %d is blank", j+1)
		}
		q.Options = append(q.Options, opt)
	}

	idx, err := toIndex(m["correct_answer"])
	if err != nil {
		return Question{}, err
	}
	q.CorrectAnswer = idx
	return q, nil
}

func toIndex(v any) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("correct_answer is %s, not a number", jsonKind(v))
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("correct_answer: %w", err)
	}
	idx := int(f)
	if float64(idx) != f || idx < 0 || idx >= OptionsPerQuestion {
		return 0, fmt.Errorf("correct_answer %s out of range", n)
	}
	return idx, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
