package quizgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/quizbuddy/internal/llm"
)

const quizSchemaURL = "schema://kids-quiz.json"

// quizSchemaJSON is the shape every generated document must satisfy.
// Extra properties are tolerated; the four question fields are not optional.
const quizSchemaJSON = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 4,
			"maxItems": 4,
			"items": {
				"type": "object",
				"required": ["question", "options", "correct_answer", "explanation"],
				"properties": {
					"question": {"type": "string", "minLength": 1},
					"options": {
						"type": "array",
						"minItems": 4,
						"maxItems": 4,
						"items": {"type": "string", "minLength": 1}
					},
					"correct_answer": {"type": "integer", "minimum": 0, "maximum": 3},
					"explanation": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// quizSchema returns the compiled validation schema.
func quizSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(quizSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add quiz schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(quizSchemaURL)
	})
	return compiledSchema, compileErr
}

// ResponseSchema is the structured-output hint sent to providers that
// support one. It omits numeric and length bounds, which not every
// provider accepts; Parse still enforces them.
var ResponseSchema = &llm.Schema{
	Name:        "kids-quiz",
	Description: "Four multiple-choice questions for a child",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question, in simple words",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options",
						},
						"correct_answer": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief, encouraging explanation for kids",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
