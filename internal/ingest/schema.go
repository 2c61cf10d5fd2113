package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// courseSchema validates a course file before anything touches the store.
var courseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"course_id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"chunks": map[string]any{
			"type":  "array",
			"items": chunkSchema,
		},
	},
	"required":             []any{"course_id", "chunks"},
	"additionalProperties": false,
}

var chunkSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"chunk_id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"title": map[string]any{
			"type": "string",
		},
		"sections": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":         map[string]any{"type": "string"},
					"concepts":      stringArray,
					"prerequisites": stringArray,
				},
				"required":             []any{"title"},
				"additionalProperties": false,
			},
		},
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchema,
		},
	},
	"required":             []any{"chunk_id", "questions"},
	"additionalProperties": false,
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type": "string",
		},
		"text": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 2,
		},
		"correct_index": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
		"bloom": map[string]any{
			"type": "string",
			"enum": []any{"knowledge", "application", "analysis"},
		},
		"usage": map[string]any{
			"type": "string",
			"enum": []any{"training", "archive", "exam"},
		},
		"concepts":   stringArray,
		"evidence":   map[string]any{"type": "string"},
		"char_count": map[string]any{"type": "integer", "minimum": 0},
	},
	"required":             []any{"text", "options", "correct_index", "bloom"},
	"additionalProperties": false,
}

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// validate checks raw course JSON against the schema.
func validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	defBytes, err := json.Marshal(courseSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://course.json", defParsed); err != nil {
		return fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile("schema://course.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("course file rejected: %w", err)
	}
	return nil
}
