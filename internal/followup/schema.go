package followup

import "github.com/abhisek/revq/internal/llm"

// FollowupSchema defines the JSON schema for LLM follow-up responses.
var FollowupSchema = &llm.Schema{
	Name:        "followup-question",
	Description: "A single remedial multiple-choice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner, plain text",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    5,
				"maxItems":    5,
				"description": "Exactly 5 answer options, exactly one correct",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     4,
				"description": "Zero-based index of the correct option",
			},
			"concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Concepts the question tests, copied or narrowed from the original",
			},
		},
		"required":             []any{"text", "options", "correct_index", "concepts"},
		"additionalProperties": false,
	},
}
