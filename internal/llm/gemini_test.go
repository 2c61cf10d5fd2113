package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(questionTestSchema().Definition)

	if schema.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(schema.Properties))
	}
	if schema.Properties["text"].Type != "STRING" {
		t.Errorf("text type = %s, want STRING", schema.Properties["text"].Type)
	}
	if schema.Properties["correct_index"].Type != "INTEGER" {
		t.Errorf("correct_index type = %s, want INTEGER", schema.Properties["correct_index"].Type)
	}
	if schema.Properties["options"].Type != "ARRAY" {
		t.Errorf("options type = %s, want ARRAY", schema.Properties["options"].Type)
	}
	if schema.Properties["options"].Items.Type != "STRING" {
		t.Errorf("options item type = %s, want STRING", schema.Properties["options"].Items.Type)
	}
	if len(schema.Required) != 3 {
		t.Errorf("required = %d, want 3", len(schema.Required))
	}
}

func TestBuildGeminiSchema_Enum(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bloom": map[string]any{
				"type": "string",
				"enum": []any{"knowledge", "application", "analysis"},
			},
		},
	}

	schema := buildGeminiSchema(def)
	if len(schema.Properties["bloom"].Enum) != 3 {
		t.Fatalf("enum values = %d, want 3", len(schema.Properties["bloom"].Enum))
	}
}
