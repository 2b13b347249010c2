package hints

import "github.com/abhisek/lexis/internal/llm"

// MemoryAidSchema defines the JSON schema for a memory aid.
var MemoryAidSchema = &llm.Schema{
	Name:        "memory-aid",
	Description: "A short mnemonic that links a Latin word to its meaning",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mnemonic": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One or two sentences linking the sound or shape of the word to its meaning",
			},
			"note": map[string]any{
				"type":        "string",
				"description": "Optional related word in a modern language, or an empty string",
			},
		},
		"required":             []any{"mnemonic", "note"},
		"additionalProperties": false,
	},
}
