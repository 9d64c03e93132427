package scenario

import "github.com/abhisek/cyberhygiene/internal/llm"

// ScenarioSchema defines the JSON schema for scenario generation responses.
// Every property is required so strict structured-output modes accept it;
// the model sends "" or [] for fields that do not apply.
var ScenarioSchema = &llm.Schema{
	Name:        "cyber-scenario",
	Description: "A single cyber-hygiene training scenario with a question and its answer key",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sender": map[string]any{
				"type":        "string",
				"description": "For email or SMS scenarios, the sender address or number. Empty string otherwise.",
			},
			"subject": map[string]any{
				"type":        "string",
				"description": "For email or news scenarios, the subject line or headline. Empty string otherwise.",
			},
			"body": map[string]any{
				"type": "string",
				"description": `The main scenario text. For "identify_element" this MUST be a JSON string encoding an array of ` +
					`objects with keys "text" (string) and optional "isCorrectPart" (boolean).`,
			},
			"question": map[string]any{
				"type":        "string",
				"description": "The question asked to the player about the scenario.",
			},
			"questionType": map[string]any{
				"type":        "string",
				"enum":        []any{"binary", "multiple_choice", "identify_element", "multiple_select"},
				"description": "How the player answers.",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": `Possible answers. 2 for "binary", 3-5 for "multiple_choice" and "multiple_select", empty for "identify_element".`,
			},
			"correctAnswer": map[string]any{
				"type":        "string",
				"description": `For "binary" and "multiple_choice", the exact text of the correct option. Empty string otherwise.`,
			},
			"correctAnswers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": `For "multiple_select", every correct option, copied exactly. Empty array otherwise.`,
			},
		},
		"required": []any{
			"sender", "subject", "body", "question", "questionType",
			"options", "correctAnswer", "correctAnswers",
		},
		"additionalProperties": false,
	},
}
