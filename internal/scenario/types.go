package scenario

import (
	"encoding/json"
	"strings"
)

// QuestionType selects how a scenario is answered and which answer field is
// authoritative.
type QuestionType string

const (
	// TypeBinary offers exactly two options; CorrectAnswer holds the key.
	TypeBinary QuestionType = "binary"

	// TypeMultipleChoice offers several options; CorrectAnswer holds the key.
	TypeMultipleChoice QuestionType = "multiple_choice"

	// TypeIdentifyElement presents the body as clickable Segments; the key is
	// whichever segment has IsCorrectPart set.
	TypeIdentifyElement QuestionType = "identify_element"

	// TypeMultipleSelect offers several options; CorrectAnswers holds the key.
	TypeMultipleSelect QuestionType = "multiple_select"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeBinary, TypeMultipleChoice, TypeIdentifyElement, TypeMultipleSelect:
		return true
	}
	return false
}

// BodySegment is a clickable span of an identify_element body.
type BodySegment struct {
	Text          string `json:"text"`
	IsCorrectPart bool   `json:"isCorrectPart,omitempty"`
}

// Scenario is one generated quiz item. It is never mutated after the
// generator returns it.
type Scenario struct {
	Category Category `json:"category"`

	// Sender and Subject are optional display metadata; "" means absent.
	Sender  string `json:"sender,omitempty"`
	Subject string `json:"subject,omitempty"`

	// Body is the plain text shown to the player. Empty for identify_element.
	Body string `json:"body,omitempty"`

	// Segments replaces Body for identify_element.
	Segments []BodySegment `json:"segments,omitempty"`

	Question string       `json:"question"`
	Type     QuestionType `json:"questionType"`

	// Options is empty for identify_element.
	Options []string `json:"options"`

	// CorrectAnswer is set for binary and multiple_choice.
	CorrectAnswer string `json:"correctAnswer,omitempty"`

	// CorrectAnswers is set for multiple_select.
	CorrectAnswers []string `json:"correctAnswers,omitempty"`
}

// BodyJSON returns the body as the model would see it again: a JSON string
// for text bodies, a JSON array of segments for identify_element.
func (s *Scenario) BodyJSON() string {
	var b []byte
	if s.Type == TypeIdentifyElement {
		b, _ = json.Marshal(s.Segments)
	} else {
		b, _ = json.Marshal(s.Body)
	}
	return string(b)
}

// CorrectAnswerText renders the answer key for display and for the
// feedback prompt.
func (s *Scenario) CorrectAnswerText() string {
	switch s.Type {
	case TypeMultipleSelect:
		return strings.Join(s.CorrectAnswers, ", ")
	case TypeIdentifyElement:
		var parts []string
		for _, seg := range s.Segments {
			if seg.IsCorrectPart {
				parts = append(parts, strings.TrimSpace(seg.Text))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return s.CorrectAnswer
	}
}

// IsCorrectAnswer reports whether option is in the multiple_select key.
func (s *Scenario) IsCorrectAnswer(option string) bool {
	for _, a := range s.CorrectAnswers {
		if a == option {
			return true
		}
	}
	return false
}
