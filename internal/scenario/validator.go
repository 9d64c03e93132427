package scenario

import "fmt"

// Validator checks a decoded scenario for domain correctness.
// Implementations are stateless and reject rather than repair.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if the scenario passes.
	Validate(s *Scenario) *ValidationError
}

// ValidationError describes why a scenario failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// ContentValidator rejects scenarios with missing text or repeated options.
type ContentValidator struct{}

func (v *ContentValidator) Name() string { return "content" }

func (v *ContentValidator) Validate(s *Scenario) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if s.Question == "" {
		return fail("question is empty")
	}
	if s.Type != TypeIdentifyElement && s.Body == "" {
		return fail("body is empty")
	}

	seen := make(map[string]bool, len(s.Options))
	for _, o := range s.Options {
		if o == "" {
			return fail("empty option")
		}
		if seen[o] {
			return fail("duplicate option %q", o)
		}
		seen[o] = true
	}
	return nil
}

// AnswerKeyValidator enforces the per-type option counts and checks that the
// authoritative answer field agrees with the options.
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(s *Scenario) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	switch s.Type {
	case TypeBinary:
		if len(s.Options) != 2 {
			return fail("binary question needs exactly 2 options, got %d", len(s.Options))
		}
		if !contains(s.Options, s.CorrectAnswer) {
			return fail("correct answer %q is not an option", s.CorrectAnswer)
		}

	case TypeMultipleChoice:
		if len(s.Options) < 2 {
			return fail("multiple choice question needs at least 2 options, got %d", len(s.Options))
		}
		if !contains(s.Options, s.CorrectAnswer) {
			return fail("correct answer %q is not an option", s.CorrectAnswer)
		}

	case TypeMultipleSelect:
		if len(s.Options) < 2 {
			return fail("multiple select question needs at least 2 options, got %d", len(s.Options))
		}
		if len(s.CorrectAnswers) == 0 {
			return fail("multiple select question has no correct answers")
		}
		seen := make(map[string]bool, len(s.CorrectAnswers))
		for _, a := range s.CorrectAnswers {
			if seen[a] {
				return fail("duplicate correct answer %q", a)
			}
			seen[a] = true
			if !contains(s.Options, a) {
				return fail("correct answer %q is not an option", a)
			}
		}

	case TypeIdentifyElement:
		if len(s.Options) != 0 {
			return fail("identify_element question must not have options, got %d", len(s.Options))
		}

	default:
		return fail("unknown question type %q", s.Type)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
