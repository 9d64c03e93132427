package scenario

import "fmt"

// GenerationError reports that no usable scenario was produced: the LLM
// call failed, or its payload failed schema or domain validation.
type GenerationError struct {
	Category Category
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s scenario: %v", e.Category, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedInteractivePayload reports an identify_element body that could
// not be used. It always reaches callers wrapped in a GenerationError.
type MalformedInteractivePayload struct {
	Reason string
	Err    error
}

func (e *MalformedInteractivePayload) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed interactive scenario: %s: %v", e.Reason, e.Err)
	}
	return "malformed interactive scenario: " + e.Reason
}

func (e *MalformedInteractivePayload) Unwrap() error { return e.Err }
