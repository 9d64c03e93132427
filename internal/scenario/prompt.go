package scenario

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a cyber-security trainer writing realistic quiz scenarios for non-technical people.

Rules:
- Write one self-contained scenario in English with a single question about it.
- Vary the question type across requests: "multiple_choice" most often (about 50%), then "binary" (about 30%). Use "multiple_select" and "identify_element" less often for variety (about 10% each).
- "binary": exactly 2 options, for example "Safe" and "Suspicious". Put the correct one in correctAnswer.
- "multiple_choice": 3 to 5 distinct options with exactly one correct. Put it in correctAnswer.
- "multiple_select": 3 to 5 distinct options with one or more correct. Put every correct one in correctAnswers.
- "identify_element": options must be empty. The body is a JSON-encoded array of segments that together form the scenario text. Mark the suspicious segment the player should click with "isCorrectPart": true.
- Copy answers exactly as they appear in options.
- Leave fields that do not apply as "" or [].
- Never include real brand login URLs or working malicious links. Use believable lookalikes.`

// buildUserMessage constructs the user message for one scenario request.
func buildUserMessage(c Category) (string, error) {
	instr, err := c.instruction()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n\n", c.Title())
	b.WriteString(instr)
	return b.String(), nil
}
