package feedback

import (
	"strings"
	"text/template"

	"github.com/abhisek/cyberhygiene/internal/scenario"
)

const systemPrompt = `You are a friendly cyber-security coach. You explain quiz results to non-technical people in plain English.`

var userTemplate = template.Must(template.New("feedback").Parse(`The player was shown the following cyber-security scenario:
Scenario: {{.Body}}
Question to the player: {{.Question}}
The correct answer is: {{.CorrectAnswer}}
The player answered: {{.UserAnswer}}

Your task is to give detailed, educational feedback.

1. Analyze the player's answer. Say whether it is right or wrong.
2. If it is wrong, explain in detail WHY. Refer to SPECIFIC WORDS OR PHRASES from the scenario that are red flags or misleading elements (for example "a sense of urgency in the subject", "an odd sender address", "grammar mistakes", "a suspicious link").
3. Give one clear piece of advice on how the player can improve and avoid similar mistakes in the future.
4. Keep the tone encouraging, educational and friendly. The answer should be about 3-4 sentences.`))

type promptData struct {
	Body          string
	Question      string
	CorrectAnswer string
	UserAnswer    string
}

// buildUserMessage renders the feedback request for one answered round.
func buildUserMessage(s *scenario.Scenario, userAnswer string) (string, error) {
	var b strings.Builder
	err := userTemplate.Execute(&b, promptData{
		Body:          s.BodyJSON(),
		Question:      s.Question,
		CorrectAnswer: s.CorrectAnswerText(),
		UserAnswer:    userAnswer,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
