package challenge

import (
	"time"

	"github.com/abhisek/cyberhygiene/internal/challenge"
)

// resultMsg carries a finished engine request back to the screen.
type resultMsg struct {
	ChallengeID string
	Result      challenge.Result
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time

// continueMsg is sent when the player closes the explanation.
type continueMsg struct{}
