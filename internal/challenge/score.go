package challenge

import "math"

// Length is the number of rounds in one challenge.
const Length = 15

// Score tracks answered rounds. It only grows until an explicit restart.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage returns round(correct/total*100), or 0 before any answer.
func (s Score) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

// Message returns the summary line that matches the percentage tier.
func (s Score) Message() string {
	p := s.Percentage()
	switch {
	case p == 100:
		return "Perfect! You are a cyber-hygiene expert!"
	case p >= 80:
		return "Excellent result! You have very solid knowledge."
	case p >= 50:
		return "Good try! There is more to learn, but you are doing well."
	default:
		return "Keep trying! Every mistake is a chance to learn."
	}
}
