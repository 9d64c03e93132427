package challenge

import "github.com/abhisek/cyberhygiene/internal/scenario"

// GradeChoice grades binary and multiple_choice answers by exact match.
func GradeChoice(s *scenario.Scenario, option string) bool {
	return option == s.CorrectAnswer
}

// GradeSelection grades a multiple_select answer by set equality with the
// key. Order is irrelevant.
func GradeSelection(s *scenario.Scenario, selected []string) bool {
	want := make(map[string]bool, len(s.CorrectAnswers))
	for _, a := range s.CorrectAnswers {
		want[a] = true
	}
	got := make(map[string]bool, len(selected))
	for _, a := range selected {
		got[a] = true
	}
	if len(got) != len(want) {
		return false
	}
	for a := range got {
		if !want[a] {
			return false
		}
	}
	return true
}

// GradePick grades an identify_element answer. Out-of-range picks are wrong.
func GradePick(s *scenario.Scenario, index int) bool {
	if index < 0 || index >= len(s.Segments) {
		return false
	}
	return s.Segments[index].IsCorrectPart
}
