package llama

import "strings"

type stopCondition struct{}

func NewStopCondition() *stopCondition {
	return &stopCondition{}
}

func (s *stopCondition) ShouldStop(prompt, response string) bool {
	// We count occurrences in the prompt as well, because in theory the caption itself can mention
	// the document terminator, and we don't want to stop before any code was generated at all.
	if strings.Count(response, endOfDocument) > strings.Count(prompt, endOfDocument) {
		return true
	}
	return strings.Contains(response, eosToken)
}
