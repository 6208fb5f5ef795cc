package llama

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldStopAtEndOfDocument(t *testing.T) {
	condition := NewStopCondition()
	prompt := "a red circle<0x1D>"
	assert.False(t, condition.ShouldStop(prompt, prompt+"\\documentclass{standalone}"))
	assert.True(t, condition.ShouldStop(prompt, prompt+"\\begin{document}\\end{document}"))
}

func TestShouldStopAtEndOfSequence(t *testing.T) {
	condition := NewStopCondition()
	prompt := "a red circle<0x1D>"
	assert.True(t, condition.ShouldStop(prompt, prompt+"\\draw;</s>"))
}

func TestShouldNotStopWhenPromptMentionsTerminator(t *testing.T) {
	condition := NewStopCondition()
	prompt := "a diagram explaining \\end{document}<0x1D>"
	assert.False(t, condition.ShouldStop(prompt, prompt+"\\documentclass"))
	assert.True(t, condition.ShouldStop(prompt, prompt+"\\end{document}"))
}
