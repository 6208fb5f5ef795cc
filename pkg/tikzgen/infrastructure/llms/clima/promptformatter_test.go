package clima

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

func TestFormatPromptPrependsPatchPlaceholders(t *testing.T) {
	formatter := NewPromptFormatter(3)
	assert.Equal(t, "<0x1A><0x1A><0x1A>a red circle<0x1D>", formatter.FormatPrompt("a red circle"))
}

func TestFormatPromptWithoutPatches(t *testing.T) {
	formatter := NewPromptFormatter(0)
	assert.Equal(t, "a red circle<0x1D>", formatter.FormatPrompt("a red circle"))
}

func TestCleanResponseIgnoresPatchPlaceholders(t *testing.T) {
	cleaner := newResponseCleaner()
	prompt := "<0x1A><0x1A>a red circle<0x1D>"
	response := prompt + "\\draw (0,0);"
	cleaned := cleaner.CleanResponse(domain.CleanOptions{Prompt: prompt, Response: response})
	assert.Equal(t, "\\draw (0,0);", cleaned)
}
