package clima

import (
	"strings"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llms/llama"
)

// The mask token (the ASCII substitute control character) reserves positions for vision patches.
const maskToken = "<0x1A>"

type promptFormatter struct {
	patchPrefix string
	wrapped     domain.PromptFormatter
}

func NewPromptFormatter(patchCount int) *promptFormatter {
	return &promptFormatter{
		patchPrefix: strings.Repeat(maskToken, patchCount),
		wrapped:     llama.NewPromptFormatter(),
	}
}

func (p *promptFormatter) FormatPrompt(caption string) string {
	return p.patchPrefix + p.wrapped.FormatPrompt(caption)
}
