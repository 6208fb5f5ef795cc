package llama

import "strings"

type promptFormatter struct{}

func NewPromptFormatter() *promptFormatter {
	return &promptFormatter{}
}

func (p *promptFormatter) FormatPrompt(caption string) string {
	// The model was trained on single-line captions followed by the separator token; stray newlines
	// in the caption noticeably degrade the output.
	caption = strings.Join(strings.Fields(caption), " ")
	return caption + sepToken
}
