package domain

type PromptFormatter interface {
	// FormatPrompt formats the given caption into a prompt which is best-suited for the underlying LLM
	// (large language model). Example:
	// 		a red circle next to a blue square<0x1D>
	FormatPrompt(caption string) string
}
