package domain

// LanguageModel a generic interface for a large language model (LLM) fine-tuned to emit TikZ code.
type LanguageModel interface {
	// Name the name of the model. Useful for debugging.
	Name() string
	// Complete completes the given prompt by using the underlying LLM (large language model).
	Complete(prompt string, options CompleteOptions) (string, error)
	// PromptFormatter the prompt formatter associated with this language model. Different model families assume
	// different formatting rules and can be quite sensitive to slight variations.
	PromptFormatter() PromptFormatter
	// ResponseCleaner the response cleaner associated with this language model.
	ResponseCleaner() ResponseCleaner
}
