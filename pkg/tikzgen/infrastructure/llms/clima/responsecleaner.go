package clima

import (
	"strings"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llms/llama"
)

type responseCleaner struct {
	wrapped domain.ResponseCleaner
}

func newResponseCleaner() *responseCleaner {
	return &responseCleaner{wrapped: llama.NewResponseCleaner()}
}

func (r *responseCleaner) CleanResponse(options domain.CleanOptions) string {
	// Patch placeholders are echoed back together with the prompt, so they must not anchor the cleanup.
	options.Prompt = strings.ReplaceAll(options.Prompt, maskToken, "")
	options.Response = strings.ReplaceAll(options.Response, maskToken, "")
	return r.wrapped.CleanResponse(options)
}
