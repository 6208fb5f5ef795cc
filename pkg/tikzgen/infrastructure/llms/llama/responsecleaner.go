package llama

import (
	"strings"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

type responseCleaner struct{}

func NewResponseCleaner() *responseCleaner {
	return &responseCleaner{}
}

func (r *responseCleaner) CleanResponse(options domain.CleanOptions) string {
	response := r.removePromptFromResponse(options.Prompt, options.Response)
	response = strings.ReplaceAll(response, eosToken, "")
	response = strings.ReplaceAll(response, "<unk>", "")
	response = removeCodeFencesIfAny(response)
	// The model can try to start a second document right after finishing the first one, so we cut
	// everything after the first document terminator.
	if index := strings.Index(response, endOfDocument); index != -1 {
		response = response[:index+len(endOfDocument)]
	}
	return strings.TrimSpace(response)
}

// llama.cpp echoes the prompt before the completion, so we remove it from the response. We anchor on the
// separator token instead of the prompt length because the echo is not always byte-identical to the prompt.
func (r *responseCleaner) removePromptFromResponse(prompt, response string) string {
	if index := strings.LastIndex(response, sepToken); index != -1 {
		return response[index+len(sepToken):]
	}
	if len(response) < len(prompt)+1 {
		return ""
	}
	return strings.TrimSpace(response[len(prompt)+1:])
}

// Sometimes, the model wraps the code in a Markdown code fence (an artifact of instruction-tuned bases).
func removeCodeFencesIfAny(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```") {
		return response
	}
	trimmed = strings.TrimPrefix(trimmed, "```latex")
	trimmed = strings.TrimPrefix(trimmed, "```tex")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if index := strings.LastIndex(trimmed, "```"); index != -1 {
		trimmed = trimmed[:index]
	}
	return trimmed
}
