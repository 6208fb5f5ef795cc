package llama

import (
	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llamacpp"
)

// Special tokens the fine-tuned LLaMA family was trained with. The separator (the ASCII group separator
// control character) marks the boundary between the caption and the code.
const (
	sepToken      = "<0x1D>"
	eosToken      = "</s>"
	endOfDocument = "\\end{document}"
)

func NewLanguageModel(
	checkpoint *domain.Checkpoint,
	namedMutexAcquirer domain.NamedMutexAcquirer,
	config *common.Config,
	logger common.Logger,
) *llamacpp.LanguageModel {
	return llamacpp.NewLanguageModel(
		"llama",
		checkpoint,
		NewPromptFormatter(),
		NewStopCondition(),
		NewResponseCleaner(),
		namedMutexAcquirer,
		config,
		logger,
	)
}
