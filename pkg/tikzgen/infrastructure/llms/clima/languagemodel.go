package clima

import (
	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llamacpp"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llms/llama"
)

const (
	// ConfigKeyCLiMAPatchCount how many patch placeholders to prepend to the prompt. Must match the number
	// of patches the vision projector of the checkpoint emits; 0 disables the prefix for text-only inference.
	ConfigKeyCLiMAPatchCount = "climaPatchCount"
)

// CLiMA is the multimodal variant of the LLaMA family: it was trained with a CLIP vision encoder whose
// patch embeddings are injected in place of mask-token placeholders at the start of the prompt. When the
// runtime has no projector loaded we run it text-only, which still benefits from the multimodal training.
func NewLanguageModel(
	checkpoint *domain.Checkpoint,
	namedMutexAcquirer domain.NamedMutexAcquirer,
	config *common.Config,
	logger common.Logger,
) *llamacpp.LanguageModel {
	return llamacpp.NewLanguageModel(
		"clima",
		checkpoint,
		NewPromptFormatter(config.GetIntOrDefault(ConfigKeyCLiMAPatchCount, 0)),
		llama.NewStopCondition(),
		newResponseCleaner(),
		namedMutexAcquirer,
		config,
		logger,
	)
}
