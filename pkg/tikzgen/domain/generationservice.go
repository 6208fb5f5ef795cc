package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kgeyst.com/tikzgen/pkg/common"
)

var ErrFailedToGenerate = errors.New("failed to generate")

var DefaultGenerateOptions = GenerateOptions{}

type GenerateOptions struct {
	// Temperature overrides the configured sampling temperature for the first candidate
	Temperature float64
	// OnToken is an optional streaming callback invoked for every generated piece of output (may be nil)
	OnToken TokenFunc
}

func (g GenerateOptions) WithTemperature(value float64) GenerateOptions {
	g.Temperature = value
	return g
}

func (g GenerateOptions) WithOnToken(value TokenFunc) GenerateOptions {
	g.OnToken = value
	return g
}

// GenerationService drives the whole caption-to-drawing pipeline: it formats the caption into a prompt,
// samples candidates from the language model, cleans and sanitizes them, compiles the survivors and picks
// the first candidate which renders visible content.
type GenerationService struct {
	languageModel      LanguageModel
	sanitizer          *CodeSanitizer
	compiler           Compiler
	rasterizer         Rasterizer
	documentRepository DocumentRepository
	jobQueue           *common.JobQueue
	logger             common.Logger
	retryCount         int
	temperature        float64
	temperatureStep    float64
}

func NewGenerationService(
	languageModel LanguageModel,
	sanitizer *CodeSanitizer,
	compiler Compiler,
	rasterizer Rasterizer,
	documentRepository DocumentRepository,
	jobQueue *common.JobQueue,
	config *common.Config,
	logger common.Logger,
) *GenerationService {
	return &GenerationService{
		languageModel:      languageModel,
		sanitizer:          sanitizer,
		compiler:           compiler,
		rasterizer:         rasterizer,
		documentRepository: documentRepository,
		jobQueue:           jobQueue,
		logger:             logger,
		retryCount:         config.GetIntOrDefault(ConfigKeyGenerateRetryCount, 3),
		temperature:        config.GetFloatOrDefault(ConfigKeyGenerateTemperature, 0.8),
		temperatureStep:    config.GetFloatOrDefault(ConfigKeyGenerateTemperatureStep, 0.05),
	}
}

// Generate produces a drawing for the given caption. The returned document is the best candidate found:
// preferably one with visible content, otherwise one which at least compiled. An error is returned only
// when no candidate compiled at all.
func (g *GenerationService) Generate(ctx context.Context, caption string) (*TikzDocument, error) {
	return g.GenerateWithOptions(ctx, caption, DefaultGenerateOptions)
}

func (g *GenerationService) GenerateWithOptions(ctx context.Context, caption string, options GenerateOptions) (*TikzDocument, error) {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return nil, fmt.Errorf("%w: empty caption", ErrFailedToGenerate)
	}
	prompt := g.languageModel.PromptFormatter().FormatPrompt(caption)
	temperature := options.Temperature
	if temperature == 0.0 {
		temperature = g.temperature
	}
	var compiledFallback, rawFallback *TikzDocument
	for i := 0; i < g.retryCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		completeOptions := DefaultCompleteOptions.
			WithTemperature(temperature).
			WithOnToken(options.OnToken)
		response, err := g.languageModel.Complete(prompt, completeOptions)
		if err != nil {
			return nil, err
		}
		// See the comment to ConfigKeyGenerateTemperatureStep: resampling at the exact same temperature
		// tends to reproduce the exact same broken candidate.
		temperature += g.temperatureStep
		code := g.languageModel.ResponseCleaner().CleanResponse(CleanOptions{
			Prompt:   prompt,
			Response: response,
		})
		if code == "" {
			continue
		}
		if err := g.sanitizer.SanitizeCode(code); err != nil {
			g.logger.Log(fmt.Sprintf("rejected candidate for caption \"%s\": %s\n", caption, err.Error()))
			continue
		}
		result, err := g.compiler.Compile(ctx, code)
		if err != nil {
			g.logger.Log(fmt.Sprintf("failed to compile candidate for caption \"%s\": %s\n", caption, err.Error()))
			continue
		}
		document := NewTikzDocument(caption, code, result, g.rasterizer)
		if !document.IsCompiled() {
			if rawFallback == nil {
				rawFallback = document
			}
			continue
		}
		g.storeDocument(document)
		if document.HasContent() {
			return document, nil
		}
		if compiledFallback == nil {
			compiledFallback = document
		}
	}
	if compiledFallback != nil {
		return compiledFallback, nil
	}
	if rawFallback != nil {
		return rawFallback, nil
	}
	return nil, ErrFailedToGenerate
}

// History returns previously generated documents from the repository.
func (g *GenerationService) History(latestCount int) ([]*TikzDocument, error) {
	return g.documentRepository.Find(DocumentFilter{LatestCount: latestCount})
}

// ClearHistory removes all previously generated documents from the repository.
func (g *GenerationService) ClearHistory() error {
	return g.documentRepository.RemoveAll()
}

// Stored asynchronously so that a slow disk doesn't block the response to the user.
func (g *GenerationService) storeDocument(document *TikzDocument) {
	g.jobQueue.Enqueue(func() error {
		return g.documentRepository.Store(document)
	})
}
