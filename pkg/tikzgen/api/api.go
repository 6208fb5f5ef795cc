package api

import (
	"context"
	"fmt"
	"strings"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/huggingface"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/juju"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/latex"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llms/clima"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llms/llama"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/llms/logging"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/sqlite"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/svg"
)

// See domain/config.go
const (
	ConfigKeyModelName = domain.ConfigKeyModelName
	ConfigKeyLogPath   = domain.ConfigKeyLogPath
	// ConfigKeyDocumentDatabasePath the sqlite database which keeps the history of generated documents
	ConfigKeyDocumentDatabasePath = "documentDatabasePath"
)

var modelFamilies = []string{"llama", "clima"}

// API is the entrypoint to the toolkit. It shouldn't contain any logic of its own; it glues all the
// components together and provides a public interface for domain.GenerationService.
// This API can be used in various contexts: a console tool, an HTTP server, an IRC bot etc.
type API interface {
	// Generate synthesizes TikZ code for the given caption, compiles it and returns the resulting document.
	Generate(caption string) (*domain.TikzDocument, error)
	// GenerateWithOptions is Generate with cancellation and explicit options (temperature, streaming callback).
	GenerateWithOptions(ctx context.Context, caption string, options domain.GenerateOptions) (*domain.TikzDocument, error)
	// ModelName the name of the checkpoint this instance generates with, for example "llama-7b".
	ModelName() string
	// History returns the most recently generated documents, newest first.
	History(latestCount int) ([]*domain.TikzDocument, error)
	// ClearHistory forgets all generated documents. Useful for debugging.
	ClearHistory() error
	// Stop waits for background work to finish. Call it before the process exits.
	Stop()
}

type api struct {
	generationService *domain.GenerationService
	jobQueue          *common.JobQueue
	modelName         string
}

func NewAPI(config *common.Config) (API, error) {
	logger := common.NewFileLogger(config.GetStringOrDefault(ConfigKeyLogPath, "log.txt"))
	modelName := config.GetStringOrDefault(ConfigKeyModelName, "llama-7b")
	family := modelFamily(modelName)
	if !common.IsStringInSlice(family, modelFamilies) {
		return nil, fmt.Errorf("unknown model family in model name \"%s\"", modelName)
	}
	checkpoint, err := huggingface.NewCheckpointRepository(config, logger).Locate(modelName)
	if err != nil {
		return nil, err
	}
	namedMutexAcquirer := juju.NewNamedMutexAcquirer()
	var languageModel domain.LanguageModel
	switch family {
	case "clima":
		languageModel = clima.NewLanguageModel(checkpoint, namedMutexAcquirer, config, logger)
	default:
		languageModel = llama.NewLanguageModel(checkpoint, namedMutexAcquirer, config, logger)
	}
	languageModel = logging.NewLanguageModelDecorator(languageModel, logger)
	db, err := gorm.Open(gormsqlite.Open(config.GetStringOrDefault(ConfigKeyDocumentDatabasePath, "documents.db")), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	documentRepository, err := sqlite.NewDocumentRepository(db)
	if err != nil {
		return nil, err
	}
	jobQueue := common.NewJobQueue(logger)
	generationService := domain.NewGenerationService(
		languageModel,
		domain.NewCodeSanitizer(),
		latex.NewCompiler(namedMutexAcquirer, config, logger),
		svg.NewRasterizer(),
		documentRepository,
		jobQueue,
		config,
		logger,
	)
	return &api{
		generationService: generationService,
		jobQueue:          jobQueue,
		modelName:         modelName,
	}, nil
}

func (a *api) Generate(caption string) (*domain.TikzDocument, error) {
	return a.generationService.Generate(context.Background(), caption)
}

func (a *api) GenerateWithOptions(ctx context.Context, caption string, options domain.GenerateOptions) (*domain.TikzDocument, error) {
	return a.generationService.GenerateWithOptions(ctx, caption, options)
}

func (a *api) ModelName() string {
	return a.modelName
}

func (a *api) History(latestCount int) ([]*domain.TikzDocument, error) {
	return a.generationService.History(latestCount)
}

func (a *api) ClearHistory() error {
	return a.generationService.ClearHistory()
}

func (a *api) Stop() {
	a.jobQueue.Stop()
}

// The model family is the part of the model name before the size suffix, e.g. "llama-7b" -> "llama".
func modelFamily(modelName string) string {
	if index := strings.Index(modelName, "-"); index != -1 {
		return modelName[:index]
	}
	return modelName
}
