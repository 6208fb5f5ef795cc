package huggingface

import (
	"fmt"
	"os"
	"path/filepath"

	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

const (
	// ConfigKeyCheckpointEndpoint the hub to download released weights from
	ConfigKeyCheckpointEndpoint = "checkpointEndpoint"
	// ConfigKeyCheckpointCacheDirectory where downloaded weights are kept between runs
	ConfigKeyCheckpointCacheDirectory = "checkpointCacheDirectory"
	// ConfigKeyCheckpointRepository overrides the hub repository for the configured model, which allows
	// pointing at private forks or locally converted weights
	ConfigKeyCheckpointRepository = "checkpointRepository"
	// ConfigKeyCheckpointWeightFileName the name of the weight file inside the hub repository
	ConfigKeyCheckpointWeightFileName = "checkpointWeightFileName"
	// ConfigKeyCheckpointOffline never touch the network; only already cached weights can be located
	ConfigKeyCheckpointOffline = "checkpointOffline"
)

// The released checkpoints this toolkit knows how to fetch, keyed by model name.
var releasedCheckpoints = map[string]string{
	"llama-7b":  "nllg/tikz-llama-7b",
	"llama-13b": "nllg/tikz-llama-13b",
	"clima-7b":  "nllg/tikz-clima-7b",
	"clima-13b": "nllg/tikz-clima-13b",
}

// CheckpointRepository resolves model names against a local cache directory first and downloads released
// weights from the hub on a cache miss. A cache hit never touches the network.
type CheckpointRepository struct {
	logger         common.Logger
	endpoint       string
	cacheDirectory string
	repository     string
	weightFileName string
	offline        bool
}

func NewCheckpointRepository(config *common.Config, logger common.Logger) *CheckpointRepository {
	return &CheckpointRepository{
		logger:         logger,
		endpoint:       config.GetStringOrDefault(ConfigKeyCheckpointEndpoint, "https://huggingface.co"),
		cacheDirectory: config.GetStringOrDefault(ConfigKeyCheckpointCacheDirectory, "checkpoints"),
		repository:     config.GetString(ConfigKeyCheckpointRepository),
		weightFileName: config.GetStringOrDefault(ConfigKeyCheckpointWeightFileName, "model.bin"),
		offline:        config.GetBoolOrDefault(ConfigKeyCheckpointOffline, false),
	}
}

func (c *CheckpointRepository) Locate(modelName string) (*domain.Checkpoint, error) {
	path := filepath.Join(c.cacheDirectory, modelName, c.weightFileName)
	if _, err := os.Stat(path); err == nil {
		return &domain.Checkpoint{ModelName: modelName, Path: path}, nil
	}
	if c.offline {
		return nil, fmt.Errorf("%w: %s is not cached and offline mode is on", domain.ErrCheckpointNotFound, modelName)
	}
	repository := c.repository
	if repository == "" {
		var ok bool
		repository, ok = releasedCheckpoints[modelName]
		if !ok {
			return nil, fmt.Errorf("%w: unknown model %s", domain.ErrCheckpointNotFound, modelName)
		}
	}
	url := fmt.Sprintf("%s/%s/resolve/main/%s", c.endpoint, repository, c.weightFileName)
	c.logger.Log(fmt.Sprintf("downloading checkpoint %s from %s (can take a while)\n", modelName, url))
	err := common.DownloadFile(url, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCheckpointNotFound, err.Error())
	}
	return &domain.Checkpoint{ModelName: modelName, Path: path}, nil
}
