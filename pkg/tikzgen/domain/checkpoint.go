package domain

import "errors"

var ErrCheckpointNotFound = errors.New("checkpoint not found")

// Checkpoint a set of released model weights resolved to a file on the local disk.
type Checkpoint struct {
	ModelName string
	Path      string
}

// CheckpointRepository resolves a model name to local weight files, fetching released weights
// if they are not cached yet.
type CheckpointRepository interface {
	Locate(modelName string) (*Checkpoint, error)
}
