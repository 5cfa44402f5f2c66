// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNilConfig is returned by New without a configuration.
	ErrNilConfig = errors.New("pipeline: nil config")

	// ErrNoEmbeddings indicates a Checkpoint without points.
	ErrNoEmbeddings = errors.New("pipeline: checkpoint has no embeddings")

	// ErrCheckpointFailed wraps every per-checkpoint failure reported by Run.
	ErrCheckpointFailed = errors.New("pipeline: checkpoint failed")
)

// pipelineErrorf wraps err with an operation tag.
func pipelineErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
