// SPDX-License-Identifier: MIT

package mutualinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrLabelMismatch is returned when the label count differs from the
	// number of points.
	ErrLabelMismatch = errors.New("mutualinfo: labels do not match points")

	// ErrEmptyPartition is returned for empty label vectors.
	ErrEmptyPartition = errors.New("mutualinfo: empty partition")

	// ErrNoInputs is returned by the input estimators when neither inputs nor
	// cached clusters are given.
	ErrNoInputs = errors.New("mutualinfo: no inputs to cluster")
)

func miErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
