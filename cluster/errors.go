// SPDX-License-Identifier: MIT

package cluster

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for zero rows or zero columns.
	ErrEmptyInput = errors.New("cluster: empty input")

	// ErrInvalidK is returned when k < 1 or k > number of rows.
	ErrInvalidK = errors.New("cluster: invalid cluster count")

	// ErrDimensionMismatch is returned when points do not match a model.
	ErrDimensionMismatch = errors.New("cluster: dimension mismatch")
)

func clusterErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
