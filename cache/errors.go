// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("cache: store is closed")

	// ErrInvalidKey indicates a Key without checkpoint or artifact.
	ErrInvalidKey = errors.New("cache: key needs checkpoint and artifact")

	// ErrCorrupt indicates a stored value that does not decode to float64s.
	ErrCorrupt = errors.New("cache: corrupt value")
)

// cacheErrorf wraps err with an operation tag.
func cacheErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
