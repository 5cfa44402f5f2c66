// SPDX-License-Identifier: MIT

package extrema

import (
	"fmt"

	"github.com/katalvlaran/diffentropy/kernel"
)

// ErrConfiguration is kernel.ErrConfiguration: invalid counts or graphs too
// small for the requested number of extrema.
var ErrConfiguration = kernel.ErrConfiguration

func extremaErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func configErrorf(tag, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", tag, ErrConfiguration, fmt.Sprintf(format, args...))
}
