// SPDX-License-Identifier: MIT
package backend_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diffentropy/backend"
)

func TestConfigureOnce(t *testing.T) {
	before := runtime.GOMAXPROCS(0)
	t.Cleanup(func() { runtime.GOMAXPROCS(before) })

	got, err := backend.Configure(backend.Config{Threads: 1})
	require.NoError(t, err)
	assert.Equal(t, backend.Applied{Threads: 1, BLAS: "gonum"}, got)
	assert.Equal(t, 1, runtime.GOMAXPROCS(0))

	// later calls keep the first configuration
	again, err := backend.Configure(backend.Config{Threads: 4})
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, runtime.GOMAXPROCS(0))
}
