// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/binary"
	"math"
)

const floatSize = 8

// EncodeFloats serializes v as little-endian IEEE-754 doubles.
func EncodeFloats(v []float64) []byte {
	out := make([]byte, 0, len(v)*floatSize)
	for _, x := range v {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(x))
	}
	return out
}

// DecodeFloats is the inverse of EncodeFloats.
//
// Errors: ErrCorrupt when len(b) is not a multiple of 8.
func DecodeFloats(b []byte) ([]float64, error) {
	if len(b)%floatSize != 0 {
		return nil, ErrCorrupt
	}
	out := make([]float64, len(b)/floatSize)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*floatSize:]))
	}
	return out, nil
}
