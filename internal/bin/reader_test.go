// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package bin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperFunctions tests the fixed-width readers
func TestHelperFunctions(t *testing.T) {
	data := []byte{
		0x01,       // byte
		0x23, 0x45, // uint16 (little-endian: 0x4523 = 17699)
		0x67, 0x89, 0xAB, 0xCD, // uint32 (little-endian: 0xCDAB8967)
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // uint64
	}

	b, offset, err := ReadByte(data, 0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 1, offset)

	u16, offset, err := ReadUint16(data, offset)
	assert.NoError(t, err)
	assert.Equal(t, uint16(17699), u16)
	assert.Equal(t, 3, offset)

	u32, offset, err := ReadUint32(data, offset)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xCDAB8967), u32)
	assert.Equal(t, 7, offset)

	u64, offset, err := ReadUint64(data, offset)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x0807060504030201), u64)
	assert.Equal(t, 15, offset)

	// Test out of bounds
	_, next, err := ReadByte(data, 100)
	assert.Equal(t, ErrOutOfBounds, err)
	assert.Equal(t, 100, next)

	_, next, err = ReadUint32(data, 13)
	assert.Equal(t, ErrOutOfBounds, err)
	assert.Equal(t, 13, next)

	_, _, err = ReadUint64(data, -1)
	assert.Equal(t, ErrOutOfBounds, err)
}

func TestReadFloat64(t *testing.T) {
	data := make([]byte, 8)
	bits := math.Float64bits(97.25)
	for i := range data {
		data[i] = byte(bits >> (8 * i))
	}

	v, next, err := ReadFloat64(data, 0)
	require.NoError(t, err)
	assert.Equal(t, 97.25, v)
	assert.Equal(t, 8, next)

	_, _, err = ReadFloat64(data[:7], 0)
	assert.Equal(t, ErrOutOfBounds, err)
}

func TestReadBytes(t *testing.T) {
	data := []byte("Hello, world")

	out, next, err := ReadBytes(data, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), out)
	assert.Equal(t, 12, next)

	_, _, err = ReadBytes(data, 7, 6)
	assert.Equal(t, ErrOutOfBounds, err)

	_, _, err = ReadBytes(data, 0, -1)
	assert.Equal(t, ErrOutOfBounds, err)
}

func TestReadULEB128(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  uint64
		next  int
	}{
		{"zero", []byte{0x00}, 0, 1},
		{"single", []byte{0x7f}, 127, 1},
		{"two bytes", []byte{0x80, 0x01}, 128, 2},
		{"wikipedia", []byte{0xE5, 0x8E, 0x26}, 624485, 3},
		{"trailing data", []byte{0x20, 0xff, 0xff}, 32, 1},
		{"max", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, math.MaxUint64, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, next, err := ReadULEB128(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.next, next)
		})
	}

	t.Run("truncated", func(t *testing.T) {
		_, next, err := ReadULEB128([]byte{0x80, 0x80}, 0)
		assert.Equal(t, ErrOutOfBounds, err)
		assert.Equal(t, 0, next)
	})

	t.Run("overflow", func(t *testing.T) {
		_, _, err := ReadULEB128([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}, 0)
		assert.Equal(t, ErrOverflow, err)
	})
}

func TestReadString(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		data := []byte{StringPresent, 0x05, 'p', 'e', 'p', 'p', 'y', 0xAA}
		s, next, err := ReadString(data, 0)
		require.NoError(t, err)
		assert.Equal(t, "peppy", s)
		assert.Equal(t, 7, next)
	})

	t.Run("absent", func(t *testing.T) {
		s, next, err := ReadString([]byte{0x00, 0x0b}, 0)
		require.NoError(t, err)
		assert.Empty(t, s)
		assert.Equal(t, 1, next)
	})

	t.Run("unicode", func(t *testing.T) {
		text := "ピアノ"
		data := append([]byte{StringPresent, byte(len(text))}, text...)
		s, _, err := ReadString(data, 0)
		require.NoError(t, err)
		assert.Equal(t, text, s)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		_, next, err := ReadString([]byte{StringPresent, 0x02, 0xff, 0xfe}, 0)
		assert.Equal(t, ErrInvalidUTF8, err)
		assert.Equal(t, 0, next)
	})

	t.Run("truncated body", func(t *testing.T) {
		_, _, err := ReadString([]byte{StringPresent, 0x10, 'a'}, 0)
		assert.Equal(t, ErrOutOfBounds, err)
	})

	t.Run("huge length", func(t *testing.T) {
		data := []byte{StringPresent, 0xff, 0xff, 0xff, 0xff, 0x0f}
		_, _, err := ReadString(data, 0)
		assert.Equal(t, ErrOutOfBounds, err)
	})

	t.Run("missing marker", func(t *testing.T) {
		_, _, err := ReadString(nil, 0)
		assert.Equal(t, ErrOutOfBounds, err)
	})
}
