// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package bin provides little-endian primitive readers for the osu! binary formats.
// Every reader takes the buffer and the current offset and returns the decoded value
// together with the offset right after it.
package bin

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"
)

// StringPresent is the marker byte preceding a non-empty string.
const StringPresent = 0x0b

// Errors
var (
	ErrOutOfBounds = errors.New("read operation would exceed buffer bounds")
	ErrOverflow    = errors.New("variable-length integer overflows 64 bits")
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")
)

// ReadByte reads a single byte from data at the specified offset
func ReadByte(data []byte, offset int) (byte, int, error) {
	if offset < 0 || offset >= len(data) {
		return 0, offset, ErrOutOfBounds
	}
	return data[offset], offset + 1, nil
}

// ReadUint16 reads a uint16 from data at the specified offset
func ReadUint16(data []byte, offset int) (uint16, int, error) {
	if offset < 0 || offset+2 > len(data) {
		return 0, offset, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint16(data[offset:]), offset + 2, nil
}

// ReadUint32 reads a uint32 from data at the specified offset
func ReadUint32(data []byte, offset int) (uint32, int, error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, offset, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint32(data[offset:]), offset + 4, nil
}

// ReadUint64 reads a uint64 from data at the specified offset
func ReadUint64(data []byte, offset int) (uint64, int, error) {
	if offset < 0 || offset+8 > len(data) {
		return 0, offset, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint64(data[offset:]), offset + 8, nil
}

// ReadFloat64 reads 8 bytes and reinterprets them as an IEEE-754 double.
func ReadFloat64(data []byte, offset int) (float64, int, error) {
	bits, next, err := ReadUint64(data, offset)
	if err != nil {
		return 0, offset, err
	}
	return math.Float64frombits(bits), next, nil
}

// ReadBytes reads a slice of bytes from data at the specified offset. The returned
// slice aliases data.
func ReadBytes(data []byte, offset, count int) ([]byte, int, error) {
	if offset < 0 || count < 0 || offset+count > len(data) || offset+count < offset {
		return nil, offset, ErrOutOfBounds
	}
	return data[offset : offset+count], offset + count, nil
}

// ReadULEB128 reads an unsigned base-128 variable-length integer, least significant
// group first, continuation in the high bit.
func ReadULEB128(data []byte, offset int) (uint64, int, error) {
	var value uint64
	var shift uint
	for cursor := offset; ; cursor++ {
		if cursor < 0 || cursor >= len(data) {
			return 0, offset, ErrOutOfBounds
		}

		b := data[cursor]
		if shift >= 64 || (shift == 63 && b&0x7f > 1) {
			return 0, offset, ErrOverflow
		}

		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, cursor + 1, nil
		}
		shift += 7
	}
}

// ReadString reads an osu! string: a marker byte, and only when the marker is
// StringPresent, a ULEB128 length followed by that many UTF-8 bytes. Any other
// marker yields an empty string.
func ReadString(data []byte, offset int) (string, int, error) {
	marker, next, err := ReadByte(data, offset)
	if err != nil {
		return "", offset, err
	}

	if marker != StringPresent {
		return "", next, nil
	}

	length, next, err := ReadULEB128(data, next)
	if err != nil {
		return "", offset, err
	}

	if length > uint64(len(data)) {
		return "", offset, ErrOutOfBounds
	}

	raw, next, err := ReadBytes(data, next, int(length))
	if err != nil {
		return "", offset, err
	}

	if !utf8.Valid(raw) {
		return "", offset, ErrInvalidUTF8
	}

	return string(raw), next, nil
}
