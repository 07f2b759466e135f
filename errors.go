// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package osu

import (
	"strconv"

	"github.com/kelindar/osu-sdk/internal/bin"
	"github.com/kelindar/osu-sdk/internal/codec"
	"github.com/pkg/errors"
)

// Every decode failure wraps exactly one of the following, so callers can use
// errors.Is to tell them apart while the message names the failing field.
var (
	// ErrTruncated is returned when fewer bytes or tokens are available than required
	ErrTruncated = errors.New("truncated input")
	// ErrInvalidEncoding is returned for malformed UTF-8, unknown codes or out-of-mask bits
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrMalformedNumber is returned when a token does not parse as the expected number
	ErrMalformedNumber = errors.New("malformed number")
	// ErrStructure is returned when a record is missing required parts or is geometrically impossible
	ErrStructure = errors.New("structural mismatch")
)

// ErrBeatmapNotFound is returned when no beatmap in the directory matches a replay
var ErrBeatmapNotFound = errors.New("beatmap not found")

// readError maps a low-level read error into the taxonomy, naming the field
func readError(err error, field string) error {
	switch {
	case errors.Is(err, bin.ErrOutOfBounds):
		return errors.Wrapf(ErrTruncated, "read %s", field)
	case errors.Is(err, bin.ErrInvalidUTF8), errors.Is(err, bin.ErrOverflow):
		return errors.Wrapf(ErrInvalidEncoding, "read %s", field)
	case errors.Is(err, codec.ErrLimitExceeded):
		return errors.Wrapf(ErrInvalidEncoding, "read %s: frame data exceeds limit", field)
	default:
		return errors.Wrapf(ErrInvalidEncoding, "read %s: %v", field, err)
	}
}

// missing reports a token that should have been present
func missing(field string) error {
	return errors.Wrapf(ErrTruncated, "missing %s", field)
}

// invalid reports an unknown code or out-of-mask bit pattern
func invalid(field string, value any) error {
	return errors.Wrapf(ErrInvalidEncoding, "%s %v", field, value)
}

// parseUint parses an unsigned integer of the given bit size
func parseUint(field, token string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(token, 10, bits)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "%s %q", field, token)
	}
	return v, nil
}

// parseInt parses a signed integer of the given bit size
func parseInt(field, token string, bits int) (int64, error) {
	v, err := strconv.ParseInt(token, 10, bits)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "%s %q", field, token)
	}
	return v, nil
}

// parseFloat parses a decimal number of the given bit size
func parseFloat(field, token string, bits int) (float64, error) {
	v, err := strconv.ParseFloat(token, bits)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "%s %q", field, token)
	}
	return v, nil
}

// parseBool parses the "0"/"1" flags used by beatmap properties
func parseBool(field, token string) (bool, error) {
	v, err := parseUint(field, token, 8)
	return v != 0, err
}
