// Package codec decompresses the embedded payloads found in osu! files.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// Compression identifies the compression scheme of a payload
type Compression byte

const (
	// None means the payload is stored as-is
	None Compression = iota

	// LZMA is the LZMA-alone container (13-byte header followed by the raw stream)
	LZMA
)

// DefaultLimit is the default upper bound on decompressed output, in bytes
const DefaultLimit = 64 << 20

// Errors
var (
	ErrLimitExceeded = errors.New("decompressed data exceeds limit")
	ErrUnknown       = errors.New("unknown compression")
)

// String returns the name of the compression scheme
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZMA:
		return "lzma"
	default:
		return fmt.Sprintf("compression(%d)", byte(c))
	}
}

// Decode decompresses data according to the compression scheme. At most limit bytes
// are produced; a payload expanding past that fails with ErrLimitExceeded. A limit
// of zero or less selects DefaultLimit.
func Decode(data []byte, compression Compression, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	switch compression {
	case None:
		if len(data) > limit {
			return nil, ErrLimitExceeded
		}
		return data, nil
	case LZMA:
		return decodeLZMA(data, limit)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknown, compression)
	}
}

// decodeLZMA decompresses an LZMA-alone stream
func decodeLZMA(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	reader, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create lzma reader: %w", err)
	}

	// Read one byte past the limit so an oversized stream can be told apart
	out, err := io.ReadAll(io.LimitReader(reader, int64(limit)+1))
	switch {
	case err != nil:
		return nil, fmt.Errorf("failed to decompress lzma stream: %w", err)
	case len(out) > limit:
		return nil, ErrLimitExceeded
	default:
		return out, nil
	}
}

// Encode compresses data with the given scheme. It is the inverse of Decode and is
// used to produce fixtures.
func Encode(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return data, nil
	case LZMA:
		var buffer bytes.Buffer
		writer, err := lzma.NewWriter(&buffer)
		if err != nil {
			return nil, fmt.Errorf("failed to create lzma writer: %w", err)
		}

		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("failed to compress lzma stream: %w", err)
		}

		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to finish lzma stream: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknown, compression)
	}
}
