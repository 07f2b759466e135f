package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNone(t *testing.T) {
	data := []byte("0|256|192|0,")

	out, err := Decode(data, None, 0)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	_, err = Decode(data, None, 4)
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestDecodeLZMA(t *testing.T) {
	frames := []byte("-12345|0|0|0,0|256|-500|0,16|255.5|191.25|1,")

	compressed, err := Encode(frames, LZMA)
	require.NoError(t, err)
	assert.NotEqual(t, frames, compressed)

	t.Run("round trip", func(t *testing.T) {
		out, err := Decode(compressed, LZMA, 0)
		require.NoError(t, err)
		assert.Equal(t, frames, out)
	})

	t.Run("exact limit", func(t *testing.T) {
		out, err := Decode(compressed, LZMA, len(frames))
		require.NoError(t, err)
		assert.Equal(t, frames, out)
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := Decode(compressed, LZMA, len(frames)-1)
		assert.ErrorIs(t, err, ErrLimitExceeded)
	})

	t.Run("empty", func(t *testing.T) {
		out, err := Decode(nil, LZMA, 0)
		assert.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("corrupt header", func(t *testing.T) {
		_, err := Decode([]byte{0xff, 0xff, 0xff}, LZMA, 0)
		assert.Error(t, err)
	})
}

func TestDecodeLimitsExpansion(t *testing.T) {
	large := bytes.Repeat([]byte("0|0|0|0,"), 64<<10)
	compressed, err := Encode(large, LZMA)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(large)/10)

	_, err = Decode(compressed, LZMA, 1024)
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestUnknownCompression(t *testing.T) {
	_, err := Decode([]byte{1}, Compression(9), 0)
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = Encode([]byte{1}, Compression(9))
	assert.ErrorIs(t, err, ErrUnknown)

	assert.Equal(t, "lzma", LZMA.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "compression(9)", Compression(9).String())
}
