package content

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Encoding
	}{
		{"utf8", "utf8", UTF8},
		{"utf-8 alias", "utf-8", UTF8},
		{"empty defaults to utf8", "", UTF8},
		{"case insensitive", "UTF-8", UTF8},
		{"base64", "base64", Base64},
		{"base64 upper", "Base64", Base64},
		{"binary", "binary", Binary},
		{"unknown passes through", "latin1", Encoding("latin1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEncoding(tt.in))
		})
	}
}

func TestUTF8RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"héllo wörld",
		"日本語のテキスト",
		"emoji 🎉 and more",
		"line\nbreaks\tand tabs",
	}

	for _, s := range inputs {
		buf, err := FromText(s, UTF8)
		require.NoError(t, err)
		assert.Equal(t, len([]byte(s)), buf.Len())
		assert.Equal(t, s, buf.Decode(UTF8))
	}
}

func TestBase64RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xde, 0xad, 0xbe, 0xef},
		[]byte("arbitrary payload bytes"),
	}

	for _, raw := range inputs {
		b64 := base64.StdEncoding.EncodeToString(raw)

		buf, err := FromText(b64, Base64)
		require.NoError(t, err)
		assert.Equal(t, raw, append([]byte{}, buf.Bytes()...))
		assert.Equal(t, b64, buf.Decode(Base64))
	}
}

func TestFromTextInvalidBase64(t *testing.T) {
	_, err := FromText("not!!valid@@base64", Base64)
	require.Error(t, err)
}

func TestDecodeUnknownEncodingFallsBackToUTF8(t *testing.T) {
	buf, err := FromText("plain text", UTF8)
	require.NoError(t, err)

	// Decoding never fails; unrecognized names degrade to UTF-8.
	assert.Equal(t, "plain text", buf.Decode(Encoding("latin1")))
	assert.Equal(t, "plain text", buf.Decode(Binary))
}

func TestFromBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	buf := FromBytes(src)

	src[0] = 99
	assert.Equal(t, byte(1), buf.At(0), "buffer must own its bytes")
	assert.Equal(t, 3, buf.Len())
}

func TestFromValues(t *testing.T) {
	buf := FromValues([]int{72, 105, 256 + 33})
	assert.Equal(t, []byte{'H', 'i', '!'}, buf.Bytes())

	wide := FromValues([]uint16{0x0141, 0x42})
	assert.Equal(t, []byte{0x41, 0x42}, wide.Bytes(), "values truncate to low 8 bits")
}

func TestConcat(t *testing.T) {
	a, err := FromText("ab", UTF8)
	require.NoError(t, err)
	b, err := FromText("cde", UTF8)
	require.NoError(t, err)

	joined := Concat(a, nil, b)
	assert.Equal(t, a.Len()+b.Len(), joined.Len())
	assert.Equal(t, "abcde", joined.Decode(UTF8))

	assert.Equal(t, 0, Concat().Len())
}

func TestZeroFilledBufferOffsets(t *testing.T) {
	const n = 64
	buf := New(n)
	require.Equal(t, n, buf.Len())

	for i := 0; i < n; i++ {
		require.Equal(t, byte(0), buf.At(i))
	}

	offsets := map[int]byte{0: 0xff, 7: 0x7f, 31: 0x01, 63: 0xee}
	for i, v := range offsets {
		buf.Set(i, v)
	}

	for i := 0; i < n; i++ {
		if want, ok := offsets[i]; ok {
			assert.Equal(t, want, buf.At(i), "offset %d", i)
		} else {
			assert.Equal(t, byte(0), buf.At(i), "offset %d", i)
		}
	}
}

func TestNilBufferIsEmpty(t *testing.T) {
	var buf *Buffer
	assert.Equal(t, 0, buf.Len())
	assert.Nil(t, buf.Bytes())
	assert.Equal(t, "", buf.Decode(UTF8))
}
