// Package content provides the in-memory byte container used by the
// operation layer for encoding-aware reads and writes.
//
// A Buffer wraps a fixed-length byte sequence. Construction is
// encoding-aware (UTF-8 text or Base64 text), decoding is total:
// unrecognized encoding names silently degrade to UTF-8 rather than
// failing.
package content

import (
	"encoding/base64"
	"strings"

	"github.com/river0g/opfs-kit/errors"
	"golang.org/x/exp/constraints"
)

// Encoding names a text transformation between bytes and strings.
type Encoding string

const (
	// UTF8 is the default encoding: lossless standard Unicode bytes.
	UTF8 Encoding = "utf8"
	// Base64 treats text as standard Base64 representing raw bytes.
	Base64 Encoding = "base64"
	// Binary means no text transformation: raw bytes.
	Binary Encoding = "binary"
)

// ParseEncoding normalizes an encoding name. "utf-8" is accepted as an
// alias for UTF8 and matching is case-insensitive. Unrecognized names are
// returned as-is; Decode treats them as UTF-8, so parsing never fails.
func ParseEncoding(name string) Encoding {
	switch strings.ToLower(name) {
	case "utf8", "utf-8", "":
		return UTF8
	case "base64":
		return Base64
	case "binary":
		return Binary
	default:
		return Encoding(name)
	}
}

// Buffer is an immutable-length sequence of bytes with an attached decode
// operation. The length is fixed at construction; individual bytes may be
// set in place for byte-offset workloads.
type Buffer struct {
	data []byte
}

// New returns a zero-filled Buffer of length n.
func New(n int) *Buffer {
	return &Buffer{data: make([]byte, n)}
}

// FromText builds a Buffer from text under the given encoding.
//
// UTF8 (and unrecognized encodings) store the text's UTF-8 bytes. Base64
// decodes the text as standard Base64 into raw bytes; invalid Base64 input
// is an error.
func FromText(s string, enc Encoding) (*Buffer, error) {
	switch ParseEncoding(string(enc)) {
	case Base64:
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidInput, "invalid base64 text")
		}
		return &Buffer{data: raw}, nil
	default:
		return &Buffer{data: []byte(s)}, nil
	}
}

// FromBytes builds a Buffer by copying an existing byte sequence.
func FromBytes(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{data: data}
}

// FromValues builds a Buffer from an array-like sequence of numeric byte
// values. Each value is truncated to its low 8 bits.
func FromValues[T constraints.Integer](vals []T) *Buffer {
	data := make([]byte, len(vals))
	for i, v := range vals {
		data[i] = byte(v)
	}
	return &Buffer{data: data}
}

// Concat returns a Buffer whose bytes are the ordered concatenation of all
// inputs' bytes. Nil inputs contribute nothing.
func Concat(bufs ...*Buffer) *Buffer {
	total := 0
	for _, b := range bufs {
		total += b.Len()
	}
	data := make([]byte, 0, total)
	for _, b := range bufs {
		if b != nil {
			data = append(data, b.data...)
		}
	}
	return &Buffer{data: data}
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes returns the held bytes. The slice is shared with the Buffer;
// callers that need isolation should copy it.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// At returns the byte at index i.
func (b *Buffer) At(i int) byte {
	return b.data[i]
}

// Set stores v at index i. The buffer length never changes.
func (b *Buffer) Set(i int, v byte) {
	b.data[i] = v
}

// Decode returns the held bytes as text under the given encoding.
//
// Base64 encodes the bytes as standard Base64 text. Any other value,
// including unrecognized encoding names, decodes as UTF-8: decoding never
// fails, it silently degrades.
func (b *Buffer) Decode(enc Encoding) string {
	if b == nil {
		return ""
	}
	switch ParseEncoding(string(enc)) {
	case Base64:
		return base64.StdEncoding.EncodeToString(b.data)
	default:
		return string(b.data)
	}
}

// String implements fmt.Stringer with the UTF-8 decoding.
func (b *Buffer) String() string {
	return b.Decode(UTF8)
}
