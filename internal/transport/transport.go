// Package transport converts document bytes to and from the base64 text
// carried in JSON responses.
//
// Encoding is chunked: the input is processed in fixed-size blocks whose
// length is a multiple of 3, so each block encodes to a padding-free run of
// characters and the concatenation is byte-for-byte identical to standard
// base64 (RFC 4648, padded, non URL-safe).
package transport

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ChunkSize is the default number of input bytes encoded per block.
const ChunkSize = 3 << 13 // 24576

// ErrDecode indicates the input is not valid standard base64.
var ErrDecode = errors.New("invalid base64 payload")

// Encode returns the standard base64 encoding of buf.
func Encode(buf []byte) string {
	return EncodeChunked(buf, ChunkSize)
}

// EncodeChunked encodes buf in blocks of size bytes.
// size is rounded down to a multiple of 3, with a minimum of 3.
func EncodeChunked(buf []byte, size int) string {
	size -= size % 3
	if size < 3 {
		size = 3
	}

	var sb strings.Builder
	sb.Grow(base64.StdEncoding.EncodedLen(len(buf)))

	out := make([]byte, base64.StdEncoding.EncodedLen(min(size, len(buf))))
	for start := 0; start < len(buf); start += size {
		chunk := buf[start:min(start+size, len(buf))]
		n := base64.StdEncoding.EncodedLen(len(chunk))
		base64.StdEncoding.Encode(out[:n], chunk)
		sb.Write(out[:n])
	}
	return sb.String()
}

// Decode reverses Encode.
func Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}
