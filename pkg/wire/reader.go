package wire

import (
	"errors"
	"io"
	"unicode/utf8"
)

// ErrInvalidEncoding reports a chunk that cannot be decoded as UTF-8.
// Callers treat it like a transport failure: the session is aborted.
var ErrInvalidEncoding = errors.New("wire: invalid UTF-8 in stream")

const readBufferSize = 4096

// ChunkReader decodes transport bytes into text chunks, emitting only
// complete UTF-8 sequences. A multi-byte rune split across two reads is
// held back until its tail arrives, so downstream code always sees valid
// text no matter how the transport fragments the stream.
type ChunkReader struct {
	r       io.Reader
	buf     []byte
	pending []byte
}

// NewChunkReader wraps a transport body.
func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{
		r:   r,
		buf: make([]byte, readBufferSize),
	}
}

// Next returns the next decoded text chunk. It returns io.EOF when the
// transport is exhausted and every buffered byte has been delivered, and
// ErrInvalidEncoding when the stream contains bytes that can never form
// a valid rune.
func (c *ChunkReader) Next() (string, error) {
	for {
		n, err := c.r.Read(c.buf)
		if n > 0 {
			c.pending = append(c.pending, c.buf[:n]...)
			text, decodeErr := c.takeComplete()
			if decodeErr != nil {
				return "", decodeErr
			}
			if text != "" {
				return text, nil
			}
			// Only a partial rune buffered so far, keep reading.
		}
		if err != nil {
			if err == io.EOF {
				if len(c.pending) > 0 {
					// Stream ended inside a multi-byte sequence.
					c.pending = nil
					return "", ErrInvalidEncoding
				}
				return "", io.EOF
			}
			return "", err
		}
	}
}

// takeComplete cuts the pending buffer at the last complete rune boundary
// and returns the decoded prefix. Bytes that cannot start or continue any
// valid sequence are an encoding error rather than a partial rune.
func (c *ChunkReader) takeComplete() (string, error) {
	valid := 0
	for valid < len(c.pending) {
		r, size := utf8.DecodeRune(c.pending[valid:])
		if r == utf8.RuneError && size <= 1 {
			if len(c.pending)-valid < utf8.UTFMax {
				// Possibly an incomplete tail, wait for more bytes.
				break
			}
			return "", ErrInvalidEncoding
		}
		valid += size
	}

	if valid == 0 {
		return "", nil
	}
	text := string(c.pending[:valid])
	c.pending = append(c.pending[:0], c.pending[valid:]...)
	return text, nil
}
