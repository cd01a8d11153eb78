// Package chunker normalizes arbitrarily sized byte fragments into
// fixed-size chunks.
//
// A Chunker is a push-style transform: each Write delivers one fragment and
// completed chunks are handed to the emit callback as they fill up. Close
// ends the stream and emits whatever partial chunk remains, which may be
// empty. Every emitted chunk except the final one has exactly the configured
// size, and every emitted chunk is an independent copy that the caller may
// retain.
package chunker

import (
	"errors"
	"fmt"
)

// DefaultChunkSize is used by consumers that do not configure their own size.
const DefaultChunkSize = 128 * 1024

// ErrClosed is returned by Write after the stream has been closed.
var ErrClosed = errors.New("chunker: write after close")

// Chunker accumulates fragments into fixed-size chunks.
type Chunker struct {
	emit   func([]byte) error
	buf    []byte
	fill   int
	skip   int
	closed bool
}

// New creates a Chunker that emits chunks of chunkSize bytes. The first
// offset bytes of the stream are discarded before accumulation starts.
func New(chunkSize, offset int, emit func([]byte) error) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunker: chunk size must be positive, got %d", chunkSize)
	}

	if offset < 0 {
		return nil, fmt.Errorf("chunker: offset must be non-negative, got %d", offset)
	}

	if emit == nil {
		return nil, errors.New("chunker: emit callback must not be nil")
	}

	return &Chunker{
		emit: emit,
		buf:  make([]byte, chunkSize),
		skip: offset,
	}, nil
}

// Write delivers one fragment. A single fragment may complete zero, one, or
// many chunks; each completed chunk is passed to the emit callback before
// Write returns.
func (c *Chunker) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}

	total := len(p)

	if c.skip > 0 {
		if c.skip >= len(p) {
			c.skip -= len(p)

			return total, nil
		}

		p = p[c.skip:]
		c.skip = 0
	}

	for len(p) > 0 {
		n := copy(c.buf[c.fill:], p)
		c.fill += n
		p = p[n:]

		if c.fill < len(c.buf) {
			continue
		}

		chunk := make([]byte, len(c.buf))
		copy(chunk, c.buf)
		c.fill = 0

		if err := c.emit(chunk); err != nil {
			return total - len(p), err
		}
	}

	return total, nil
}

// Close ends the stream and emits the final partial chunk. The final chunk
// is emitted even when it is empty, so downstream transforms always observe
// end of stream as one last short chunk.
func (c *Chunker) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true

	chunk := make([]byte, c.fill)
	copy(chunk, c.buf[:c.fill])
	c.fill = 0

	return c.emit(chunk)
}
