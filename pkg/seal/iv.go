package seal

import (
	"encoding/binary"
	"math"
)

// The IV is NonceSize bytes of fixed nonce followed by a big-endian 64-bit
// block counter. The nonce portion never mutates; the counter advances by
// the number of cipher blocks consumed per chunk.

func ivCounter(iv []byte) uint64 {
	return binary.BigEndian.Uint64(iv[NonceSize:])
}

func setIVCounter(iv []byte, counter uint64) {
	binary.BigEndian.PutUint64(iv[NonceSize:], counter)
}

// blocksFor returns the number of 16-byte cipher blocks a chunk of n bytes
// consumes: ceil(n/16), independent of block alignment.
func blocksFor(n int) uint64 {
	return (uint64(n) + ctrBlockSize - 1) / ctrBlockSize
}

// advanceIV moves the block counter forward. A counter that would wrap past
// 2^64 blocks is a fatal error rather than a silent restart of the
// keystream.
func advanceIV(iv []byte, blocks uint64) error {
	counter := ivCounter(iv)
	if blocks > math.MaxUint64-counter {
		return ErrStreamTooLarge
	}

	setIVCounter(iv, counter+blocks)

	return nil
}
