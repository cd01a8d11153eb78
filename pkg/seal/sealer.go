package seal

import (
	"fmt"
	"hash"
	"io"

	"github.com/encryption4all/goseal/pkg/chunker"
)

// Sealer is the encrypting transform. Construction emits the header; Write
// accepts plaintext fragments of any size; Close emits the trailing tag.
type Sealer struct {
	w      io.Writer
	in     *chunker.Chunker
	cipher Cipher
	digest hash.Hash
	iv     []byte
	buf    []byte
	closed bool
	err    error
}

// NewSealer validates cfg, primes the digest with the MAC key and the
// header, and writes the header to w as the first output segment.
func NewSealer(w io.Writer, cfg Config) (*Sealer, error) {
	ciph, digest, iv, err := cfg.build()
	if err != nil {
		return nil, err
	}

	s := &Sealer{
		w:      w,
		cipher: ciph,
		digest: digest,
		iv:     iv,
		buf:    make([]byte, cfg.chunkSize()),
	}

	s.in, err = chunker.New(cfg.chunkSize(), cfg.Offset, s.seal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	if _, err := w.Write(cfg.Header); err != nil {
		return nil, fmt.Errorf("seal: writing header: %w", err)
	}

	return s, nil
}

// Write feeds plaintext into the transform. Ciphertext for every completed
// chunk is written to the underlying writer before Write returns.
func (s *Sealer) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}

	if s.closed {
		return 0, errClosed
	}

	n, err := s.in.Write(p)
	if err != nil {
		s.err = err
	}

	return n, err
}

// Close flushes the final partial chunk and emits the tag. The Sealer is
// single-use; Close reports any earlier terminal error again.
func (s *Sealer) Close() error {
	if s.closed {
		return s.err
	}

	s.closed = true

	if s.err != nil {
		return s.err
	}

	if err := s.in.Close(); err != nil {
		s.err = err

		return err
	}

	sum := s.digest.Sum(nil)
	if _, err := s.w.Write(sum[:TagSize]); err != nil {
		s.err = fmt.Errorf("seal: writing tag: %w", err)

		return s.err
	}

	return nil
}

// seal processes one chunk: encrypt at the current IV, absorb the ciphertext
// into the digest, emit it, then advance the counter by the blocks consumed.
func (s *Sealer) seal(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}

	ct := s.buf[:len(chunk)]
	if err := s.cipher.Encrypt(s.iv, ct, chunk); err != nil {
		return fmt.Errorf("%w: encrypting chunk: %w", ErrPrimitive, err)
	}

	s.digest.Write(ct)

	if _, err := s.w.Write(ct); err != nil {
		return fmt.Errorf("seal: writing ciphertext: %w", err)
	}

	return advanceIV(s.iv, blocksFor(len(chunk)))
}
