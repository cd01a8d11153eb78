package seal

import (
	"crypto/hmac"
	"fmt"
	"hash"
	"io"

	"github.com/encryption4all/goseal/pkg/chunker"
)

// pendingChunk is ciphertext that may still overlap the trailing tag,
// together with the IV in effect when it arrived.
type pendingChunk struct {
	data []byte
	iv   []byte
}

// Unsealer is the decrypting transform. Write accepts ciphertext fragments
// of any size; verified plaintext is released to the underlying writer as
// soon as the arriving bytes prove it cannot overlap the trailing tag.
// Close extracts the tag, decrypts the remainder and verifies the digest.
//
// Plaintext reaches the writer before the tag is known. Output is
// provisional until Close returns nil.
type Unsealer struct {
	w      io.Writer
	in     *chunker.Chunker
	cipher Cipher
	digest hash.Hash
	iv     []byte

	// pending holds the lookahead: the oldest chunks whose trailing bytes
	// could still be tag bytes. For chunk sizes of at least TagSize this is
	// at most one undecided chunk plus the one that just arrived.
	pending []pendingChunk
	held    int

	buf    []byte
	closed bool
	err    error
}

// NewUnsealer validates cfg and primes the digest with the MAC key and the
// header. The header itself is not consumed from the stream: the caller
// supplies it out of band (or sets cfg.Offset to skip it in the input).
func NewUnsealer(w io.Writer, cfg Config) (*Unsealer, error) {
	ciph, digest, iv, err := cfg.build()
	if err != nil {
		return nil, err
	}

	u := &Unsealer{
		w:      w,
		cipher: ciph,
		digest: digest,
		iv:     iv,
		buf:    make([]byte, cfg.chunkSize()),
	}

	u.in, err = chunker.New(cfg.chunkSize(), cfg.Offset, u.take)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	return u, nil
}

// Write feeds ciphertext into the transform.
func (u *Unsealer) Write(p []byte) (int, error) {
	if u.err != nil {
		return 0, u.err
	}

	if u.closed {
		return 0, errClosed
	}

	n, err := u.in.Write(p)
	if err != nil {
		u.err = err
	}

	return n, err
}

// Close ends the stream, decrypts the withheld remainder and verifies the
// tag. It returns ErrMalformed when the stream is shorter than the tag and
// ErrAuthentication when the recomputed digest does not match.
func (u *Unsealer) Close() error {
	if u.closed {
		return u.err
	}

	u.closed = true

	if u.err != nil {
		return u.err
	}

	if err := u.in.Close(); err != nil {
		u.err = err

		return err
	}

	if err := u.finish(); err != nil {
		u.err = err

		return err
	}

	return nil
}

// take receives one ciphertext chunk from the re-chunker. The chunk joins
// the pending lookahead; a held chunk is released for authentication and
// decryption only once the bytes buffered behind it cover the full tag, so
// none of its own bytes can belong to the tag.
func (u *Unsealer) take(chunk []byte) error {
	iv := make([]byte, IVSize)
	copy(iv, u.iv)

	if err := advanceIV(u.iv, blocksFor(len(chunk))); err != nil {
		return err
	}

	u.pending = append(u.pending, pendingChunk{data: chunk, iv: iv})
	u.held += len(chunk)

	for len(u.pending) > 0 && u.held-len(u.pending[0].data) >= TagSize {
		head := u.pending[0]
		u.pending = u.pending[1:]
		u.held -= len(head.data)

		if err := u.open(head); err != nil {
			return err
		}
	}

	return nil
}

// open authenticates then decrypts a chunk known to hold no tag bytes. The
// digest absorbs the ciphertext before it is decrypted under the IV recorded
// when the chunk arrived.
func (u *Unsealer) open(p pendingChunk) error {
	if len(p.data) == 0 {
		return nil
	}

	u.digest.Write(p.data)

	pt := u.buf[:len(p.data)]
	if err := u.cipher.Decrypt(p.iv, pt, p.data); err != nil {
		return fmt.Errorf("%w: decrypting chunk: %w", ErrPrimitive, err)
	}

	if _, err := u.w.Write(pt); err != nil {
		return fmt.Errorf("seal: writing plaintext: %w", err)
	}

	return nil
}

// finish splits the pending lookahead into the ciphertext remainder and the
// trailing tag, which may straddle chunk boundaries. The remainder is
// decrypted and the recomputed digest compared against the extracted tag.
func (u *Unsealer) finish() error {
	if u.held < TagSize {
		return fmt.Errorf("%w: stream shorter than %d-byte tag", ErrMalformed, TagSize)
	}

	tag := make([]byte, 0, TagSize)
	remainder := u.held - TagSize

	for _, p := range u.pending {
		if remainder >= len(p.data) {
			remainder -= len(p.data)

			if err := u.open(p); err != nil {
				return err
			}

			continue
		}

		// The tag boundary falls inside this chunk: the leading bytes are
		// the last of the ciphertext, the rest belongs to the tag.
		tag = append(tag, p.data[remainder:]...)

		if remainder > 0 {
			if err := u.open(pendingChunk{data: p.data[:remainder], iv: p.iv}); err != nil {
				return err
			}
		}

		remainder = 0
	}

	u.pending = nil
	u.held = 0

	sum := u.digest.Sum(nil)
	if !hmac.Equal(sum[:TagSize], tag) {
		return ErrAuthentication
	}

	return nil
}
