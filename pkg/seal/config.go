package seal

import (
	"fmt"
	"hash"

	"github.com/encryption4all/goseal/pkg/chunker"
)

const (
	// KeySize is the required length of both the cipher key and the MAC key.
	KeySize = 32

	// IVSize is the required length of the IV: an 8-byte nonce followed by
	// an 8-byte big-endian block counter.
	IVSize = 16

	// NonceSize is the length of the fixed nonce portion of the IV.
	NonceSize = 8

	// TagSize is the length of the trailing authentication tag.
	TagSize = 32

	// DefaultChunkSize governs internal re-buffering only; it is not a wire
	// format parameter.
	DefaultChunkSize = chunker.DefaultChunkSize

	ctrBlockSize = 16
)

// Config carries the construction parameters shared by Sealer and Unsealer.
// All fixed-size parameters are validated eagerly, before any stream
// activity.
type Config struct {
	// CipherKey is the 32-byte key for the counter-mode cipher.
	CipherKey []byte

	// MACKey is the 32-byte key absorbed into the digest ahead of the header.
	MACKey []byte

	// IV is the 16-byte initial vector: 8-byte nonce || 8-byte big-endian
	// block counter. The initial counter value is honored as supplied.
	IV []byte

	// Header is authenticated but never encrypted. The Sealer emits it
	// verbatim as the first output; the Unsealer caller must supply the
	// identical value.
	Header []byte

	// ChunkSize is the re-buffering granularity. Zero selects
	// DefaultChunkSize.
	ChunkSize int

	// Offset is the number of leading bytes discarded from the input stream
	// before the transform sees it, typically zero. An Unsealer fed the full
	// wire stream can use Offset to skip the header bytes.
	Offset int

	// NewCipher and NewDigest inject the crypto capabilities. Nil selects
	// AESCTR and SHA3Digest.
	NewCipher CipherProvider
	NewDigest DigestProvider
}

func (c *Config) validate() error {
	if len(c.CipherKey) != KeySize {
		return fmt.Errorf("%w: cipher key must be %d bytes, got %d", ErrInvalidParameters, KeySize, len(c.CipherKey))
	}

	if len(c.MACKey) != KeySize {
		return fmt.Errorf("%w: MAC key must be %d bytes, got %d", ErrInvalidParameters, KeySize, len(c.MACKey))
	}

	if len(c.IV) != IVSize {
		return fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInvalidParameters, IVSize, len(c.IV))
	}

	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidParameters, c.ChunkSize)
	}

	if c.Offset < 0 {
		return fmt.Errorf("%w: offset must be non-negative, got %d", ErrInvalidParameters, c.Offset)
	}

	return nil
}

func (c *Config) chunkSize() int {
	if c.ChunkSize == 0 {
		return DefaultChunkSize
	}

	return c.ChunkSize
}

// build validates the configuration, initializes the injected primitives and
// primes the digest with the MAC key and the header. It returns the cipher,
// the primed digest and an owned copy of the IV.
func (c *Config) build() (Cipher, hash.Hash, []byte, error) {
	if err := c.validate(); err != nil {
		return nil, nil, nil, err
	}

	newCipher := c.NewCipher
	if newCipher == nil {
		newCipher = AESCTR
	}

	newDigest := c.NewDigest
	if newDigest == nil {
		newDigest = SHA3Digest
	}

	ciph, err := newCipher(c.CipherKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: initializing cipher: %w", ErrPrimitive, err)
	}

	digest, err := newDigest()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: initializing digest: %w", ErrPrimitive, err)
	}

	if digest.Size() < TagSize {
		return nil, nil, nil, fmt.Errorf("%w: digest output %d shorter than %d-byte tag",
			ErrInvalidParameters, digest.Size(), TagSize)
	}

	digest.Write(c.MACKey)
	digest.Write(c.Header)

	iv := make([]byte, IVSize)
	copy(iv, c.IV)

	return ciph, digest, iv, nil
}
