package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Cipher is a counter-mode cipher bound to a key. Both directions are
// length-preserving, deterministic functions of the key, the counter encoded
// in the IV, and the data. dst and src have equal length and may overlap
// only if they are identical.
type Cipher interface {
	Encrypt(iv, dst, src []byte) error
	Decrypt(iv, dst, src []byte) error
}

// CipherProvider builds a Cipher from a key. It is called once at
// construction of a transform.
type CipherProvider func(key []byte) (Cipher, error)

// DigestProvider returns a fresh incremental keyed-digest accumulator. The
// digest is order-sensitive and must produce at least TagSize bytes; the tag
// is its first TagSize bytes.
type DigestProvider func() (hash.Hash, error)

// AESCTR is the default CipherProvider: AES-256 in counter mode, with the
// block counter carried in the low 8 bytes of the IV.
func AESCTR(key []byte) (Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}

	return ctrCipher{block: block}, nil
}

// SHA3Digest is the default DigestProvider. SHA3 is safe as a prefix MAC,
// so the key is absorbed as ordinary leading input.
func SHA3Digest() (hash.Hash, error) {
	return sha3.New256(), nil
}

type ctrCipher struct {
	block cipher.Block
}

func (c ctrCipher) Encrypt(iv, dst, src []byte) error {
	cipher.NewCTR(c.block, iv).XORKeyStream(dst, src)

	return nil
}

func (c ctrCipher) Decrypt(iv, dst, src []byte) error {
	cipher.NewCTR(c.block, iv).XORKeyStream(dst, src)

	return nil
}
