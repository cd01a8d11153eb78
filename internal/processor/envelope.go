package processor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/encryption4all/goseal/pkg/seal"
)

// The envelope is the on-disk container and doubles as the authenticated
// header of the sealing transform:
//
//	magic "GSL" | version | flags | IV(16)
//
// The IV carries an 8-byte random nonce and a zero initial block counter.
const (
	envelopeMagic   = "GSL"
	envelopeVersion = byte(1)

	envelopeFlagExec = 0x01

	envelopeSize = len(envelopeMagic) + 2 + seal.IVSize
)

// ErrEnvelope indicates a missing or malformed envelope header.
var ErrEnvelope = errors.New("processor: invalid envelope")

func newEnvelope(iv []byte, executable bool) []byte {
	env := make([]byte, 0, envelopeSize)
	env = append(env, envelopeMagic...)
	env = append(env, envelopeVersion)

	var flags byte
	if executable {
		flags |= envelopeFlagExec
	}

	env = append(env, flags)
	env = append(env, iv...)

	return env
}

func parseEnvelope(env []byte) (iv []byte, executable bool, err error) {
	if len(env) != envelopeSize {
		return nil, false, fmt.Errorf("%w: header too short", ErrEnvelope)
	}

	if !bytes.Equal(env[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return nil, false, fmt.Errorf("%w: bad magic", ErrEnvelope)
	}

	if version := env[len(envelopeMagic)]; version != envelopeVersion {
		return nil, false, fmt.Errorf("%w: unsupported version %d", ErrEnvelope, version)
	}

	flags := env[len(envelopeMagic)+1]
	iv = env[len(envelopeMagic)+2:]

	return iv, flags&envelopeFlagExec != 0, nil
}
