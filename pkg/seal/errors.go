package seal

import "errors"

var (
	// ErrInvalidParameters is returned at construction when a fixed-size
	// parameter (key, IV) has the wrong length or a numeric parameter is out
	// of range. No stream activity has happened when it is reported.
	ErrInvalidParameters = errors.New("seal: invalid parameters")

	// ErrAuthentication is returned by Unsealer.Close when the recomputed
	// digest does not match the tag extracted from the stream. Plaintext
	// already emitted must be discarded.
	ErrAuthentication = errors.New("seal: authentication failed")

	// ErrMalformed is returned by Unsealer.Close when the ciphertext stream
	// is shorter than the trailing tag, before any decryption is attempted.
	ErrMalformed = errors.New("seal: malformed stream")

	// ErrStreamTooLarge is returned when the 64-bit block counter would wrap.
	ErrStreamTooLarge = errors.New("seal: stream exceeds counter capacity")

	// ErrPrimitive wraps failures reported by the injected cipher or digest.
	// Such failures are fatal for the stream; there is no partial recovery.
	ErrPrimitive = errors.New("seal: crypto primitive failure")

	errClosed = errors.New("seal: transform already closed")
)
