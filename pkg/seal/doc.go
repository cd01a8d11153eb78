// Package seal implements streaming authenticated encryption over byte
// streams of unbounded length, without buffering the whole payload.
//
// The wire shape is
//
//	header || ciphertext || tag(32)
//
// where the header is authenticated but never encrypted, the ciphertext is
// produced chunk by chunk under a counter-mode cipher (AES-CTR by default),
// and the trailing 32-byte tag is a keyed digest over
// MAC key || header || ciphertext (SHA3-256 by default).
//
// Sealer encrypts: it emits the header immediately, then ciphertext as
// plaintext is written, then the tag on Close. Unsealer decrypts: it
// withholds a bounded lookahead of ciphertext so the trailing tag can be
// isolated without knowing how the transport fragments the stream, even when
// the tag bytes straddle two fragments.
//
// Unsealer releases plaintext before the tag has been verified; only Close
// confirms authenticity. Consumers must treat all output as provisional and
// discard it if Close returns ErrAuthentication.
//
// Both transforms are single-use, single-pass and not safe for concurrent
// use. The cipher and digest primitives are injected capabilities, so tests
// can substitute deterministic fakes.
package seal
