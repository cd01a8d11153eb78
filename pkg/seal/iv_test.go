package seal

import (
	"errors"
	"math"
	"testing"
)

func TestBlocksFor(t *testing.T) {
	t.Parallel()

	cases := map[int]uint64{
		0:    0,
		1:    1,
		15:   1,
		16:   1,
		17:   2,
		4095: 256,
		4096: 256,
	}

	for n, want := range cases {
		if got := blocksFor(n); got != want {
			t.Errorf("blocksFor(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestAdvanceIV(t *testing.T) {
	t.Parallel()

	iv := make([]byte, IVSize)
	copy(iv, "nonce!!!")
	setIVCounter(iv, 40)

	if err := advanceIV(iv, 2); err != nil {
		t.Fatalf("advanceIV: %v", err)
	}

	if got := ivCounter(iv); got != 42 {
		t.Errorf("counter = %d, want 42", got)
	}

	if string(iv[:NonceSize]) != "nonce!!!" {
		t.Error("nonce portion mutated by counter advance")
	}
}

func TestAdvanceIVOverflow(t *testing.T) {
	t.Parallel()

	iv := make([]byte, IVSize)
	setIVCounter(iv, math.MaxUint64-1)

	if err := advanceIV(iv, 1); err != nil {
		t.Fatalf("advance to MaxUint64: %v", err)
	}

	if err := advanceIV(iv, 1); !errors.Is(err, ErrStreamTooLarge) {
		t.Fatalf("advance past MaxUint64 = %v, want ErrStreamTooLarge", err)
	}

	// A failed advance must leave the counter untouched.
	if got := ivCounter(iv); got != math.MaxUint64 {
		t.Errorf("counter = %d after failed advance, want MaxUint64", got)
	}
}
