package keywrap

import (
	"fmt"
)

// chunkSize is the width of the 64-bit registers the algorithm chains over.
const chunkSize = 8

// integrityIV is the fixed initial value of the integrity register A (RFC 3394 section 2.2.3).
var integrityIV = [chunkSize]byte{0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6}

// validate checks the KEK and data lengths shared by Wrap and Unwrap.
// extra is the number of bytes the data may exceed the KEK by: 0 for wrap
// input, chunkSize for unwrap input, which carries the integrity block on
// top of the key material.
func validate(kek, data []byte, extra int) error {
	switch len(kek) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: got %d bytes", ErrInvalidKEKLength, len(kek))
	}

	if len(data) == 0 || len(data)%chunkSize != 0 {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidDataLength, len(data))
	}

	if len(data) > len(kek)+extra {
		return fmt.Errorf(
			"%w: %d bytes of data under a %d-byte KEK",
			ErrDataTooLarge,
			len(data),
			len(kek),
		)
	}

	// The step counter is folded into a single register byte. The length
	// policy above keeps it at 24 or below; this guard keeps the core honest
	// should that policy ever be relaxed.
	if n := len(data) / chunkSize; 6*n > 0xFF {
		return fmt.Errorf("%w: %d chunks overflow the step counter", ErrDataTooLarge, n)
	}

	return nil
}

// msb returns the k most significant (leading) bytes of b.
func msb(k int, b []byte) []byte {
	return b[:k]
}

// lsb returns the k least significant (trailing) bytes of b.
func lsb(k int, b []byte) []byte {
	return b[len(b)-k:]
}

// zeroize clears scratch material holding key bytes.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
