package keywrap

import (
	"crypto/aes"
	"fmt"
)

// Wrap encrypts plainKey under kek using the AES Key Wrap construction
// (RFC 3394 section 2.2.1). plainKey must be a positive multiple of 8 bytes
// no longer than the KEK; the result is 8 bytes longer than plainKey and
// carries the chained integrity value in its first 8 bytes. Wrap is
// deterministic and holds no state across calls: the AES key schedule is
// built fresh from kek on every invocation.
func Wrap(kek, plainKey []byte) ([]byte, error) {
	if err := validate(kek, plainKey, 0); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("aes cipher init failed: %w", err)
	}

	n := len(plainKey) / chunkSize

	// out holds A followed by R[0..n); the chaining mutates it in place.
	out := make([]byte, (n+1)*chunkSize)
	copy(out, integrityIV[:])
	copy(out[chunkSize:], plainKey)
	a := out[:chunkSize]

	var buf [aes.BlockSize]byte
	defer zeroize(buf[:])

	for j := 0; j <= 5; j++ {
		for i := 0; i < n; i++ {
			r := out[(i+1)*chunkSize : (i+2)*chunkSize]

			// B = AES(K, A | R[i]); A = MSB(B) ^ t; R[i] = LSB(B).
			copy(buf[:chunkSize], a)
			copy(buf[chunkSize:], r)
			block.Encrypt(buf[:], buf[:])
			copy(a, msb(chunkSize, buf[:]))
			copy(r, lsb(chunkSize, buf[:]))

			t := n*j + i + 1
			a[chunkSize-1] ^= byte(t)
		}
	}

	return out, nil
}
