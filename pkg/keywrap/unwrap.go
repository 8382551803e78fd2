package keywrap

import (
	"crypto/aes"
	"crypto/subtle"
	"fmt"
)

// Unwrap recovers the key wrapped by Wrap (RFC 3394 section 2.2.2) and
// verifies its integrity. The schedule is the exact mirror of Wrap run in
// reverse: descending rounds and indexes, with the step counter XORed into
// the integrity register before each block is formed rather than after the
// split. On any mismatch of the final integrity register (wrong KEK,
// corrupted ciphertext, tampering) it returns ErrIntegrityCheckFailed and no
// key material.
func Unwrap(kek, wrappedKey []byte) ([]byte, error) {
	if err := validate(kek, wrappedKey, chunkSize); err != nil {
		return nil, err
	}
	if len(wrappedKey) < 2*chunkSize {
		return nil, fmt.Errorf(
			"%w: wrapped key of %d bytes carries no key data",
			ErrInvalidDataLength,
			len(wrappedKey),
		)
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("aes cipher init failed: %w", err)
	}

	n := len(wrappedKey)/chunkSize - 1

	a := make([]byte, chunkSize)
	copy(a, wrappedKey[:chunkSize])
	registers := make([]byte, n*chunkSize)
	copy(registers, wrappedKey[chunkSize:])

	var buf [aes.BlockSize]byte
	defer zeroize(buf[:])

	for j := 5; j >= 0; j-- {
		for i := n - 1; i >= 0; i-- {
			t := n*j + i + 1
			a[chunkSize-1] ^= byte(t)

			r := registers[i*chunkSize : (i+1)*chunkSize]

			// B = AES-1(K, (A ^ t) | R[i]); A = MSB(B); R[i] = LSB(B).
			copy(buf[:chunkSize], a)
			copy(buf[chunkSize:], r)
			block.Decrypt(buf[:], buf[:])
			copy(a, msb(chunkSize, buf[:]))
			copy(r, lsb(chunkSize, buf[:]))
		}
	}

	if subtle.ConstantTimeCompare(a, integrityIV[:]) != 1 {
		zeroize(registers)
		zeroize(a)

		return nil, ErrIntegrityCheckFailed
	}

	return registers, nil
}
