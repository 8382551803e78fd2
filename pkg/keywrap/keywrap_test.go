package keywrap_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid test hex %q: %v", s, err)
	}

	return b
}

// rfcVectors are the known-answer tests from RFC 3394 section 4.
var rfcVectors = []struct {
	name    string
	kek     string
	plain   string
	wrapped string
}{
	{
		name:    "128-bit data with 128-bit KEK",
		kek:     "000102030405060708090A0B0C0D0E0F",
		plain:   "00112233445566778899AABBCCDDEEFF",
		wrapped: "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5",
	},
	{
		name:    "128-bit data with 192-bit KEK",
		kek:     "000102030405060708090A0B0C0D0E0F1011121314151617",
		plain:   "00112233445566778899AABBCCDDEEFF",
		wrapped: "96778B25AE6CA435F92B5B97C050AED2468AB8A17AD84E5D",
	},
	{
		name:    "128-bit data with 256-bit KEK",
		kek:     "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
		plain:   "00112233445566778899AABBCCDDEEFF",
		wrapped: "64E8C3F9CE0F5BA263E9777905818A2A93C8191E7D6E8AE7",
	},
	{
		name:    "192-bit data with 192-bit KEK",
		kek:     "000102030405060708090A0B0C0D0E0F1011121314151617",
		plain:   "00112233445566778899AABBCCDDEEFF0001020304050607",
		wrapped: "031D33264E15D33268F24EC260743EDCE1C6C7DDEE725A936BA814915C6762D2",
	},
	{
		name:    "192-bit data with 256-bit KEK",
		kek:     "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
		plain:   "00112233445566778899AABBCCDDEEFF0001020304050607",
		wrapped: "A8F9BC1612C68B3FF6E6F4FBE30E71E4769C8B80A32CB8958CD5D17D6B254DA1",
	},
	{
		name:    "256-bit data with 256-bit KEK",
		kek:     "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
		plain:   "00112233445566778899AABBCCDDEEFF000102030405060708090A0B0C0D0E0F",
		wrapped: "28C9F404C4B810F4CBCCB35CFB87F8263F5786E2D80ED326CBC7F0E71A99F43BFB988B9B7A02DD21",
	},
}

// TestWrapKnownVectors verifies Wrap against the RFC 3394 known-answer vectors.
func TestWrapKnownVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range rfcVectors {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := keywrap.Wrap(mustHex(t, tc.kek), mustHex(t, tc.plain))
			if err != nil {
				t.Fatalf("Wrap failed: %v", err)
			}

			if want := mustHex(t, tc.wrapped); !bytes.Equal(got, want) {
				t.Errorf("wrapped mismatch:\n got %X\nwant %X", got, want)
			}
		})
	}
}

// TestUnwrapKnownVectors verifies Unwrap against the RFC 3394 known-answer vectors.
func TestUnwrapKnownVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range rfcVectors {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := keywrap.Unwrap(mustHex(t, tc.kek), mustHex(t, tc.wrapped))
			if err != nil {
				t.Fatalf("Unwrap failed: %v", err)
			}

			if want := mustHex(t, tc.plain); !bytes.Equal(got, want) {
				t.Errorf("plain mismatch:\n got %X\nwant %X", got, want)
			}
		})
	}
}

// TestWrapUnwrapRoundTrip checks the round-trip and length laws across every
// legal (KEK size, key size) combination.
func TestWrapUnwrapRoundTrip(t *testing.T) {
	t.Parallel()

	kekSizes := []int{16, 24, 32}
	for _, kekLen := range kekSizes {
		kek := make([]byte, kekLen)
		for i := range kek {
			kek[i] = byte(i * 7)
		}

		for keyLen := 8; keyLen <= kekLen; keyLen += 8 {
			plain := make([]byte, keyLen)
			for i := range plain {
				plain[i] = byte(0xA0 + i)
			}

			wrapped, err := keywrap.Wrap(kek, plain)
			if err != nil {
				t.Fatalf("Wrap(%d-byte KEK, %d-byte key) failed: %v", kekLen, keyLen, err)
			}
			if len(wrapped) != keyLen+8 {
				t.Errorf("wrapped length = %d, want %d", len(wrapped), keyLen+8)
			}

			recovered, err := keywrap.Unwrap(kek, wrapped)
			if err != nil {
				t.Fatalf("Unwrap(%d-byte KEK, %d-byte key) failed: %v", kekLen, keyLen, err)
			}
			if !bytes.Equal(recovered, plain) {
				t.Errorf("round trip mismatch: got %X, want %X", recovered, plain)
			}
		}
	}
}

// TestWrapDeterministic verifies that Wrap is a pure function of its inputs.
func TestWrapDeterministic(t *testing.T) {
	t.Parallel()

	kek := mustHex(t, "000102030405060708090A0B0C0D0E0F")
	plain := mustHex(t, "00112233445566778899AABBCCDDEEFF")

	first, err := keywrap.Wrap(kek, plain)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	second, err := keywrap.Wrap(kek, plain)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("Wrap not deterministic: %X vs %X", first, second)
	}
}

// TestUnwrapTamperDetection flips every bit of a valid wrapped key in turn and
// requires each corruption to fail the integrity check.
func TestUnwrapTamperDetection(t *testing.T) {
	t.Parallel()

	kek := mustHex(t, "000102030405060708090A0B0C0D0E0F")
	plain := mustHex(t, "00112233445566778899AABBCCDDEEFF")

	wrapped, err := keywrap.Wrap(kek, plain)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	for pos := range wrapped {
		for bit := 0; bit < 8; bit++ {
			tampered := make([]byte, len(wrapped))
			copy(tampered, wrapped)
			tampered[pos] ^= 1 << bit

			if _, err := keywrap.Unwrap(kek, tampered); !errors.Is(
				err,
				keywrap.ErrIntegrityCheckFailed,
			) {
				t.Fatalf("bit %d of byte %d flipped: got err=%v, want integrity failure",
					bit, pos, err)
			}
		}
	}
}

// TestUnwrapWrongKEK verifies that unwrapping under a different KEK fails the
// integrity check rather than returning garbage key material.
func TestUnwrapWrongKEK(t *testing.T) {
	t.Parallel()

	kek1 := mustHex(t, "000102030405060708090A0B0C0D0E0F")
	kek2 := mustHex(t, "0F0E0D0C0B0A09080706050403020100")
	plain := mustHex(t, "00112233445566778899AABBCCDDEEFF")

	wrapped, err := keywrap.Wrap(kek1, plain)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	if _, err := keywrap.Unwrap(kek2, wrapped); !errors.Is(err, keywrap.ErrIntegrityCheckFailed) {
		t.Errorf("got err=%v, want integrity failure", err)
	}
}

// TestInputValidation exercises the boundary rejections shared by Wrap and Unwrap.
func TestInputValidation(t *testing.T) {
	t.Parallel()

	kek16 := make([]byte, 16)

	tests := []struct {
		name    string
		op      func() ([]byte, error)
		wantErr error
	}{
		{
			name:    "wrap with 15-byte KEK",
			op:      func() ([]byte, error) { return keywrap.Wrap(make([]byte, 15), make([]byte, 16)) },
			wantErr: keywrap.ErrInvalidKEKLength,
		},
		{
			name:    "wrap with nil KEK",
			op:      func() ([]byte, error) { return keywrap.Wrap(nil, make([]byte, 16)) },
			wantErr: keywrap.ErrInvalidKEKLength,
		},
		{
			name:    "unwrap with 33-byte KEK",
			op:      func() ([]byte, error) { return keywrap.Unwrap(make([]byte, 33), make([]byte, 24)) },
			wantErr: keywrap.ErrInvalidKEKLength,
		},
		{
			name:    "wrap 9-byte key",
			op:      func() ([]byte, error) { return keywrap.Wrap(kek16, make([]byte, 9)) },
			wantErr: keywrap.ErrInvalidDataLength,
		},
		{
			name:    "wrap empty key",
			op:      func() ([]byte, error) { return keywrap.Wrap(kek16, nil) },
			wantErr: keywrap.ErrInvalidDataLength,
		},
		{
			name:    "wrap key longer than KEK",
			op:      func() ([]byte, error) { return keywrap.Wrap(kek16, make([]byte, 24)) },
			wantErr: keywrap.ErrDataTooLarge,
		},
		{
			name:    "unwrap misaligned data",
			op:      func() ([]byte, error) { return keywrap.Unwrap(kek16, make([]byte, 17)) },
			wantErr: keywrap.ErrInvalidDataLength,
		},
		{
			name:    "unwrap data longer than KEK plus integrity block",
			op:      func() ([]byte, error) { return keywrap.Unwrap(kek16, make([]byte, 32)) },
			wantErr: keywrap.ErrDataTooLarge,
		},
		{
			name:    "unwrap single-block data",
			op:      func() ([]byte, error) { return keywrap.Unwrap(kek16, make([]byte, 8)) },
			wantErr: keywrap.ErrInvalidDataLength,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := tc.op()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got err=%v, want %v", err, tc.wantErr)
			}
			if out != nil {
				t.Errorf("got output %X on validation failure, want none", out)
			}
		})
	}
}

// TestWrapDoesNotMutateInputs guards the in-place register loops against
// writing through to the caller's slices.
func TestWrapDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	kek := mustHex(t, "000102030405060708090A0B0C0D0E0F")
	plain := mustHex(t, "00112233445566778899AABBCCDDEEFF")

	kekCopy := make([]byte, len(kek))
	copy(kekCopy, kek)
	plainCopy := make([]byte, len(plain))
	copy(plainCopy, plain)

	wrapped, err := keywrap.Wrap(kek, plain)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if !bytes.Equal(kek, kekCopy) || !bytes.Equal(plain, plainCopy) {
		t.Fatal("Wrap mutated its inputs")
	}

	if _, err := keywrap.Unwrap(kek, wrapped); err != nil {
		t.Fatalf("Unwrap failed: %v", err)
	}
	if !bytes.Equal(kek, kekCopy) {
		t.Fatal("Unwrap mutated the KEK")
	}
}
