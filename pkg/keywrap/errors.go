package keywrap

import "errors"

// Errors returned by Wrap and Unwrap. The first three report malformed caller
// input and are raised before any cryptographic work; ErrIntegrityCheckFailed
// is raised only at the end of Unwrap and indicates a wrong KEK, corrupted
// ciphertext, or tampering.
var (
	ErrInvalidKEKLength     = errors.New("keywrap: KEK length must be 16, 24 or 32 bytes")
	ErrInvalidDataLength    = errors.New("keywrap: data length must be a positive multiple of 8 bytes")
	ErrDataTooLarge         = errors.New("keywrap: data too large for KEK")
	ErrIntegrityCheckFailed = errors.New("keywrap: integrity check failed")
)
