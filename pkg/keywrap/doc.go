// Package keywrap implements the AES Key Wrap algorithm (RFC 3394) for protecting key material under a Key Encryption Key (KEK).
package keywrap
