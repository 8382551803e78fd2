package keys

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

func newUnwrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unwrap",
		Short: "Unwrap a wrapped key under a KEK",
		Long: `Unwrap key material previously wrapped under a Key Encryption Key
using the AES Key Wrap algorithm (RFC 3394). The chained integrity value is
verified before any key material is released; a wrong KEK, corruption, or
tampering is reported as an integrity failure.`,
		RunE: runUnwrap,
	}

	// Add flags.
	cmd.Flags().String("kek", "", "Key Encryption Key in hex format (16, 24 or 32 bytes)")
	cmd.Flags().String("data", "", "Wrapped key in hex format (positive multiple of 8 bytes)")

	if err := cmd.MarkFlagRequired("kek"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("data"); err != nil {
		panic(err)
	}

	return cmd
}

func runUnwrap(cmd *cobra.Command, _ []string) error {
	kekHex, _ := cmd.Flags().GetString("kek")
	dataHex, _ := cmd.Flags().GetString("data")

	kek, err := decodeSecretHex(kekHex)
	if err != nil {
		return fmt.Errorf("invalid KEK format: %w", err)
	}
	defer kek.Destroy()

	wrapped, err := hex.DecodeString(dataHex)
	if err != nil {
		return fmt.Errorf("invalid wrapped key format: %w", err)
	}

	clearKey, err := keywrap.Unwrap(kek.Bytes(), wrapped)
	if err != nil {
		if errors.Is(err, keywrap.ErrIntegrityCheckFailed) {
			return errors.New(
				"integrity check failed: wrong KEK, corrupted or tampered wrapped key",
			)
		}

		return fmt.Errorf("failed to unwrap key: %w", err)
	}

	// Output results
	cmd.Printf("Clear Key: %s\n", strings.ToUpper(hex.EncodeToString(clearKey)))
	cmd.Printf("Length: %d bytes\n", len(clearKey))

	return nil
}
