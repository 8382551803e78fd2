package keys

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

func newWrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrap",
		Short: "Wrap a clear key under a KEK",
		Long: `Wrap a clear key under a Key Encryption Key using the AES Key Wrap
algorithm (RFC 3394). The wrapped output is 8 bytes longer than the clear key
and carries the chained integrity value that is verified on unwrap.`,
		RunE: runWrap,
	}

	// Add flags.
	cmd.Flags().String("kek", "", "Key Encryption Key in hex format (16, 24 or 32 bytes)")
	cmd.Flags().String("key", "", "Clear key in hex format (positive multiple of 8 bytes)")

	if err := cmd.MarkFlagRequired("kek"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("key"); err != nil {
		panic(err)
	}

	return cmd
}

func runWrap(cmd *cobra.Command, _ []string) error {
	kekHex, _ := cmd.Flags().GetString("kek")
	keyHex, _ := cmd.Flags().GetString("key")

	kek, err := decodeSecretHex(kekHex)
	if err != nil {
		return fmt.Errorf("invalid KEK format: %w", err)
	}
	defer kek.Destroy()

	key, err := decodeSecretHex(keyHex)
	if err != nil {
		return fmt.Errorf("invalid key format: %w", err)
	}
	defer key.Destroy()

	wrapped, err := keywrap.Wrap(kek.Bytes(), key.Bytes())
	if err != nil {
		return fmt.Errorf("failed to wrap key: %w", err)
	}

	// Output results
	cmd.Printf("Wrapped Key: %s\n", strings.ToUpper(hex.EncodeToString(wrapped)))
	cmd.Printf("Length: %d bytes\n", len(wrapped))

	return nil
}

// decodeSecretHex decodes hex-encoded key material straight into a locked
// buffer; the intermediate clear slice is wiped by NewBufferFromBytes.
func decodeSecretHex(s string) (*memguard.LockedBuffer, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty value")
	}

	return memguard.NewBufferFromBytes(raw), nil
}
