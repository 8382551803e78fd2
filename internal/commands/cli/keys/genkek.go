package keys

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
)

func newGenKEKCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genkek",
		Short: "Generate a random Key Encryption Key",
		Long: `Generate a random Key Encryption Key of the specified size.
The KEK is generated inside a locked memory buffer and printed in hex; the
buffer is destroyed before the command returns.`,
		RunE: runGenKEK,
	}

	// Add flags.
	cmd.Flags().Int("size", 256, "KEK size in bits (128, 192 or 256)")

	return cmd
}

func runGenKEK(cmd *cobra.Command, _ []string) error {
	size, _ := cmd.Flags().GetInt("size")

	var kekLen int
	switch size {
	case 128:
		kekLen = 16
	case 192:
		kekLen = 24
	case 256:
		kekLen = 32
	default:
		return fmt.Errorf("invalid KEK size: %d bits (must be 128, 192 or 256)", size)
	}

	kek := memguard.NewBufferRandom(kekLen)
	defer kek.Destroy()

	// Output results
	cmd.Printf("KEK: %s\n", strings.ToUpper(hex.EncodeToString(kek.Bytes())))
	cmd.Printf("Size: %d bits\n", size)

	return nil
}
