package keys

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

func newWizardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Interactively generate and wrap a key",
		Long: `Interactively pick a KEK size and key size, then generate both at
random and wrap the key under the KEK. Both values are generated inside locked
memory buffers and destroyed before the command returns.`,
		RunE: runWizard,
	}

	return cmd
}

func runWizard(cmd *cobra.Command, _ []string) error {
	params, confirmed, err := runWrapWizardTUI()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	if !confirmed {
		cmd.Println("Operation cancelled.")

		return nil
	}

	if params.keyBytes() > params.kekBytes() {
		return fmt.Errorf(
			"key of %d bytes does not fit under a %d-byte KEK",
			params.keyBytes(),
			params.kekBytes(),
		)
	}

	kek := memguard.NewBufferRandom(params.kekBytes())
	defer kek.Destroy()

	key := memguard.NewBufferRandom(params.keyBytes())
	defer key.Destroy()

	wrapped, err := keywrap.Wrap(kek.Bytes(), key.Bytes())
	if err != nil {
		return fmt.Errorf("failed to wrap generated key: %w", err)
	}

	// Output results
	cmd.Printf("KEK:         %s\n", strings.ToUpper(hex.EncodeToString(kek.Bytes())))
	cmd.Printf("Clear Key:   %s\n", strings.ToUpper(hex.EncodeToString(key.Bytes())))
	cmd.Printf("Wrapped Key: %s\n", strings.ToUpper(hex.EncodeToString(wrapped)))

	return nil
}
