// Package keys provides key wrapping commands.
package keys

import (
	"github.com/spf13/cobra"
)

// NewKeysCommand creates the keys command group.
func NewKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Key wrapping and KEK operations",
		Long: `Key wrapping operations using the AES Key Wrap algorithm (RFC 3394).
This command provides subcommands for wrapping and unwrapping key material under a
Key Encryption Key (KEK) and for generating random KEKs.`,
	}

	// Add subcommands.
	cmd.AddCommand(newWrapCommand())
	cmd.AddCommand(newUnwrapCommand())
	cmd.AddCommand(newGenKEKCommand())
	cmd.AddCommand(newWizardCommand())

	return cmd
}
