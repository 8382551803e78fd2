// Package cli provides centralized command registration.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/commands/cli/keys"
	"github.com/andrei-cloud/go_keywrap/internal/commands/cli/server"
)

// RegisterCommands registers all root commands.
func RegisterCommands(root *cobra.Command) error {
	// Root commands.
	root.AddCommand(keys.NewKeysCommand())
	root.AddCommand(server.NewServeCommand())

	return nil
}
