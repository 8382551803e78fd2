// Package cli provides the CLI command structure for go_keywrap.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrei-cloud/go_keywrap/internal/config"
)

var cfgFile string

// NewRootCommand creates and returns the root command with all subcommands.
func NewRootCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "go_keywrap",
		Short: "AES Key Wrap server and utilities",
		Long: `A key wrapping utility and server implementing the AES Key Wrap
algorithm (RFC 3394) for protecting key material under a Key Encryption Key (KEK).`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Initialize configuration before running any command.
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			return nil
		},
	}

	// Add persistent flags that affect all commands.
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.go_keywrap/config.yaml)")

	// Add global flags that can override config file settings.
	rootCmd.PersistentFlags().
		String("log-level", "info", "logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "logging format (human, json)")

	// Bind flags to viper.
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Register all commands.
	if err := RegisterCommands(rootCmd); err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	return rootCmd, nil
}
