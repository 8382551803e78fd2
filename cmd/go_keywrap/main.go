package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/internal/commands/cli"
)

// main builds the CLI command tree and runs it.
func main() {
	rootCmd, err := cli.NewRootCommand()
	if err != nil {
		log.Error().Err(err).Msg("failed to build command tree")
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
