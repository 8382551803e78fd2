// Package server provides server-related CLI commands.
package server

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/awnumar/memguard"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrei-cloud/go_keywrap/internal/config"
	"github.com/andrei-cloud/go_keywrap/internal/logging"
	"github.com/andrei-cloud/go_keywrap/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the key wrap server",
		Long:  `Start the key wrap server to process wrap and unwrap commands over TCP.`,
		RunE:  runServe,
	}

	// Add serve command specific flags that can override config.
	cmd.Flags().String("host", "localhost", "Server host")
	cmd.Flags().Int("port", 1500, "Server port")

	// Bind serve command flags to viper.
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get configuration.
	cfg := config.Get()

	// Normalize log level and format from viper/config.
	logLevel := viper.GetString("log.level")
	logFormat := viper.GetString("log.format")
	logLevel = strings.TrimSpace(strings.ToLower(logLevel))
	logFormat = strings.TrimSpace(strings.ToLower(logFormat))

	// Initialize logger using config values (with CLI flags overriding config via viper).
	logging.InitLogger(
		logLevel == "debug",
		logFormat == "human",
	)

	// Initialize the server with configured host and port.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv, err := server.NewServer(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %v", err)
	}

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %v", err)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	<-stopChan
	log.Info().Msg("shutting down server...")

	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Wipe any residual locked buffers before exit.
	memguard.Purge()

	return nil
}
