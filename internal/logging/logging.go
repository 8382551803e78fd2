package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the zerolog logger with the specified debug mode and output format.
func InitLogger(debug, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano                 // always initialize base logger with timestamp.
	base := zerolog.New(os.Stdout).With().Timestamp().Logger() // initialize base logger.
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		}) // select output format.
	} else {
		log.Logger = base // use JSON logger.
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel) // set debug level.
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel) // set info level.
	}
}

// LogRequest logs a received command with structured fields. Requests carry
// key material, so only lengths are logged, never the payload itself.
func LogRequest(
	requestID string,
	clientIP string,
	command string,
	payloadLen int,
	activeConns int,
) {
	log.Info().
		Str("event", "request_received").
		Str("request_id", requestID).
		Str("client_ip", clientIP).
		Str("command", command).
		Int("payload_bytes", payloadLen).
		Int("active_connections", activeConns).
		Msg("received command")
}

// LogResponse logs a sent response with structured fields.
func LogResponse(
	requestID string,
	clientIP string,
	command string,
	responseCommand string,
	errorCode string,
	activeConns int,
) {
	log.Info().
		Str("event", "response_sent").
		Str("request_id", requestID).
		Str("client_ip", clientIP).
		Str("command", command).
		Str("response_command", responseCommand).
		Str("error_code", errorCode).
		Int("active_connections", activeConns).
		Msg("sent response")
}
