package server

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	anetserver "github.com/andrei-cloud/anet/server"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
	"github.com/andrei-cloud/go_keywrap/internal/logging"
	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// Wire command codes. The response code is the request code with its second
// character incremented, per the Thales convention the protocol follows.
const (
	cmdWrap   = "WK"
	cmdUnwrap = "UK"
)

// logAdapter implements anet.Logger using zerolog.
type logAdapter struct{}

// Server wraps the anet TCP server and dispatches key wrap commands.
type Server struct {
	address     string
	srv         *anetserver.Server
	activeConns int32
}

func (l logAdapter) Print(v ...any) {
	log.Info().Msg(fmt.Sprint(v...))
}

func (l logAdapter) Printf(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func (l logAdapter) Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

// NewServer configures and returns the key wrap server instance.
func NewServer(address string) (*Server, error) {
	cfg := &anetserver.ServerConfig{
		MaxConns:        100,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     0 * time.Second, // disable idle connection closure.
		ShutdownTimeout: 5 * time.Second,
		Logger:          logAdapter{},
	}

	s := &Server{
		address: address,
	}
	handler := anetserver.HandlerFunc(s.handle)
	srv, err := anetserver.NewServer(address, handler, cfg)
	if err != nil {
		return nil, fmt.Errorf("server setup failed: %w", err)
	}
	s.srv = srv

	return s, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	log.Info().Str("address", s.address).Msg("server started")
	return s.srv.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	return s.srv.Stop()
}

// incrementCode returns the response command code for a request code.
func incrementCode(cmd string) string {
	b := []byte(cmd)
	if len(b) < 2 {
		return cmd
	}
	if b[1] == 'Z' {
		b[1] = 'A'
	} else {
		b[1]++
	}

	return string(b)
}

// errorResponse constructs a response carrying only an error code.
func errorResponse(cmd string, kwErr errorcodes.KWError) []byte {
	return []byte(incrementCode(cmd) + kwErr.CodeOnly())
}

// parseKeyPayload decodes a WK/UK payload: a two-hex-digit KEK byte length,
// the KEK in hex, then the data in hex. Both decoded slices hold key material
// and must be wiped by the caller.
func parseKeyPayload(payload []byte) (kek, data []byte, kwErr errorcodes.KWError, ok bool) {
	if len(payload) < 2 {
		return nil, nil, errorcodes.Err15, false
	}

	kekLen64, err := strconv.ParseInt(string(payload[:2]), 16, 32)
	if err != nil {
		return nil, nil, errorcodes.Err15, false
	}
	kekLen := int(kekLen64)

	rest := string(payload[2:])
	if len(rest) < kekLen*2 {
		return nil, nil, errorcodes.Err15, false
	}

	kek, err = hex.DecodeString(rest[:kekLen*2])
	if err != nil {
		return nil, nil, errorcodes.Err15, false
	}

	data, err = hex.DecodeString(rest[kekLen*2:])
	if err != nil {
		wipe(kek)
		return nil, nil, errorcodes.Err15, false
	}

	return kek, data, errorcodes.Err00, true
}

// wipe clears key material received on the wire.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// execute runs the wrap or unwrap operation for a parsed payload.
func execute(cmd string, kek, data []byte) ([]byte, error) {
	switch cmd {
	case cmdWrap:
		return keywrap.Wrap(kek, data)
	case cmdUnwrap:
		return keywrap.Unwrap(kek, data)
	default:
		return nil, errors.New("unknown command")
	}
}

// handle processes one framed request and produces the response.
func (s *Server) handle(conn *anetserver.ServerConn, data []byte) ([]byte, error) {
	client := conn.Conn.RemoteAddr().String()
	requestID := uuid.NewString()
	atomic.AddInt32(&s.activeConns, 1)
	defer atomic.AddInt32(&s.activeConns, -1)

	start := time.Now()
	log.Debug().
		Str("event", "handle_start").
		Str("request_id", requestID).
		Str("client_ip", client).
		Msg("starting request handling")

	if len(data) < 2 {
		log.Error().
			Str("request_id", requestID).
			Str("client_ip", client).
			Msg("malformed request")
		return nil, errors.New("malformed request")
	}

	cmd := string(data[:2])
	payload := data[2:]
	logging.LogRequest(
		requestID,
		client,
		cmd,
		len(payload),
		int(atomic.LoadInt32(&s.activeConns)),
	)

	resp, kwErr := s.dispatch(requestID, client, cmd, payload)

	logging.LogResponse(
		requestID,
		client,
		cmd,
		incrementCode(cmd),
		kwErr.CodeOnly(),
		int(atomic.LoadInt32(&s.activeConns)),
	)

	log.Debug().
		Str("event", "handle_done").
		Str("request_id", requestID).
		Str("duration", time.Since(start).String()).
		Msg("completed request handling")

	return resp, nil
}

// dispatch routes a command to its operation and assembles the wire response.
func (s *Server) dispatch(
	requestID, client, cmd string,
	payload []byte,
) ([]byte, errorcodes.KWError) {
	if cmd != cmdWrap && cmd != cmdUnwrap {
		log.Warn().
			Str("event", "unknown_command").
			Str("request_id", requestID).
			Str("client_ip", client).
			Str("command", cmd).
			Msg("command not recognized, responding with error code")

		return errorResponse(cmd, errorcodes.Err51), errorcodes.Err51
	}

	kek, keyData, kwErr, ok := parseKeyPayload(payload)
	if !ok {
		log.Error().
			Str("event", "payload_parse_error").
			Str("request_id", requestID).
			Str("client_ip", client).
			Str("command", cmd).
			Msg("malformed command payload")

		return errorResponse(cmd, kwErr), kwErr
	}
	defer wipe(kek)
	defer wipe(keyData)

	result, err := execute(cmd, kek, keyData)
	if err != nil {
		kwErr = errorcodes.FromKeywrapError(err)
		log.Error().
			Str("event", "operation_error").
			Str("request_id", requestID).
			Str("client_ip", client).
			Str("command", cmd).
			Err(err).
			Msg("key wrap operation failed")

		return errorResponse(cmd, kwErr), kwErr
	}
	defer wipe(result)

	resp := incrementCode(cmd) + errorcodes.Err00.CodeOnly() +
		strings.ToUpper(hex.EncodeToString(result))

	return []byte(resp), errorcodes.Err00
}
