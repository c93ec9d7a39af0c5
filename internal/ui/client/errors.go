package client

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorKind classifies client failures
type ErrorKind string

const (
	// KindConnection - the server could not be reached
	KindConnection ErrorKind = "connection"
	// KindAPI - the server answered with a non-success status
	KindAPI ErrorKind = "api"
	// KindProtocol - the server answered with a success status but the body was not JSON
	KindProtocol ErrorKind = "protocol"
	// KindInternal - the request could not be built
	KindInternal ErrorKind = "internal"
)

// user facing messages
const (
	ConnectionErrorMessage = "Could not reach the server. Check that the backend is running."
	NonJSONResponseMessage = "The server returned a non-JSON response."
	InternalErrorMessage   = "An error occurred. Please try again."
)

// maxLoggedBodyBytes limits how much of an error body is copied into the log message
const maxLoggedBodyBytes = 512

// ClientError represents an error encountered when communicating with the Komfort API
// StatusCode 0 = no HTTP response was received, >0 = HTTP response received
type ClientError struct {
	Kind        ErrorKind `json:"kind"`
	StatusCode  int       `json:"status_code"`
	UserMessage string    `json:"user_message"`
	LogMessage  string    `json:"log_message"`
}

// Error returns the ready-to-display message
func (e *ClientError) Error() string {
	return e.UserMessage
}

// LogValue includes the technical detail when the error is logged with slog
func (e *ClientError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(e.Kind)),
		slog.Int("status", e.StatusCode),
		slog.String("detail", e.LogMessage),
	)
}

// NewClientConnectionError creates a ClientError for network/connection issues
func NewClientConnectionError(err error) *ClientError {
	return &ClientError{
		Kind:        KindConnection,
		StatusCode:  0,
		UserMessage: ConnectionErrorMessage,
		LogMessage:  fmt.Sprintf("network error: %v", err),
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		Kind:        KindInternal,
		StatusCode:  0,
		UserMessage: InternalErrorMessage,
		LogMessage:  fmt.Sprintf("internal error: %v while %v", err, while),
	}
}

// NewClientProtocolError creates a ClientError for a success response that can't be read as JSON
func NewClientProtocolError(res *http.Response, reason string) *ClientError {
	return &ClientError{
		Kind:        KindProtocol,
		StatusCode:  res.StatusCode,
		UserMessage: NonJSONResponseMessage,
		LogMessage: fmt.Sprintf("status %d content-type %q: %s",
			res.StatusCode, res.Header.Get("Content-Type"), reason),
	}
}

// NewClientApiError creates a ClientError from a non-success HTTP response.
// The body is only parsed when the response declares a JSON content type, other bodies are treated as absent.
func NewClientApiError(res *http.Response) *ClientError {
	var body []byte
	if res.Body != nil && isJSONResponse(res) {
		data, err := io.ReadAll(res.Body)
		if err == nil {
			body = data
		}
	}

	logMsg := fmt.Sprintf("api status %d", res.StatusCode)
	if len(body) > 0 {
		logMsg += " - " + truncate(string(body), maxLoggedBodyBytes)
	}

	return &ClientError{
		Kind:        KindAPI,
		StatusCode:  res.StatusCode,
		UserMessage: ErrorMessage(res.StatusCode, body),
		LogMessage:  logMsg,
	}
}

func isJSONResponse(res *http.Response) bool {
	return strings.Contains(strings.ToLower(res.Header.Get("Content-Type")), "application/json")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
