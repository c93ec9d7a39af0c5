package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
)

const outcomeOK = "ok"

// requestJSON issues one request and decodes the JSON success body into T.
//
// payload, when not nil, is sent as the JSON request body.
// Failures are returned as *ClientError:
//   - the server could not be reached: KindConnection
//   - non-success status: KindAPI, message built from the body by ErrorMessage
//   - success without a JSON content type, or a body that does not decode: KindProtocol
func requestJSON[T any](ctx context.Context, c *Client, resource, method, path string, payload any) (T, error) {
	var out T

	start := time.Now()
	res, err := c.send(ctx, resource, method, path, payload)
	if err == nil {
		defer res.Body.Close()
		err = decodeJSON(res, &out)
	}
	c.observe(ctx, resource, method, path, start, err)

	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// requestVoid issues one request and discards the success body (used for deletes)
func requestVoid(ctx context.Context, c *Client, resource, method, path string, payload any) error {
	start := time.Now()
	res, err := c.send(ctx, resource, method, path, payload)
	if err == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()
	}
	c.observe(ctx, resource, method, path, start, err)
	return err
}

// send performs the network call. A non-nil response always has a success status and an open body.
func (c *Client) send(ctx context.Context, resource, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, NewClientInternalError(err, fmt.Sprintf("marshaling %s request", resource))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, NewClientInternalError(err, fmt.Sprintf("creating %s request", resource))
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewClientConnectionError(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, NewClientApiError(res)
	}

	return res, nil
}

// decodeJSON requires the whole body to be one JSON value. null is rejected since no accessor returns it.
func decodeJSON(res *http.Response, out any) error {
	if !isJSONResponse(res) {
		return NewClientProtocolError(res, "response is not JSON")
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return NewClientProtocolError(res, fmt.Sprintf("reading response: %v", err))
	}
	if string(bytes.TrimSpace(data)) == "null" {
		return NewClientProtocolError(res, "response is null")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewClientProtocolError(res, fmt.Sprintf("decoding response: %v", err))
	}
	return nil
}

func (c *Client) observe(ctx context.Context, resource, method, path string, start time.Time, err error) {
	elapsed := time.Since(start)

	outcome := outcomeOK
	var ce *ClientError
	if errors.As(err, &ce) {
		outcome = string(ce.Kind)
	}

	requestsTotal.WithLabelValues(resource, method, outcome).Inc()
	requestDuration.WithLabelValues(resource, method).Observe(elapsed.Seconds())

	log := c.logger
	if reqLogger, ok := logger.LookupRequestLogger(ctx); ok {
		log = reqLogger
	}

	attrs := []slog.Attr{
		slog.String("component", "api-client"),
		slog.String("method", method),
		slog.String("path", path),
		slog.String("outcome", outcome),
		slog.Duration("duration", elapsed),
	}
	if ce != nil {
		attrs = append(attrs, slog.Any("error", ce))
	}
	log.LogAttrs(ctx, slog.LevelDebug, "api request", attrs...)
}
