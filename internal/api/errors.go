package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors mapped from HTTP status classes. Callers branch with
// errors.Is instead of inspecting status codes.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")
)

// errorBody is the error payload shape the server returns. Fields are
// probed in order: detail, message, error.
type errorBody struct {
	Detail    string `json:"detail"`
	Message   string `json:"message"`
	Err       string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// StatusError is a non-2xx response. It unwraps to the sentinel for its
// status class so errors.Is(err, ErrNotFound) works.
type StatusError struct {
	StatusCode int
	Code       string
	Detail     string
	RequestID  string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return ErrServer
	}
	return nil
}

// decodeError turns a non-2xx response into a StatusError. The body is
// read with a hard cap so a misbehaving server cannot balloon memory.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	se := &StatusError{StatusCode: resp.StatusCode}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		se.Code = body.Code
		se.RequestID = body.RequestID
		switch {
		case body.Detail != "":
			se.Detail = body.Detail
		case body.Message != "":
			se.Detail = body.Message
		case body.Err != "":
			se.Detail = body.Err
		}
	} else if s := strings.TrimSpace(string(data)); s != "" && len(s) < 200 {
		// Plain-text error from a proxy or similar
		se.Detail = s
	}

	return se
}
