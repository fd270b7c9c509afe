package linearapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrOperationFailed is returned when a mutation reports success=false.
var ErrOperationFailed = errors.New("operation reported success=false")

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 64 << 10

// GraphQLError is one entry of the "errors" array of a GraphQL response.
type GraphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code                   string `json:"code"`
		Type                   string `json:"type"`
		UserPresentableMessage string `json:"userPresentableMessage"`
	} `json:"extensions"`
}

// StatusError is returned by the client transport for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
	// RetryAfter is the parsed Retry-After header, zero when absent.
	RetryAfter time.Duration
	Errors     []GraphQLError
}

func newStatusError(resp *http.Response) *StatusError {
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	se := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
	}

	var payload struct {
		Errors []GraphQLError `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		se.Errors = payload.Errors
	}
	return se
}

// Error implements error.
func (e *StatusError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("linear api: %s: %s", e.Status, msg)
	}
	return fmt.Sprintf("linear api: %s", e.Status)
}

// Message returns the most user-presentable GraphQL error message, if any.
func (e *StatusError) Message() string {
	for _, ge := range e.Errors {
		if ge.Extensions.UserPresentableMessage != "" {
			return ge.Extensions.UserPresentableMessage
		}
	}
	for _, ge := range e.Errors {
		if ge.Message != "" {
			return ge.Message
		}
	}
	return ""
}

// Codes returns the upper-cased extensions.code values of the GraphQL errors.
func (e *StatusError) Codes() []string {
	codes := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		code := ge.Extensions.Code
		if code == "" {
			code = ge.Extensions.Type
		}
		if code != "" {
			codes = append(codes, strings.ToUpper(code))
		}
	}
	return codes
}

// parseRetryAfter accepts either delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
