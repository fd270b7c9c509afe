package issues

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/roeyazroel/linear-board/internal/linearapi"
)

// Category is a user-facing error class.
type Category int

const (
	ServiceInternal Category = iota
	Authentication
	Configuration
	Permission
	Validation
	RateLimit
	Network
	NotFound
)

func (c Category) String() string {
	switch c {
	case Authentication:
		return "authentication"
	case Configuration:
		return "configuration"
	case Permission:
		return "permission"
	case Validation:
		return "validation"
	case RateLimit:
		return "rate limit"
	case Network:
		return "network"
	case NotFound:
		return "not found"
	default:
		return "service"
	}
}

// Retryable reports whether a manual retry may succeed without the user
// changing anything.
func (c Category) Retryable() bool {
	switch c {
	case RateLimit, Network, ServiceInternal:
		return true
	}
	return false
}

// Error is the only error type returned by the Adapter. It is also used by
// the board for local validation failures.
type Error struct {
	Category Category
	// Op names the failed operation, e.g. "update priority".
	Op string
	// Message is shown to the user. Empty falls back to a category default.
	Message string
	// RetryAfter is set for rate limits when the service sent a hint.
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.UserMessage())
	if e.Err != nil {
		msg := e.Err.Error()
		if msg != e.Message {
			b.WriteString(": ")
			b.WriteString(msg)
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the category is retryable.
func (e *Error) Retryable() bool { return e.Category.Retryable() }

// UserMessage returns the text the renderers display.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Category {
	case Authentication:
		return "Authentication error: Please check your Linear API key."
	case Configuration:
		return "Configuration error: check your Linear team settings."
	case Permission:
		return "Permission error: Your API key may not have the required access."
	case Validation:
		return "The request was rejected as invalid."
	case RateLimit:
		if e.RetryAfter > 0 {
			return fmt.Sprintf("Rate limited by Linear, retry in %s.", e.RetryAfter.Round(time.Second))
		}
		return "Rate limited by Linear, try again shortly."
	case Network:
		return "Could not reach Linear. Check your connection."
	case NotFound:
		return "The issue no longer exists in Linear."
	default:
		return "Linear returned an unexpected error."
	}
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCategory reports whether err carries an *Error of category c.
func IsCategory(err error, c Category) bool {
	e, ok := AsError(err)
	return ok && e.Category == c
}

// Categorize maps any failure from the Linear client into an *Error. An
// *Error already in the chain is returned as is.
func Categorize(op string, err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := AsError(err); ok {
		return e
	}

	out := &Error{Category: ServiceInternal, Op: op, Err: err}

	var se *linearapi.StatusError
	if errors.As(err, &se) {
		out.Category = categorizeStatus(se)
		out.RetryAfter = se.RetryAfter
		if out.Category == Validation || out.Category == Configuration {
			out.Message = se.Message()
		}
		return out
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		out.Category = Network
		return out
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		out.Category = Network
		return out
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		out.Category = Network
		return out
	}

	if c, ok := categorizeMessage(err.Error()); ok {
		out.Category = c
		if c == Configuration {
			out.Message = "Team configuration error: " + err.Error()
		}
	}
	return out
}

func categorizeStatus(se *linearapi.StatusError) Category {
	for _, code := range se.Codes() {
		if c, ok := categorizeCode(code); ok {
			return c
		}
	}
	switch {
	case se.StatusCode == http.StatusUnauthorized:
		return Authentication
	case se.StatusCode == http.StatusForbidden:
		return Permission
	case se.StatusCode == http.StatusNotFound:
		return NotFound
	case se.StatusCode == http.StatusTooManyRequests:
		return RateLimit
	case se.StatusCode == http.StatusRequestTimeout,
		se.StatusCode == http.StatusBadGateway,
		se.StatusCode == http.StatusServiceUnavailable,
		se.StatusCode == http.StatusGatewayTimeout:
		return Network
	case se.StatusCode >= 500:
		return ServiceInternal
	}
	if c, ok := categorizeMessage(se.Message()); ok {
		return c
	}
	if se.StatusCode == http.StatusBadRequest || se.StatusCode == http.StatusUnprocessableEntity {
		return Validation
	}
	return ServiceInternal
}

// categorizeCode matches GraphQL extensions codes and types, upper-cased.
func categorizeCode(code string) (Category, bool) {
	switch {
	case strings.Contains(code, "AUTHENTICATION"), code == "UNAUTHENTICATED":
		return Authentication, true
	case strings.Contains(code, "FORBIDDEN"), strings.Contains(code, "PERMISSION"):
		return Permission, true
	case strings.Contains(code, "RATELIMIT"), strings.Contains(code, "RATE_LIMIT"):
		return RateLimit, true
	case strings.Contains(code, "NOT_FOUND"), strings.Contains(code, "NOT FOUND"):
		return NotFound, true
	case strings.Contains(code, "INVALID"), strings.Contains(code, "VALIDATION"),
		strings.Contains(code, "BAD_USER_INPUT"), strings.Contains(code, "INPUT"):
		return Validation, true
	case strings.Contains(code, "INTERNAL"):
		return ServiceInternal, true
	}
	return ServiceInternal, false
}

// categorizeMessage is the last resort for errors that carry only text,
// such as GraphQL errors delivered with a 200 response.
func categorizeMessage(msg string) (Category, bool) {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "api key"), strings.Contains(m, "authentication"),
		strings.Contains(m, "unauthorized"):
		return Authentication, true
	case strings.Contains(m, "rate limit"), strings.Contains(m, "ratelimit"):
		return RateLimit, true
	case strings.Contains(m, "permission"), strings.Contains(m, "forbidden"):
		return Permission, true
	case strings.Contains(m, "team"):
		return Configuration, true
	case strings.Contains(m, "not found"), strings.Contains(m, "could not find"),
		strings.Contains(m, "does not exist"):
		return NotFound, true
	}
	return ServiceInternal, false
}
