package simulation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/getmockd/influxmock/pkg/lineprotocol"
)

// DirectionTag is the reserved tag whose value selects a directive.
const DirectionTag = "direction"

// Companion tags read by some directives.
const (
	CodeTag    = "x-code"
	TimeoutTag = "timeout"
)

// RetryAfterSeconds is the Retry-After value sent by the "-1" variants of
// the overload directives.
const RetryAfterSeconds = 10

// Directive names.
const (
	DirectiveDeleteAll      = "delete-all"
	DirectiveLimit          = "429-1"
	DirectiveLimitNoRetry   = "429-2"
	DirectiveOverload       = "503-1"
	DirectiveOverloadNoWait = "503-2"
	DirectiveStatus         = "status"
	DirectiveChunked        = "chunked"
	DirectiveTimeout        = "timeout"
	DirectivePermanentSet   = "permanent-set"
	DirectivePermanentUnset = "permanent-unset"
	DirectiveBadRequest     = "400"
	DirectiveServerError    = "500"
)

// Outcome is the response a directive asks for.
type Outcome struct {
	// Status is the response status; 0 means 204 No Content.
	Status int
	// Body is sent as text/plain when Status is set.
	Body string
	// RetryAfter, when positive, is sent as the Retry-After header.
	RetryAfter int
	// Discard drops the points accompanying the directive.
	Discard bool
}

// StatusCode returns Status or 204 when unset.
func (o Outcome) StatusCode() int {
	if o.Status == 0 {
		return http.StatusNoContent
	}
	return o.Status
}

// Directive applies a control action to s. The caller holds the state lock.
type Directive func(s *State, tags lineprotocol.Tags) Outcome

// DirectiveTable maps direction tag values to directives.
type DirectiveTable map[string]Directive

// V2Directives are recognized by the v2 write endpoint.
var V2Directives = DirectiveTable{
	DirectiveDeleteAll:      deleteAll,
	DirectiveLimit:          reject(http.StatusTooManyRequests, "Limit exceeded", RetryAfterSeconds),
	DirectiveLimitNoRetry:   reject(http.StatusTooManyRequests, "Limit exceeded", 0),
	DirectiveOverload:       reject(http.StatusServiceUnavailable, "Server overloaded", RetryAfterSeconds),
	DirectiveOverloadNoWait: reject(http.StatusServiceUnavailable, "Server overloaded", 0),
	DirectiveStatus:         statusCode,
	DirectiveChunked:        chunked,
	DirectiveTimeout:        timeout,
	DirectivePermanentSet:   permanentSet,
	DirectivePermanentUnset: permanentUnset,
}

// V1Directives are recognized by the v1 write endpoint.
var V1Directives = DirectiveTable{
	DirectiveDeleteAll:   deleteAll,
	DirectiveBadRequest:  discard(http.StatusBadRequest, "bad request"),
	DirectiveServerError: discard(http.StatusInternalServerError, "internal server error"),
}

func deleteAll(s *State, _ lineprotocol.Tags) Outcome {
	s.deleteAll()
	return Outcome{}
}

func reject(status int, body string, retryAfter int) Directive {
	return func(*State, lineprotocol.Tags) Outcome {
		return Outcome{Status: status, Body: body, RetryAfter: retryAfter}
	}
}

func discard(status int, body string) Directive {
	return func(*State, lineprotocol.Tags) Outcome {
		return Outcome{Status: status, Body: body, Discard: true}
	}
}

func statusCode(_ *State, tags lineprotocol.Tags) Outcome {
	code, err := ParseStatusCode(tags.Value(CodeTag))
	if err != nil {
		return Outcome{Status: http.StatusBadRequest, Body: err.Error(), Discard: true}
	}
	return Outcome{Status: code, Body: "bad request", Discard: true}
}

func chunked(s *State, _ lineprotocol.Tags) Outcome {
	s.chunked = true
	return Outcome{}
}

func timeout(s *State, tags lineprotocol.Tags) Outcome {
	secs, err := strconv.Atoi(tags.Value(TimeoutTag))
	if err == nil && secs > 0 {
		s.delay = time.Duration(secs) * time.Second
	}
	return Outcome{}
}

func permanentSet(s *State, tags lineprotocol.Tags) Outcome {
	code, err := ParseStatusCode(tags.Value(CodeTag))
	if err != nil {
		return Outcome{Status: http.StatusBadRequest, Body: err.Error()}
	}
	s.permanentCode = code
	return Outcome{Status: code, Body: "bad request"}
}

func permanentUnset(s *State, _ lineprotocol.Tags) Outcome {
	s.permanentCode = 0
	return Outcome{}
}

// ParseStatusCode parses an x-code tag value. Only final statuses in the
// 200-599 range are accepted.
func ParseStatusCode(v string) (int, error) {
	code, err := strconv.Atoi(v)
	if err != nil || code < 200 || code > 599 {
		return 0, &StatusCodeError{Value: v}
	}
	return code, nil
}

// StatusCodeError reports an unusable x-code value.
type StatusCodeError struct {
	Value string
}

func (e *StatusCodeError) Error() string {
	return "invalid x-code " + strconv.Quote(e.Value)
}

// Unwrap makes errors.Is match ErrInvalidStatusCode.
func (e *StatusCodeError) Unwrap() error {
	return ErrInvalidStatusCode
}
