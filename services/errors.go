package services

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

const (
	msgRateLimited       = "Rate limit exceeded. Please wait a moment before sending another question."
	msgInvalidRequest    = "Invalid request"
	msgDuplicateFeedback = "Feedback has already been submitted for this response."
	msgHealthCheckFailed = "Health check failed"

	maxErrorBody = 64 << 10
)

type ErrorKind int

const (
	KindHTTP ErrorKind = iota
	KindRateLimited
	KindInvalidRequest
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidRequest:
		return "invalid_request"
	case KindConflict:
		return "conflict"
	default:
		return "http"
	}
}

var (
	ErrHTTP              = errors.New("http error")
	ErrRateLimited       = errors.New("rate limited")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrDuplicateFeedback = errors.New("duplicate feedback")
)

// APIError is a non-2xx answer from the backend. Transport failures are never
// wrapped in an APIError.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.Kind {
	case KindRateLimited:
		return ErrRateLimited
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindConflict:
		return ErrDuplicateFeedback
	default:
		return ErrHTTP
	}
}

// statusRule maps one status code to an error. Rules are checked in order,
// before the endpoint's generic fallback.
type statusRule struct {
	status int
	build  func(resp *http.Response) *APIError
}

var (
	chatRules = []statusRule{
		{http.StatusTooManyRequests, rateLimited},
		{http.StatusBadRequest, invalidRequest},
	}
	feedbackRules = []statusRule{
		{http.StatusConflict, duplicateFeedback},
	}
)

func mapStatus(resp *http.Response, rules []statusRule, fallback func(*http.Response) *APIError) *APIError {
	for _, rule := range rules {
		if rule.status == resp.StatusCode {
			return rule.build(resp)
		}
	}
	return fallback(resp)
}

func rateLimited(resp *http.Response) *APIError {
	return newAPIError(KindRateLimited, resp, msgRateLimited)
}

func invalidRequest(resp *http.Response) *APIError {
	msg := msgInvalidRequest
	if detail := readDetail(resp.Body); detail != "" {
		msg = detail
	}
	return newAPIError(KindInvalidRequest, resp, msg)
}

func duplicateFeedback(resp *http.Response) *APIError {
	return newAPIError(KindConflict, resp, msgDuplicateFeedback)
}

// genericError builds the fallback for an operation, e.g. "failed to send query: Bad Gateway".
func genericError(action string) func(*http.Response) *APIError {
	return func(resp *http.Response) *APIError {
		return newAPIError(KindHTTP, resp, "failed to "+action+": "+statusText(resp))
	}
}

func healthError(resp *http.Response) *APIError {
	return newAPIError(KindHTTP, resp, msgHealthCheckFailed)
}

func newAPIError(kind ErrorKind, resp *http.Response, msg string) *APIError {
	return &APIError{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Message:    msg,
	}
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	// "599 Custom Reason" -> "Custom Reason"
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return resp.Status
}

// readDetail pulls a string "detail" out of an error body. Anything else
// (missing, non-string, unparseable) yields "".
func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
