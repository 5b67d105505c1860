package feed

import (
	"errors"
	"fmt"

	"github.com/umputun/rsscollect/pkg/domain"
)

// ErrEmptyContent is returned when the feed response has no body
var ErrEmptyContent = errors.New("empty RSS content received")

// TransportError is a network level failure: dns, connect, tls or timeout
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError is returned for any response status other than 200
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d", e.StatusCode)
}

// BodyTooLargeError is returned when the feed document is bigger than the configured limit
type BodyTooLargeError struct {
	URL   string
	Limit int64
}

func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("response body exceeds %d bytes", e.Limit)
}

// MalformedXMLError is returned when the fetched document can't be parsed as a feed
type MalformedXMLError struct {
	Err error
}

func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("malformed feed xml: %v", e.Err)
}

func (e *MalformedXMLError) Unwrap() error { return e.Err }

// ErrorKind maps fetch and parse errors to a domain error kind
func ErrorKind(err error) domain.ErrorKind {
	var transportErr *TransportError
	var statusErr *HTTPStatusError
	var tooLargeErr *BodyTooLargeError
	var xmlErr *MalformedXMLError

	switch {
	case err == nil:
		return domain.ErrKindNone
	case errors.As(err, &transportErr):
		return domain.ErrKindTransport
	case errors.As(err, &statusErr):
		return domain.ErrKindHTTPStatus
	case errors.As(err, &tooLargeErr):
		return domain.ErrKindTooLarge
	case errors.Is(err, ErrEmptyContent):
		return domain.ErrKindEmptyContent
	case errors.As(err, &xmlErr):
		return domain.ErrKindMalformedXML
	default:
		return domain.ErrKindInternal
	}
}
