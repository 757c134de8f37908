package offerup

import (
	"errors"
	"fmt"
)

// Kind classifies scraper failures by pipeline stage and cause.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidURL
	KindNotFound
	KindForbidden
	KindServerError
	KindHTTPError
	KindTimeout
	KindConnection
	KindInterrupted
	KindPayloadMissing
	KindPayloadEmpty
	KindPayloadDecode
	KindListingMissing
	KindTitleMissing
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindServerError:
		return "server_error"
	case KindHTTPError:
		return "http_error"
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection_error"
	case KindInterrupted:
		return "interrupted"
	case KindPayloadMissing:
		return "payload_missing"
	case KindPayloadEmpty:
		return "payload_empty"
	case KindPayloadDecode:
		return "payload_decode_error"
	case KindListingMissing:
		return "listing_missing"
	case KindTitleMissing:
		return "title_missing"
	case KindParse:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Error is the classified scraper error. Every stage failure crosses the
// stage boundary as one of these; only truly unexpected errors escape
// unclassified.
type Error struct {
	Kind Kind
	// StatusCode is set for HTTP status classifications.
	StatusCode int

	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(k Kind, msg string) *Error {
	return &Error{Kind: k, msg: msg}
}

func wrapError(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, msg: msg, cause: cause}
}

// IsScraperError reports whether err (or anything it wraps) is a classified
// scraper error.
func IsScraperError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

// ErrorKind returns the classification of err, or KindUnknown for
// unclassified errors.
func ErrorKind(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
