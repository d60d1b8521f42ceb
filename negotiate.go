package jsonapi

import (
	"net/http"
	"strings"
)

// Verdict is the outcome of evaluating a request's media types.
type Verdict int

const (
	Accepted Verdict = iota
	RejectNotAcceptable
	RejectUnsupportedMediaType
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case RejectNotAcceptable:
		return "not_acceptable"
	case RejectUnsupportedMediaType:
		return "unsupported_media_type"
	default:
		return "unknown"
	}
}

// StatusCode returns the HTTP status a rejection maps to, or 0 for Accepted.
func (v Verdict) StatusCode() int {
	switch v {
	case RejectNotAcceptable:
		return http.StatusNotAcceptable
	case RejectUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	default:
		return 0
	}
}

// Negotiate applies the JSON:API media type rules to a request's parsed
// Accept entries and optional Content-Type.
//
// The Accept check rejects when the client lists the JSON:API media type
// only with parameters. The Content-Type check rejects any parameterized
// body type. Both checks always run, Accept first; when both fire the
// Content-Type verdict is the one returned.
func Negotiate(accept []MediaRange, contentType *MediaRange) Verdict {
	verdict := Accepted
	if onlyParameterized(accept) {
		verdict = RejectNotAcceptable
	}
	if contentType != nil && contentType.HasParameters() {
		verdict = RejectUnsupportedMediaType
	}
	return verdict
}

// NegotiateHeaders parses the Accept and Content-Type headers and negotiates.
// Repeated Accept lines are combined as one list.
func NegotiateHeaders(h http.Header) Verdict {
	accept := ParseAccept(strings.Join(h.Values("Accept"), ","))
	return Negotiate(accept, ParseContentType(h.Get("Content-Type")))
}

// onlyParameterized reports whether accept lists the JSON:API media type at
// least once and never without parameters. Wildcards do not match.
func onlyParameterized(accept []MediaRange) bool {
	found := false
	for _, mt := range accept {
		if mt.Essence != MediaType {
			continue
		}
		if !mt.HasParameters() {
			return false
		}
		found = true
	}
	return found
}
