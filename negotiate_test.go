package jsonapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mt(essence string, kv ...string) MediaRange {
	m := MediaRange{Essence: essence}
	if len(kv) > 0 {
		m.Params = make(map[string]string)
		for i := 0; i+1 < len(kv); i += 2 {
			m.Params[kv[i]] = kv[i+1]
		}
	}
	return m
}

func ptr(m MediaRange) *MediaRange { return &m }

func TestNegotiateScenarios(t *testing.T) {
	tests := []struct {
		name        string
		accept      []MediaRange
		contentType *MediaRange
		want        Verdict
	}{
		{
			name:   "only parameterized accept",
			accept: []MediaRange{mt(MediaType, "profile", "x")},
			want:   RejectNotAcceptable,
		},
		{
			name:        "content type with charset",
			accept:      []MediaRange{mt(MediaType)},
			contentType: ptr(mt(MediaType, "charset", "utf-8")),
			want:        RejectUnsupportedMediaType,
		},
		{
			name:   "protocol type absent from accept",
			accept: []MediaRange{mt("text/html")},
			want:   Accepted,
		},
		{
			name:        "no accept, bare content type",
			contentType: ptr(mt(MediaType)),
			want:        Accepted,
		},
		{
			name:   "bare entry alongside parameterized one",
			accept: []MediaRange{mt(MediaType), mt(MediaType, "ext", "x")},
			want:   Accepted,
		},
		{
			name:        "both checks fire, content type wins",
			accept:      []MediaRange{mt(MediaType, "ext", "x")},
			contentType: ptr(mt(MediaType, "charset", "utf-8")),
			want:        RejectUnsupportedMediaType,
		},
		{
			name:        "parameterized content type of another essence",
			contentType: ptr(mt("application/json", "charset", "utf-8")),
			want:        RejectUnsupportedMediaType,
		},
		{
			name:   "wildcards do not match",
			accept: []MediaRange{mt("*/*", "q", "0.8"), mt("application/*", "q", "0.5")},
			want:   Accepted,
		},
		{
			name:   "essence match is case sensitive",
			accept: []MediaRange{mt("Application/Vnd.Api+Json", "ext", "x")},
			want:   Accepted,
		},
		{
			name:   "every protocol entry parameterized among others",
			accept: []MediaRange{mt("text/html"), mt(MediaType, "ext", "a"), mt(MediaType, "q", "0.5")},
			want:   RejectNotAcceptable,
		},
		{
			name: "nothing at all",
			want: Accepted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.accept, tt.contentType))
		})
	}
}

// The accept check never rejects when the protocol media type is absent.
func TestNegotiateAbsenceIsNotRejection(t *testing.T) {
	others := [][]MediaRange{
		nil,
		{mt("text/html")},
		{mt("application/json", "charset", "utf-8")},
		{mt("*/*")},
		{mt("application/vnd.api+jsonx", "ext", "x")},
	}
	for _, accept := range others {
		assert.NotEqual(t, RejectNotAcceptable, Negotiate(accept, nil))
	}
}

// A single bare protocol entry anywhere in the list keeps the accept check quiet.
func TestNegotiateBareEntryAnywhere(t *testing.T) {
	params := mt(MediaType, "ext", "x")
	bare := mt(MediaType)
	lists := [][]MediaRange{
		{bare, params},
		{params, bare},
		{params, mt("text/html"), params, bare},
	}
	for _, accept := range lists {
		assert.Equal(t, Accepted, Negotiate(accept, nil))
	}
}

func TestNegotiateContentTypeCheck(t *testing.T) {
	assert.Equal(t, Accepted, Negotiate(nil, nil))
	assert.Equal(t, Accepted, Negotiate(nil, ptr(mt("text/plain"))))
	assert.Equal(t, RejectUnsupportedMediaType, Negotiate(nil, ptr(mt("text/plain", "a", "b"))))
}

func TestNegotiateHeaders(t *testing.T) {
	tests := []struct {
		name        string
		accept      []string
		contentType string
		want        Verdict
	}{
		{"no headers", nil, "", Accepted},
		{"bare", []string{MediaType}, MediaType, Accepted},
		{"parameterized accept", []string{MediaType + ";ext=x"}, "", RejectNotAcceptable},
		{"parameterized content type", []string{MediaType}, MediaType + "; charset=utf-8", RejectUnsupportedMediaType},
		{"split across header lines", []string{MediaType + ";ext=x", MediaType}, "", Accepted},
		{"quality on only entry", []string{"text/html, " + MediaType + ";q=0.9"}, "", RejectNotAcceptable},
		{"valueless content type parameter", nil, MediaType + ";foo", RejectUnsupportedMediaType},
		{"valueless accept parameter", []string{MediaType + ";ext"}, "", RejectNotAcceptable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, v := range tt.accept {
				h.Add("Accept", v)
			}
			if tt.contentType != "" {
				h.Set("Content-Type", tt.contentType)
			}
			assert.Equal(t, tt.want, NegotiateHeaders(h))
		})
	}
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, 0, Accepted.StatusCode())
	assert.Equal(t, http.StatusNotAcceptable, RejectNotAcceptable.StatusCode())
	assert.Equal(t, http.StatusUnsupportedMediaType, RejectUnsupportedMediaType.StatusCode())

	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "not_acceptable", RejectNotAcceptable.String())
	assert.Equal(t, "unsupported_media_type", RejectUnsupportedMediaType.String())
	assert.Equal(t, "unknown", Verdict(42).String())
}
