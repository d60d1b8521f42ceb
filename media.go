package jsonapi

import (
	"strings"

	"github.com/elnormous/contenttype"
)

// MediaRange is one parsed entry of an Accept or Content-Type header.
type MediaRange struct {
	// Essence is the "type/subtype" text exactly as the client sent it.
	Essence string
	Params  map[string]string
}

// HasParameters reports whether the entry carries at least one parameter.
// Accept weights ("q") count as parameters.
func (m MediaRange) HasParameters() bool {
	return len(m.Params) > 0
}

// String formats the entry back into header form.
func (m MediaRange) String() string {
	if len(m.Params) == 0 {
		return m.Essence
	}
	mt := contenttype.MediaType{Parameters: m.Params}
	if slash := strings.IndexByte(m.Essence, '/'); slash >= 0 {
		mt.Type, mt.Subtype = m.Essence[:slash], m.Essence[slash+1:]
	}
	return mt.String()
}

// ParseAccept parses an Accept header into its entries, preserving order.
// Entries that are not valid media ranges are skipped.
func ParseAccept(header string) []MediaRange {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	elems := splitList(header)
	out := make([]MediaRange, 0, len(elems))
	for _, elem := range elems {
		if mt, ok := parseMediaRange(elem); ok {
			out = append(out, mt)
		}
	}
	return out
}

// ParseContentType parses a Content-Type header. It returns nil when the
// header is empty or malformed; both are treated as an absent body type.
func ParseContentType(header string) *MediaRange {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	mt, ok := parseMediaRange(header)
	if !ok {
		return nil
	}
	return &mt
}

// parseMediaRange validates s with contenttype and keeps the essence as sent;
// contenttype lowercases type and subtype, which would hide case mismatches.
func parseMediaRange(s string) (MediaRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MediaRange{}, false
	}
	parsed, err := contenttype.ParseMediaType(s)
	if err != nil {
		if parsed, err = parseLenient(s); err != nil {
			return MediaRange{}, false
		}
	}
	essence := s
	if semi := strings.IndexByte(essence, ';'); semi >= 0 {
		essence = essence[:semi]
	}
	essence = strings.TrimSpace(essence)
	if slash := strings.IndexByte(essence, '/'); slash >= 0 {
		essence = strings.TrimSpace(essence[:slash]) + "/" + strings.TrimSpace(essence[slash+1:])
	}

	var params map[string]string
	if len(parsed.Parameters) > 0 {
		params = make(map[string]string, len(parsed.Parameters))
		for k, v := range parsed.Parameters {
			params[k] = v
		}
	}
	return MediaRange{Essence: essence, Params: params}, true
}

// parseLenient accepts a valid type/subtype followed by parameters that
// contenttype refuses, such as a name without a value ("type/sub;foo").
// Those parameters are kept so they still count against the request.
func parseLenient(s string) (contenttype.MediaType, error) {
	essence, rest, _ := strings.Cut(s, ";")
	parsed, err := contenttype.ParseMediaType(strings.TrimSpace(essence))
	if err != nil {
		return contenttype.MediaType{}, err
	}
	params := make(map[string]string)
	for _, seg := range strings.Split(rest, ";") {
		name, value, _ := strings.Cut(seg, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		params[name] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	parsed.Parameters = params
	return parsed, nil
}

// splitList splits a comma separated header value, ignoring commas inside
// quoted strings.
func splitList(header string) []string {
	var (
		parts   []string
		start   int
		quoted  bool
		escaped bool
	)
	for i := 0; i < len(header); i++ {
		c := header[i]
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			parts = append(parts, header[start:i])
			start = i + 1
		}
	}
	return append(parts, header[start:])
}
