package jsonapi

import "encoding/json"

// JSON:API media type and version constants.
const (
	MediaType = "application/vnd.api+json"
	Version   = "1.1"
)

// ResourceDescriptorKey is the well-known name under which the resource
// descriptor of the matched endpoint is stored for later pipeline stages.
const ResourceDescriptorKey = "ResourceDescriptor"

// JSONAPIObject describes the server's implementation of JSON:API.
type JSONAPIObject struct {
	Version string `json:"version,omitempty"`
}

// ErrorsDocument is a top-level JSON:API document carrying errors.
type ErrorsDocument struct {
	JSONAPI *JSONAPIObject `json:"jsonapi,omitempty"`
	Errors  []ErrorObject  `json:"errors"`
}

// ErrorObject is a single JSON:API error object.
type ErrorObject struct {
	ID     string         `json:"id,omitempty"`
	Status string         `json:"status,omitempty"`
	Code   string         `json:"code,omitempty"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Source *ErrorSource   `json:"source,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// ErrorSource points at the part of the request that caused an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Header    string `json:"header,omitempty"`
}

// IndexDocument is the meta-only document served by an Index.
type IndexDocument struct {
	JSONAPI *JSONAPIObject `json:"jsonapi,omitempty"`
	Meta    *IndexMeta     `json:"meta"`
}

// IndexMeta describes the API and its registered resources.
type IndexMeta struct {
	Name      string       `json:"name"`
	Version   string       `json:"version,omitempty"`
	Resources []IndexEntry `json:"resources"`
}

// IndexEntry is one registered route and the resource it returns.
type IndexEntry struct {
	Type          string          `json:"type"`
	Href          string          `json:"href"`
	Methods       []string        `json:"methods,omitempty"`
	Relationships []Relationship  `json:"relationships,omitempty"`
	Attributes    json.RawMessage `json:"attributes,omitempty"`
}
