package jsonapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// Index serves a meta-only JSON:API document listing the registered
// resources, typically from the API root.
type Index struct {
	// Meta is the index metadata to serve.
	Meta *IndexMeta

	// OnReject writes the response when negotiation fails. Defaults to
	// StatusOnly.
	OnReject RejectHandler
}

// relationshipLister and attributeDescriber are implemented by *Schema.
type relationshipLister interface {
	Relationships() []Relationship
}

type attributeDescriber interface {
	AttributeSchema() json.RawMessage
}

// Handler returns an http.Handler serving the index document. The request is
// negotiated like any JSON:API endpoint.
func (ix *Index) Handler() http.Handler {
	onReject := ix.OnReject
	if onReject == nil {
		onReject = StatusOnly
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := NegotiateHeaders(r.Header); v != Accepted {
			onReject(w, r, v)
			return
		}

		out, err := json.Marshal(&IndexDocument{
			JSONAPI: &JSONAPIObject{Version: Version},
			Meta:    ix.Meta,
		})
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", MediaType)
		w.Header().Set("Vary", "Accept")
		w.Write(out)
	})
}

// AutoIndex builds an Index from the routes registered in reg. Routes are
// grouped by path and resource type, collecting their methods.
func AutoIndex(name, version string, reg *Registry) *Index {
	type group struct {
		entry IndexEntry
		res   Resource
	}
	grouped := make(map[[2]string]*group)
	var order [][2]string

	for _, pair := range reg.Routes() {
		method, pattern := pair[0], pair[1]
		res := reg.Lookup(method, pattern)
		if res == nil {
			continue
		}
		key := [2]string{cleanPattern(pattern), res.ResourceType()}
		g, ok := grouped[key]
		if !ok {
			g = &group{res: res, entry: IndexEntry{Type: key[1], Href: key[0]}}
			grouped[key] = g
			order = append(order, key)
		}
		g.entry.Methods = append(g.entry.Methods, method)
	}

	resources := make([]IndexEntry, 0, len(order))
	for _, key := range order {
		g := grouped[key]
		sort.Strings(g.entry.Methods)
		if rl, ok := g.res.(relationshipLister); ok {
			g.entry.Relationships = rl.Relationships()
		}
		if ad, ok := g.res.(attributeDescriber); ok {
			g.entry.Attributes = ad.AttributeSchema()
		}
		resources = append(resources, g.entry)
	}

	sort.SliceStable(resources, func(i, j int) bool {
		if resources[i].Href != resources[j].Href {
			return resources[i].Href < resources[j].Href
		}
		return resources[i].Type < resources[j].Type
	})

	return &Index{
		Meta: &IndexMeta{
			Name:      name,
			Version:   version,
			Resources: resources,
		},
	}
}

// cleanPattern strips the method and host of a ServeMux pattern:
// "GET example.com/people/{id}" -> "/people/{id}".
func cleanPattern(pattern string) string {
	if idx := strings.IndexByte(pattern, ' '); idx >= 0 {
		pattern = strings.TrimSpace(pattern[idx+1:])
	}
	if idx := strings.IndexByte(pattern, '/'); idx > 0 {
		pattern = pattern[idx:]
	}
	return pattern
}
