package jsonapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"unicode"

	"github.com/invopop/jsonschema"
)

var (
	ErrInvalidResource = errors.New("invalid resource")
	ErrDuplicateRoute  = errors.New("duplicate route")
)

// Resource is implemented by every resource descriptor. A descriptor is
// built once per endpoint and shared read-only by all of its requests.
type Resource interface {
	// ResourceType returns the JSON:API "type" member of the resource.
	ResourceType() string
}

// ValidateResource reports whether res can be attached to an endpoint. The
// returned error wraps ErrInvalidResource.
func ValidateResource(res Resource) error {
	if res == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}
	switch rv := reflect.ValueOf(res); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("%w: resource is a nil %T", ErrInvalidResource, res)
		}
	}
	if typ := res.ResourceType(); !validMemberName(typ) {
		return fmt.Errorf("%w: type %q of %T is not a valid member name", ErrInvalidResource, typ, res)
	}
	return nil
}

// validMemberName follows the JSON:API member name rules: at least one
// character, globally allowed characters at both ends, and '-', '_' or ' '
// only in between.
func validMemberName(name string) bool {
	runes := []rune(name)
	if len(runes) == 0 {
		return false
	}
	for i, r := range runes {
		if globallyAllowed(r) {
			continue
		}
		if (r == '-' || r == '_' || r == ' ') && i > 0 && i < len(runes)-1 {
			continue
		}
		return false
	}
	return true
}

func globallyAllowed(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r >= 0x80 && r != unicode.ReplacementChar
}

// RelationshipKind is the cardinality of a relationship.
type RelationshipKind string

const (
	ToOne  RelationshipKind = "to-one"
	ToMany RelationshipKind = "to-many"
)

// Relationship declares a related resource of a Schema.
type Relationship struct {
	Name string           `json:"name"`
	Kind RelationshipKind `json:"kind"`
	Type string           `json:"type"`
}

// SchemaOption configures a Schema under construction.
type SchemaOption func(*Schema)

// BelongsTo declares a to-one relationship.
func BelongsTo(name, typ string) SchemaOption {
	return func(s *Schema) {
		s.relationships = append(s.relationships, Relationship{Name: name, Kind: ToOne, Type: typ})
	}
}

// HasMany declares a to-many relationship.
func HasMany(name, typ string) SchemaOption {
	return func(s *Schema) {
		s.relationships = append(s.relationships, Relationship{Name: name, Kind: ToMany, Type: typ})
	}
}

// Schema is a Resource whose attributes are reflected from a Go struct.
// A Schema cannot be modified once NewSchema returns; accessors hand out
// copies.
type Schema struct {
	typ             string
	attributes      []string
	attributeSchema json.RawMessage
	relationships   []Relationship
}

// NewSchema builds the descriptor for resources of type typ. Exported
// fields of model (a struct or pointer to struct, may be nil) become its
// attributes, named after their json tags; "id", "type" and relationship
// names are excluded.
func NewSchema(typ string, model any, opts ...SchemaOption) (*Schema, error) {
	s := &Schema{typ: typ}
	for _, opt := range opts {
		opt(s)
	}
	if err := ValidateResource(s); err != nil {
		return nil, err
	}

	seen := map[string]bool{"id": true, "type": true}
	for _, rel := range s.relationships {
		if !validMemberName(rel.Name) || !validMemberName(rel.Type) {
			return nil, fmt.Errorf("%w: relationship %q of %q", ErrInvalidResource, rel.Name, typ)
		}
		if seen[rel.Name] {
			return nil, fmt.Errorf("%w: field %q of %q declared twice", ErrInvalidResource, rel.Name, typ)
		}
		seen[rel.Name] = true
	}

	if model == nil {
		return s, nil
	}
	mt := reflect.TypeOf(model)
	for mt.Kind() == reflect.Pointer {
		mt = mt.Elem()
	}
	if mt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: model %T of %q is not a struct", ErrInvalidResource, model, typ)
	}
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	js := r.Reflect(model)
	if js == nil || js.Type != "object" {
		return nil, fmt.Errorf("%w: model %T of %q is not a struct", ErrInvalidResource, model, typ)
	}
	if js.Properties != nil {
		var excluded []string
		for el := js.Properties.Oldest(); el != nil; el = el.Next() {
			if seen[el.Key] {
				excluded = append(excluded, el.Key)
				continue
			}
			s.attributes = append(s.attributes, el.Key)
		}
		for _, key := range excluded {
			js.Properties.Delete(key)
		}
	}
	js.Required = slices.DeleteFunc(js.Required, func(name string) bool { return seen[name] })
	raw, err := json.Marshal(js)
	if err != nil {
		return nil, fmt.Errorf("marshal attribute schema of %q: %w", typ, err)
	}
	s.attributeSchema = raw
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(typ string, model any, opts ...SchemaOption) *Schema {
	s, err := NewSchema(typ, model, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// ResourceType implements Resource.
func (s *Schema) ResourceType() string { return s.typ }

// Attributes returns the attribute names in declaration order.
func (s *Schema) Attributes() []string { return slices.Clone(s.attributes) }

// Relationships returns the declared relationships in declaration order.
func (s *Schema) Relationships() []Relationship { return slices.Clone(s.relationships) }

// AttributeSchema returns the JSON schema of the attributes object, or nil
// when the schema was built without a model.
func (s *Schema) AttributeSchema() json.RawMessage { return slices.Clone(s.attributeSchema) }
