package jsonapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID        string `json:"id"`
	FirstName string `json:"first-name"`
	LastName  string `json:"last-name"`
	Age       int    `json:"age,omitempty"`
	Secret    string `json:"-"`
}

type typeOnly string

func (t typeOnly) ResourceType() string { return string(t) }

type mapResource map[string]string

func (m mapResource) ResourceType() string { return m["type"] }

type funcResource func() string

func (f funcResource) ResourceType() string { return f() }

type sliceResource []string

func (s sliceResource) ResourceType() string { return s[0] }

type ptrResource struct{ typ string }

func (p *ptrResource) ResourceType() string { return p.typ }

func TestValidateResource(t *testing.T) {
	tests := []struct {
		name    string
		res     Resource
		wantErr bool
	}{
		{"nil", nil, true},
		{"typed nil pointer", (*ptrResource)(nil), true},
		{"empty type", typeOnly(""), true},
		{"leading dash", typeOnly("-people"), true},
		{"trailing underscore", typeOnly("people_"), true},
		{"slash", typeOnly("people/admins"), true},
		{"simple", typeOnly("people"), false},
		{"inner dash", typeOnly("blog-posts"), false},
		{"inner underscore", typeOnly("blog_posts"), false},
		{"unicode", typeOnly("personnes-é"), false},
		{"nil map", mapResource(nil), true},
		{"nil func", funcResource(nil), true},
		{"nil slice", sliceResource(nil), true},
		{"pointer", &ptrResource{typ: "articles"}, false},
		{"map", mapResource{"type": "tags"}, false},
		{"func", funcResource(func() string { return "tags" }), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResource(tt.res)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResource)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewSchema(t *testing.T) {
	s, err := NewSchema("people", person{},
		HasMany("articles", "articles"),
		BelongsTo("employer", "companies"),
	)
	require.NoError(t, err)

	assert.Equal(t, "people", s.ResourceType())
	assert.Equal(t, []string{"first-name", "last-name", "age"}, s.Attributes())
	assert.Equal(t, []Relationship{
		{Name: "articles", Kind: ToMany, Type: "articles"},
		{Name: "employer", Kind: ToOne, Type: "companies"},
	}, s.Relationships())

	var schema struct {
		Type       string                     `json:"type"`
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	require.NoError(t, json.Unmarshal(s.AttributeSchema(), &schema))
	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "first-name")
	assert.NotContains(t, schema.Properties, "id")
	assert.NotContains(t, schema.Required, "id")
}

func TestNewSchemaPointerModel(t *testing.T) {
	s, err := NewSchema("people", &person{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first-name", "last-name", "age"}, s.Attributes())
}

func TestNewSchemaWithoutModel(t *testing.T) {
	s, err := NewSchema("tags", nil)
	require.NoError(t, err)
	assert.Empty(t, s.Attributes())
	assert.Nil(t, s.AttributeSchema())
}

func TestNewSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		model any
		opts  []SchemaOption
	}{
		{"invalid type", "", person{}, nil},
		{"non struct model", "people", "just a string", nil},
		{"pointer to non struct model", "people", new(int), nil},
		{"slice model", "people", []person{}, nil},
		{"map model", "people", map[string]any{}, nil},
		{"invalid relationship name", "people", nil, []SchemaOption{HasMany("-x", "articles")}},
		{"invalid relationship type", "people", nil, []SchemaOption{HasMany("articles", "")}},
		{"relationship named id", "people", nil, []SchemaOption{BelongsTo("id", "ids")}},
		{"duplicate relationship", "people", nil, []SchemaOption{HasMany("articles", "articles"), BelongsTo("articles", "articles")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.typ, tt.model, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidResource)
		})
	}
}

func TestNewSchemaRelationshipShadowsAttribute(t *testing.T) {
	type article struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	s, err := NewSchema("articles", article{}, BelongsTo("author", "people"))
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, s.Attributes())
}

func TestMustSchemaPanics(t *testing.T) {
	assert.Panics(t, func() { MustSchema("", nil) })
	assert.NotPanics(t, func() { MustSchema("people", nil) })
}

func TestSchemaAccessorsReturnCopies(t *testing.T) {
	s := MustSchema("people", person{}, HasMany("articles", "articles"))

	attrs := s.Attributes()
	attrs[0] = "changed"
	rels := s.Relationships()
	rels[0].Name = "changed"
	raw := s.AttributeSchema()
	raw[0] = 'X'

	assert.Equal(t, "first-name", s.Attributes()[0])
	assert.Equal(t, "articles", s.Relationships()[0].Name)
	assert.True(t, json.Valid(s.AttributeSchema()))
}
