package edm

import (
	"fmt"
	"strings"
	"sync"
)

// Schema groups the types of one namespace.
type Schema struct {
	Namespace string
	Alias     string
	types     map[string]Type
	order     []Type
}

// NewSchema creates an empty schema.
func NewSchema(namespace, alias string) *Schema {
	return &Schema{Namespace: namespace, Alias: alias, types: make(map[string]Type)}
}

// Add registers a type. Its namespace must be the schema's.
func (s *Schema) Add(t Type) error {
	fqn := t.FullQualifiedName()
	if fqn.Namespace != s.Namespace {
		return fmt.Errorf("edm: type %s does not belong to schema %s", fqn, s.Namespace)
	}
	if _, dup := s.types[fqn.Name]; dup {
		return fmt.Errorf("edm: duplicate type %s", fqn)
	}
	s.types[fqn.Name] = t
	s.order = append(s.order, t)
	return nil
}

// Types returns the registered types in registration order.
func (s *Schema) Types() []Type { return append([]Type(nil), s.order...) }

// Model is a set of schemas. It is safe for concurrent lookups once built.
type Model struct {
	mu      sync.RWMutex
	schemas map[string]*Schema // by namespace and by alias
	list    []*Schema
}

// NewModel creates a model containing the given schemas.
func NewModel(schemas ...*Schema) (*Model, error) {
	m := &Model{schemas: make(map[string]*Schema)}
	for _, s := range schemas {
		if err := m.AddSchema(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddSchema registers a schema under its namespace and alias.
func (m *Model) AddSchema(s *Schema) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range []string{s.Namespace, s.Alias} {
		if key == "" {
			continue
		}
		if _, dup := m.schemas[key]; dup {
			return fmt.Errorf("edm: namespace or alias %s registered twice", key)
		}
	}
	m.schemas[s.Namespace] = s
	if s.Alias != "" {
		m.schemas[s.Alias] = s
	}
	m.list = append(m.list, s)
	return nil
}

// Schemas returns the registered schemas in registration order.
func (m *Model) Schemas() []*Schema {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Schema(nil), m.list...)
}

// Lookup resolves a namespace- or alias-qualified type name. "Edm.*" names
// resolve to the built-in primitive types.
func (m *Model) Lookup(qualified string) (Type, bool) {
	fqn := ParseFQN(qualified)
	if fqn.Namespace == Namespace {
		k, err := PrimitiveKindByName(fqn.Name)
		if err != nil {
			return nil, false
		}
		return Primitive(k), true
	}
	m.mu.RLock()
	s, ok := m.schemas[fqn.Namespace]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	t, ok := s.types[fqn.Name]
	return t, ok
}

// EntityType resolves an entity type by qualified name.
func (m *Model) EntityType(qualified string) (*EntityType, bool) {
	t, ok := m.Lookup(qualified)
	if !ok {
		return nil, false
	}
	et, ok := t.(*EntityType)
	return et, ok
}

// ComplexType resolves a complex type by qualified name.
func (m *Model) ComplexType(qualified string) (*ComplexType, bool) {
	t, ok := m.Lookup(qualified)
	if !ok {
		return nil, false
	}
	ct, ok := t.(*ComplexType)
	return ct, ok
}

// CollectionOf reports whether a type reference is written Collection(T) and
// returns T.
func CollectionOf(ref string) (string, bool) {
	if strings.HasPrefix(ref, "Collection(") && strings.HasSuffix(ref, ")") {
		return ref[len("Collection(") : len(ref)-1], true
	}
	return ref, false
}
