// Package edm is an in-memory Entity Data Model: primitive types with their
// literal parsers, type definitions, enumerations, complex and entity types,
// and a Model that resolves qualified names.
//
// Structured types keep declaration order, which the deserializer relies on
// when it walks properties.
package edm

import "strings"

// Namespace of the built-in primitive types.
const Namespace = "Edm"

// FullQualifiedName is a namespace-qualified type name.
type FullQualifiedName struct {
	Namespace string
	Name      string
}

// NewFQN is a shorthand for building a FullQualifiedName.
func NewFQN(namespace, name string) FullQualifiedName {
	return FullQualifiedName{Namespace: namespace, Name: name}
}

// ParseFQN splits "Namespace.Name" at the last dot.
func ParseFQN(s string) FullQualifiedName {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return FullQualifiedName{Name: s}
	}
	return FullQualifiedName{Namespace: s[:i], Name: s[i+1:]}
}

func (n FullQualifiedName) String() string {
	if n.Namespace == "" {
		return n.Name
	}
	return n.Namespace + "." + n.Name
}

// TypeKind is the coarse classification the deserializer switches on.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindDefinition
	KindEnum
	KindComplex
	KindEntity
)

func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "PRIMITIVE"
	case KindDefinition:
		return "DEFINITION"
	case KindEnum:
		return "ENUM"
	case KindComplex:
		return "COMPLEX"
	case KindEntity:
		return "ENTITY"
	default:
		return "UNKNOWN"
	}
}

// Type is implemented by every EDM type.
type Type interface {
	FullQualifiedName() FullQualifiedName
	Kind() TypeKind
}

// Facets constrain primitive literals. Nil fields are unconstrained.
type Facets struct {
	MaxLength *int
	Precision *int
	Scale     *int
	Unicode   *bool
}

// Int returns a pointer to v; handy for facet literals.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
